package state

import (
	"fmt"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/logger"
)

// A migration upgrades a snapshot from exactly version From to From+1.
// Migrations run in order until the snapshot reaches CurrentVersion, replacing
// the old scattering of per-field fallbacks with one auditable chain.
type migration struct {
	From  int
	Name  string
	Apply func(*State)
}

var migrations = []migration{
	{From: 1, Name: "wellness_log", Apply: migrateAddWellness},
	{From: 2, Name: "rewards_and_freezes", Apply: migrateAddRewards},
}

// Migrate upgrades s in place to CurrentVersion. Snapshots with no version are
// treated as version 1 (the oldest schema that shipped). A snapshot newer than
// this build is an error rather than a silent downgrade.
func Migrate(s *State) error {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.Version > CurrentVersion {
		return fmt.Errorf("snapshot version %d is newer than supported version %d - please upgrade the application", s.Version, CurrentVersion)
	}

	for _, m := range migrations {
		if s.Version != m.From {
			continue
		}
		logger.Debug("applying snapshot migration", "from", m.From, "name", m.Name)
		m.Apply(s)
		s.Version = m.From + 1
	}

	if s.Version != CurrentVersion {
		return fmt.Errorf("snapshot migration chain is incomplete: stopped at version %d", s.Version)
	}

	s.Normalize()
	return nil
}

// v1 -> v2: the wellness log joined the snapshot. v1 builds recorded mood on
// a 0-10 scale; the current scale is 1-5.
func migrateAddWellness(s *State) {
	for i := range s.MoodEntries {
		if s.MoodEntries[i].Rating > 5 {
			s.MoodEntries[i].Rating = (s.MoodEntries[i].Rating + 1) / 2
		}
		if s.MoodEntries[i].Rating < 1 {
			s.MoodEntries[i].Rating = 1
		}
	}
}

// v2 -> v3: streak freezes joined the profile. Existing users are granted one
// freeze per 30 days of their longest streak so long-running streaks are not
// left unprotected, capped at the usual maximum.
func migrateAddRewards(s *State) {
	if s.User.Profile.StreakFreezes != 0 {
		return
	}
	earned := s.User.Stats.LongestStreak / 30
	if earned > constants.MaxStreakFreezes {
		earned = constants.MaxStreakFreezes
	}
	s.User.Profile.StreakFreezes = earned
}
