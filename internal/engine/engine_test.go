package engine

import (
	"time"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/notifier"
	"github.com/julianstephens/ascend/internal/state"
)

// fixedClock returns a clock pinned to noon UTC on the given day
func fixedClock(day string) func() time.Time {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		panic(err)
	}
	t = t.Add(12 * time.Hour)
	return func() time.Time { return t }
}

func newTestEngine(day string) (*Engine, *notifier.Recorder) {
	rec := &notifier.Recorder{}
	e := New(state.New(), WithClock(fixedClock(day)), WithSink(rec))
	return e, rec
}
