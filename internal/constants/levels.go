package constants

// LevelThreshold maps a level to the total XP required to reach it
type LevelThreshold struct {
	Level int
	XP    int
	Title string
}

// LevelThresholds is the ascending threshold table used to derive a user's
// level from total XP. Levels past the table continue at a fixed XP step so
// there is no upper bound.
var LevelThresholds = []LevelThreshold{
	{Level: 1, XP: 0, Title: "Novice"},
	{Level: 2, XP: 100, Title: "Apprentice"},
	{Level: 3, XP: 300, Title: "Adept"},
	{Level: 4, XP: 600, Title: "Committed"},
	{Level: 5, XP: 1000, Title: "Disciplined"},
	{Level: 6, XP: 1500, Title: "Relentless"},
	{Level: 7, XP: 2100, Title: "Master"},
	{Level: 8, XP: 2800, Title: "Grandmaster"},
	{Level: 9, XP: 3600, Title: "Sage"},
	{Level: 10, XP: 4500, Title: "Ascendant"},
}

// XPPerLevelBeyondTable is the XP step for levels above the threshold table
const XPPerLevelBeyondTable = 1000
