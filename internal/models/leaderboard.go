package models

// Timeframe selects the activity window of a leaderboard.
type Timeframe string

const (
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeAllTime Timeframe = "all_time"
)

// Timeframes lists every supported leaderboard window.
var Timeframes = []Timeframe{TimeframeWeekly, TimeframeMonthly, TimeframeAllTime}

// ParseTimeframe maps a query value to a Timeframe, defaulting to all-time.
func ParseTimeframe(raw string) (Timeframe, bool) {
	switch Timeframe(raw) {
	case TimeframeWeekly, TimeframeMonthly, TimeframeAllTime:
		return Timeframe(raw), true
	case "", "alltime", "all-time":
		return TimeframeAllTime, true
	}
	return "", false
}

// LeaderboardEntry is a read-only ranked projection of a user's activity.
type LeaderboardEntry struct {
	Rank           int         `json:"rank"`
	User           UserCompact `json:"user"`
	Points         int         `json:"points"`
	ItemsListed    int         `json:"items_listed"`
	SwapsCompleted int         `json:"swaps_completed"`
	Level          string      `json:"level"`
}
