// Package impact computes environmental impact estimates, community levels
// and leaderboard rankings from activity counts.
package impact

import (
	"math"
	"sort"
	"time"

	"rewear/internal/models"
)

// Per-activity savings estimates.
const (
	co2PerSwapKg        = 2.5
	co2PerListingKg     = 1.2
	waterPerSwapL       = 500
	waterPerListingL    = 200
	textilePerSwapKg    = 0.5
	textilePerListingKg = 0.5
)

// Level is a community tier unlocked at a points threshold.
type Level struct {
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
}

// Levels lists the tiers in ascending threshold order.
var Levels = []Level{
	{Name: "Eco Starter", MinPoints: 0},
	{Name: "Green Swapper", MinPoints: 500},
	{Name: "Eco Pro", MinPoints: 1000},
	{Name: "Runway Star", MinPoints: 1500},
	{Name: "Swap Master", MinPoints: 2000},
}

func clamp(n int) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}

// round2 trims float noise so 2*2.5+3*1.2 reports 8.6.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CO2Saved estimates kilograms of CO2 saved. Negative counts count as zero.
func CO2Saved(successfulSwaps, itemsListed int) float64 {
	return round2(clamp(successfulSwaps)*co2PerSwapKg + clamp(itemsListed)*co2PerListingKg)
}

// WaterSaved estimates liters of water saved.
func WaterSaved(successfulSwaps, itemsListed int) float64 {
	return round2(clamp(successfulSwaps)*waterPerSwapL + clamp(itemsListed)*waterPerListingL)
}

// TextilesReworn estimates kilograms of textiles kept in use.
func TextilesReworn(successfulSwaps, itemsListed int) float64 {
	return round2(clamp(itemsListed)*textilePerListingKg + clamp(successfulSwaps)*textilePerSwapKg)
}

// LevelForPoints returns the highest tier whose threshold points reaches.
func LevelForPoints(points int) string {
	return LevelFor(points).Name
}

// LevelFor returns the tier for points.
func LevelFor(points int) Level {
	current := Levels[0]
	for _, lvl := range Levels {
		if points >= lvl.MinPoints {
			current = lvl
		}
	}
	return current
}

// NextLevel returns the tier after points, or false at the top tier.
func NextLevel(points int) (Level, bool) {
	for _, lvl := range Levels {
		if lvl.MinPoints > points {
			return lvl, true
		}
	}
	return Level{}, false
}

// Summary bundles every impact metric for a user.
type Summary struct {
	Points           int     `json:"points"`
	SuccessfulSwaps  int     `json:"successful_swaps"`
	ItemsListed      int     `json:"items_listed"`
	CO2SavedKg       float64 `json:"co2_saved_kg"`
	WaterSavedL      float64 `json:"water_saved_l"`
	TextilesRewornKg float64 `json:"textiles_reworn_kg"`
	Level            string  `json:"level"`
	NextLevel        string  `json:"next_level,omitempty"`
	PointsToNext     int     `json:"points_to_next,omitempty"`
}

// Summarize computes the impact summary for the given counts.
func Summarize(points, successfulSwaps, itemsListed int) Summary {
	s := Summary{
		Points:           points,
		SuccessfulSwaps:  successfulSwaps,
		ItemsListed:      itemsListed,
		CO2SavedKg:       CO2Saved(successfulSwaps, itemsListed),
		WaterSavedL:      WaterSaved(successfulSwaps, itemsListed),
		TextilesRewornKg: TextilesReworn(successfulSwaps, itemsListed),
		Level:            LevelForPoints(points),
	}
	if next, ok := NextLevel(points); ok {
		s.NextLevel = next.Name
		s.PointsToNext = next.MinPoints - points
	}
	return s
}

// Rank sorts entries by points descending and assigns 1-based ranks. Entries
// with equal points keep their input order. The input slice is not modified.
func Rank(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// BuildEntries projects users into unranked leaderboard entries. A zero since
// selects all-time totals where points are the users' balances; otherwise
// only activity after since counts and points are derived from the swaps
// accepted in that window.
func BuildEntries(users []models.User, items []models.Item, swaps []models.SwapRequest, since time.Time) []models.LeaderboardEntry {
	windowed := !since.IsZero()
	inWindow := func(t time.Time) bool { return !windowed || !t.Before(since) }

	owners := make(map[string]string, len(items))
	listed := make(map[string]int)
	for _, item := range items {
		owners[item.ID] = item.OwnerID
		if inWindow(item.CreatedAt) {
			listed[item.OwnerID]++
		}
	}

	completed := make(map[string]int)
	accepted := make(map[string]int)
	for _, swap := range swaps {
		if swap.Status != models.SwapStatusAccepted {
			continue
		}
		at := swap.CreatedAt
		if swap.ResolvedAt != nil {
			at = *swap.ResolvedAt
		}
		if !inWindow(at) {
			continue
		}
		completed[swap.RequesterID]++
		if owner, ok := owners[swap.ItemID]; ok {
			if owner != swap.RequesterID {
				completed[owner]++
			}
			accepted[owner]++
		}
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		points := u.Points
		if windowed {
			points = accepted[u.ID] * models.SwapAcceptPoints
		}
		entries = append(entries, models.LeaderboardEntry{
			User:           u.ToCompact(),
			Points:         points,
			ItemsListed:    listed[u.ID],
			SwapsCompleted: completed[u.ID],
			Level:          LevelForPoints(u.Points),
		})
	}
	return entries
}

// WindowStart returns the start of a timeframe relative to now. All-time
// returns the zero time.
func WindowStart(tf models.Timeframe, now time.Time) time.Time {
	switch tf {
	case models.TimeframeWeekly:
		return now.AddDate(0, 0, -7)
	case models.TimeframeMonthly:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

// Leaderboard builds and ranks the leaderboard for a timeframe.
func Leaderboard(tf models.Timeframe, now time.Time, users []models.User, items []models.Item, swaps []models.SwapRequest) []models.LeaderboardEntry {
	return Rank(BuildEntries(users, items, swaps, WindowStart(tf, now)))
}
