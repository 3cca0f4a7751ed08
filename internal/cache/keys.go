package cache

import (
	"context"
	"fmt"
	"time"

	"rewear/internal/models"
)

const (
	LeaderboardKeyPrefix = "leaderboard:%s"
	ItemKeyPrefix        = "item:%s"
	AdminStatsKey        = "admin:stats"
)

const (
	LeaderboardTTL = time.Minute
	ItemTTL        = 5 * time.Minute
	AdminStatsTTL  = 30 * time.Second
)

func LeaderboardKey(tf models.Timeframe) string {
	return fmt.Sprintf(LeaderboardKeyPrefix, tf)
}

func ItemKey(itemID string) string {
	return fmt.Sprintf(ItemKeyPrefix, itemID)
}

// InvalidateLeaderboards drops every cached leaderboard timeframe.
func (c *Cache) InvalidateLeaderboards(ctx context.Context) {
	keys := make([]string, 0, len(models.Timeframes))
	for _, tf := range models.Timeframes {
		keys = append(keys, LeaderboardKey(tf))
	}
	c.Invalidate(ctx, keys...)
}

// InvalidateItem drops a cached item and the admin counters it feeds.
func (c *Cache) InvalidateItem(ctx context.Context, itemID string) {
	c.Invalidate(ctx, ItemKey(itemID), AdminStatsKey)
}
