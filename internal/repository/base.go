package repository

import (
	"context"

	"gorm.io/gorm"

	"rewear/internal/observability"
)

// track opens a repository span and starts the query latency timer for
// operation on table. The returned context carries the span; call done once
// the query has returned.
func track(ctx context.Context, db *gorm.DB, operation, table string) (context.Context, func()) {
	system := "unknown"
	if db != nil && db.Dialector != nil {
		system = db.Dialector.Name()
	}
	ctx, span := observability.TraceRepositoryMethod(ctx, system, operation, table)
	stop := observability.TrackQuery(operation, table)
	return ctx, func() {
		stop()
		span.End()
	}
}
