// Package service implements the ReWear use cases on top of the catalog
// store and the pure filter, swipe, moderation and impact packages.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rewear/internal/models"
	"rewear/internal/notifications"
	"rewear/internal/observability"
	"rewear/internal/repository"
)

var callLog = observability.NewStructuredLogger()

// lookupErr maps a repository lookup failure to an AppError.
func lookupErr(err error, resource string, id interface{}) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if repository.IsNotFound(err) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}

// storeErr wraps unexpected store failures unless they already carry a code.
func storeErr(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}

// notify publishes best-effort; delivery failures are logged, never returned.
func notify(ctx context.Context, pub notifications.Publisher, fn func(notifications.Publisher) error) {
	if pub == nil {
		return
	}
	if err := fn(pub); err != nil {
		slog.WarnContext(ctx, "publish notification failed", slog.String("error", err.Error()))
	}
}

type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
