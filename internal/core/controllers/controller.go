// Package controllers holds the domain state controllers: each one owns a
// UI-facing state snapshot and the intent functions that mutate it. Intents
// dispatch repository work onto goroutines bound to the controller's
// lifetime; results fold back into the snapshot under the controller's lock.
// The presentation layer only ever reads snapshot copies and calls intents.
package controllers

import (
	"context"
	"errors"

	"bookhive/internal/core/domain"

	"gorm.io/gorm"
)

// lifetime carries the cancellation scope shared by every controller.
// Close cancels the scope; work still in flight is abandoned, and its late
// results are dropped by the ctx check in each fold.
type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifetime() lifetime {
	ctx, cancel := context.WithCancel(context.Background())
	return lifetime{ctx: ctx, cancel: cancel}
}

// launch runs fn on its own goroutine bound to the controller context
func (l *lifetime) launch(fn func(ctx context.Context)) {
	go func() {
		if l.ctx.Err() != nil {
			return
		}
		fn(l.ctx)
	}()
}

// Close tears the controller down and stops its background work
func (l *lifetime) Close() {
	l.cancel()
}

// errMessage converts a repository or domain error into the human-readable
// message surfaced on state snapshots. Infrastructure errors never propagate
// past this point.
func errMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound.Error()
	default:
		return err.Error()
	}
}
