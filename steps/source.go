// Package steps adapts the device step sensor: a Source answers cumulative
// step counts for a time range, and a Poller turns one into a standing
// subscription feeding the weekly tracker.
package steps

import (
	"context"
	"time"
)

// Source is the asynchronous step sensor. Query returns the cumulative step
// count for the window; the value may be revised upwards or downwards as new
// samples land, so callers must treat each result as a replacement.
type Source interface {
	Query(ctx context.Context, start, end time.Time) (int, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, start, end time.Time) (int, error)

func (f SourceFunc) Query(ctx context.Context, start, end time.Time) (int, error) {
	return f(ctx, start, end)
}
