package views

import "context"

// Counter buffers pending view increments.
type Counter interface {
	Add(ctx context.Context, id string, n int64) error
	Drain(ctx context.Context) (map[string]int64, error)
}

// Sink persists drained views onto the consultant record.
type Sink interface {
	AddViews(ctx context.Context, id string, n int64) error
}

// Recorder observes view events: recorded, dropped, flushed, requeued.
type Recorder interface {
	ObserveViews(event string, n int64)
}
