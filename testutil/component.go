package testutil

import "context"

// TestComponent is a dependency stand-in a test can start, stop and reset.
type TestComponent interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	// Reset restores the component to its initial state.
	Reset(ctx context.Context) error

	// Snapshot captures the current state for a later Restore.
	Snapshot(ctx context.Context) (any, error)

	// Restore returns to a state captured by Snapshot.
	Restore(ctx context.Context, snapshot any) error
}
