package testutil

import (
	"context"
	"testing"
)

// THelper ties test components to a testing.T.
type THelper struct {
	t   testing.TB
	ctx context.Context
}

// T wraps t.
func T(t testing.TB) *THelper {
	return &THelper{t: t, ctx: context.Background()}
}

// WithContext sets the context passed to the components.
func (h *THelper) WithContext(ctx context.Context) *THelper {
	h.ctx = ctx
	return h
}

// Setup starts the components and stops them when the test ends.
func (h *THelper) Setup(components ...TestComponent) {
	h.t.Helper()
	for _, c := range components {
		if err := c.Start(h.ctx); err != nil {
			h.t.Fatalf("failed to start component %s: %v", c.Name(), err)
		}
		h.t.Cleanup(func() {
			if err := c.Stop(h.ctx); err != nil {
				h.t.Errorf("failed to stop component %s: %v", c.Name(), err)
			}
		})
	}
}

// Reset resets a component to its initial state.
func (h *THelper) Reset(c TestComponent) {
	h.t.Helper()
	if err := c.Reset(h.ctx); err != nil {
		h.t.Fatalf("failed to reset component %s: %v", c.Name(), err)
	}
}

// Snapshot captures the current state of a component.
func (h *THelper) Snapshot(c TestComponent) any {
	h.t.Helper()
	s, err := c.Snapshot(h.ctx)
	if err != nil {
		h.t.Fatalf("failed to snapshot component %s: %v", c.Name(), err)
	}
	return s
}

// Restore returns a component to a captured state.
func (h *THelper) Restore(c TestComponent, snapshot any) {
	h.t.Helper()
	if err := c.Restore(h.ctx, snapshot); err != nil {
		h.t.Fatalf("failed to restore component %s: %v", c.Name(), err)
	}
}
