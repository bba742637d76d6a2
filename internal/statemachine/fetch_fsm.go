package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
)

// Fetch lifecycle states
const (
	FetchIdle    = "idle"
	FetchLoading = "loading"
	FetchReady   = "ready"
	FetchFailed  = "failed"
)

// FetchFSM tracks the lifecycle of a roster fetch. A new fetch may start from any state and
// supersedes the one in flight.
type FetchFSM struct {
	fsm     *fsm.FSM
	lastErr error
}

// NewFetchFSM creates a fetch state machine in the idle state
func NewFetchFSM() *FetchFSM {
	f := &FetchFSM{}

	f.fsm = fsm.NewFSM(
		FetchIdle,
		fsm.Events{
			// any → loading
			{Name: "fetch", Src: []string{FetchIdle, FetchLoading, FetchReady, FetchFailed}, Dst: FetchLoading},

			// loading → ready
			{Name: "succeed", Src: []string{FetchLoading}, Dst: FetchReady},

			// loading → failed
			{Name: "fail", Src: []string{FetchLoading}, Dst: FetchFailed},
		},
		fsm.Callbacks{
			"enter_" + FetchLoading: func(_ context.Context, _ *fsm.Event) {
				f.lastErr = nil
			},
			"enter_" + FetchFailed: func(_ context.Context, e *fsm.Event) {
				if len(e.Args) > 0 {
					if err, ok := e.Args[0].(error); ok {
						f.lastErr = err
					}
				}
			},
		},
	)

	return f
}

// Fetch moves the machine to loading. A cancelled ctx is refused and leaves the state as is.
func (f *FetchFSM) Fetch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to start fetch: %w", err)
	}
	if err := f.fsm.Event(ctx, "fetch"); err != nil && !isNoTransition(err) {
		return fmt.Errorf("failed to start fetch: %w", err)
	}
	// loading → loading does not re-enter the state
	f.lastErr = nil
	return nil
}

// Succeed marks the fetch in flight as completed. The outcome is recorded even when ctx has
// been cancelled since the fetch started.
func (f *FetchFSM) Succeed(ctx context.Context) error {
	if err := f.fsm.Event(context.WithoutCancel(ctx), "succeed"); err != nil {
		return fmt.Errorf("fetch cannot succeed in current state %s: %w", f.fsm.Current(), err)
	}
	return nil
}

// Fail marks the fetch in flight as failed with cause, cancelled ctx or not
func (f *FetchFSM) Fail(ctx context.Context, cause error) error {
	if err := f.fsm.Event(context.WithoutCancel(ctx), "fail", cause); err != nil {
		return fmt.Errorf("fetch cannot fail in current state %s: %w", f.fsm.Current(), err)
	}
	return nil
}

// Current returns the current state
func (f *FetchFSM) Current() string {
	return f.fsm.Current()
}

// Err returns the cause of the last failure, nil unless the machine is in the failed state
func (f *FetchFSM) Err() error {
	if f.fsm.Current() != FetchFailed {
		return nil
	}
	return f.lastErr
}

func isNoTransition(err error) bool {
	var nt fsm.NoTransitionError
	return errors.As(err, &nt)
}
