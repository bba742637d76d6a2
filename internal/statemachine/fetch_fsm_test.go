package statemachine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFSM_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := NewFetchFSM()
	assert.Equal(t, FetchIdle, f.Current())

	require.NoError(t, f.Fetch(ctx))
	assert.Equal(t, FetchLoading, f.Current())

	require.NoError(t, f.Succeed(ctx))
	assert.Equal(t, FetchReady, f.Current())
	assert.NoError(t, f.Err())
}

func TestFetchFSM_FailKeepsCause(t *testing.T) {
	ctx := context.Background()
	f := NewFetchFSM()
	cause := errors.New("connection refused")

	require.NoError(t, f.Fetch(ctx))
	require.NoError(t, f.Fail(ctx, cause))
	assert.Equal(t, FetchFailed, f.Current())
	assert.Equal(t, cause, f.Err())

	// a retry clears the failure
	require.NoError(t, f.Fetch(ctx))
	assert.Equal(t, FetchLoading, f.Current())
	assert.NoError(t, f.Err())
}

func TestFetchFSM_FetchWhileLoading(t *testing.T) {
	ctx := context.Background()
	f := NewFetchFSM()

	require.NoError(t, f.Fetch(ctx))
	require.NoError(t, f.Fetch(ctx))
	assert.Equal(t, FetchLoading, f.Current())
}

func TestFetchFSM_InvalidTransitions(t *testing.T) {
	ctx := context.Background()
	f := NewFetchFSM()

	assert.Error(t, f.Succeed(ctx))
	assert.Error(t, f.Fail(ctx, errors.New("boom")))
	assert.Equal(t, FetchIdle, f.Current())

	require.NoError(t, f.Fetch(ctx))
	require.NoError(t, f.Succeed(ctx))
	assert.Error(t, f.Succeed(ctx))
	assert.Equal(t, FetchReady, f.Current())
}

func TestFetchFSM_CancelledContext(t *testing.T) {
	f := NewFetchFSM()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, FetchIdle, f.Current())

	// a fetch started before cancellation still records its outcome
	require.NoError(t, f.Fetch(context.Background()))
	require.NoError(t, f.Fail(ctx, ctx.Err()))
	assert.Equal(t, FetchFailed, f.Current())
	assert.ErrorIs(t, f.Err(), context.Canceled)
}
