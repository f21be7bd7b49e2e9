package future

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_DeliversToRegisteredListeners(t *testing.T) {
	f := New[int]()

	var got []int
	f.AddListener(Listener[int]{OnSuccess: func(v int) { got = append(got, v) }})
	f.AddListener(Listener[int]{OnSuccess: func(v int) { got = append(got, v*10) }})

	require.True(t, f.Complete(7, nil))
	assert.Equal(t, []int{7, 70}, got)

	assert.False(t, f.Complete(8, nil), "second Complete must be ignored")
	assert.Equal(t, []int{7, 70}, got)
}

func TestFuture_LateListenerFiresImmediately(t *testing.T) {
	f := New[string]()
	f.Complete("deck", nil)

	var got string
	f.AddListener(Listener[string]{OnSuccess: func(v string) { got = v }})
	assert.Equal(t, "deck", got)
}

func TestFuture_RemovedListenerNeverFires(t *testing.T) {
	f := New[int]()

	var fired atomic.Int32
	id := f.AddListener(Listener[int]{OnSuccess: func(int) { fired.Add(1) }})
	f.RemoveListener(id)
	f.Complete(1, nil)

	assert.Zero(t, fired.Load())
}

func TestFuture_FailureGoesToOnFailure(t *testing.T) {
	f := New[int]()
	boom := errors.New("boom")

	var gotErr error
	var success bool
	f.AddListener(Listener[int]{
		OnSuccess: func(int) { success = true },
		OnFailure: func(err error) { gotErr = err },
	})
	f.Complete(0, boom)

	assert.False(t, success)
	assert.ErrorIs(t, gotErr, boom)
}

func TestFuture_NilCallbacksAreSafe(t *testing.T) {
	f := New[int]()
	f.AddListener(Listener[int]{})
	assert.NotPanics(t, func() { f.Complete(0, errors.New("x")) })
}

func TestGo_CompletesWithResult(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (int, error) { return 42, nil })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	v, err := f.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestGo_CancelFailsAndStopsWork(t *testing.T) {
	started := make(chan struct{})
	stopped := make(chan struct{})
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		close(stopped)
		return 0, ctx.Err()
	})
	<-started

	f.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, ErrCanceled)

	select {
	case <-stopped:
	case <-ctx.Done():
		t.Fatal("work was not canceled")
	}
}

func TestWait_RespectsContext(t *testing.T) {
	f := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
