package vanna

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingFactory(engine Engine, calls *atomic.Int32) Factory {
	return func(ctx context.Context) (Engine, error) {
		calls.Add(1)
		return engine, nil
	}
}

func TestEnsureInitializedIsIdempotent(t *testing.T) {
	engine := &fakeEngine{}
	var calls atomic.Int32
	state := NewState(countingFactory(engine, &calls), DefaultCorpus())

	require.False(t, state.IsInitialized())
	require.NoError(t, state.EnsureInitialized(context.Background()))
	require.NoError(t, state.EnsureInitialized(context.Background()))

	assert.True(t, state.IsInitialized())
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, DefaultCorpus().Size(), engine.registrations())

	got, err := state.Engine()
	require.NoError(t, err)
	assert.Same(t, engine, got)
}

func TestEnsureInitializedConcurrentFirstCallers(t *testing.T) {
	engine := &fakeEngine{}
	var calls atomic.Int32
	release := make(chan struct{})
	factory := func(ctx context.Context) (Engine, error) {
		calls.Add(1)
		<-release
		return engine, nil
	}
	state := NewState(factory, DefaultCorpus())

	const callers = 16
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- state.EnsureInitialized(context.Background())
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, DefaultCorpus().Size(), engine.registrations())
}

func TestEnsureInitializedFailureAllowsRetry(t *testing.T) {
	engine := &fakeEngine{}
	var calls atomic.Int32
	factory := func(ctx context.Context) (Engine, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("dial tcp: connection refused")
		}
		return engine, nil
	}
	state := NewState(factory, DefaultCorpus())

	err := state.EnsureInitialized(context.Background())
	require.Error(t, err)
	var initErr *InitializationError
	require.ErrorAs(t, err, &initErr)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, state.IsInitialized())

	_, err = state.Engine()
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, state.EnsureInitialized(context.Background()))
	assert.True(t, state.IsInitialized())
	assert.Equal(t, int32(2), calls.Load())
}

func TestInitializationSurvivesCanceledCaller(t *testing.T) {
	engine := &fakeEngine{}
	factory := func(ctx context.Context) (Engine, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return engine, nil
	}
	state := NewState(factory, DefaultCorpus())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, state.EnsureInitialized(ctx))
	assert.True(t, state.IsInitialized())
}

func TestTrainingFailuresDoNotAbortInitialization(t *testing.T) {
	engine := &fakeEngine{failDDL: map[int]bool{0: true, 3: true}}
	state := NewState(func(context.Context) (Engine, error) { return engine, nil }, DefaultCorpus())

	require.NoError(t, state.EnsureInitialized(context.Background()))
	assert.True(t, state.IsInitialized())
	assert.Equal(t, DefaultCorpus().Size(), engine.registrations())
}

func TestStateClose(t *testing.T) {
	state := NewState(nil, Corpus{})
	assert.NoError(t, state.Close())

	engine := &fakeEngine{}
	state = NewState(func(context.Context) (Engine, error) { return engine, nil }, Corpus{})
	require.NoError(t, state.EnsureInitialized(context.Background()))
	require.NoError(t, state.Close())
	assert.True(t, engine.closed)
}
