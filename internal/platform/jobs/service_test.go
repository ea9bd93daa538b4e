package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePopulator struct {
	calls   atomic.Int32
	created int
	err     error
}

func (f *fakePopulator) AutoPopulate(context.Context) (int, error) {
	f.calls.Add(1)
	return f.created, f.err
}

type fakeRecorder struct {
	mu    sync.Mutex
	total int
}

func (f *fakeRecorder) RecordAutoPopulate(created int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total += created
}

func (f *fakeRecorder) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func TestStartRunsImmediatelyAndOnSchedule(t *testing.T) {
	pop := &fakePopulator{created: 2}
	rec := &fakeRecorder{}
	svc := New(pop, rec, zap.NewNop(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	assert.Equal(t, int32(1), pop.calls.Load())

	require.Eventually(t, func() bool { return pop.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	svc.Wait()
	assert.GreaterOrEqual(t, rec.Total(), 6)
}

func TestStartWithoutIntervalRunsOnce(t *testing.T) {
	pop := &fakePopulator{err: errors.New("disk full")}
	svc := New(pop, nil, zap.NewNop(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	cancel()
	svc.Wait()
	assert.Equal(t, int32(1), pop.calls.Load())
}

func TestEnqueueRunsOnWorker(t *testing.T) {
	svc := New(&fakePopulator{}, nil, zap.NewNop(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)

	done := make(chan struct{})
	require.True(t, svc.Enqueue("custom", func(context.Context) (any, error) {
		close(done)
		return nil, nil
	}))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not run")
	}
}
