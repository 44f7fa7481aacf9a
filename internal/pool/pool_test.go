package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTasksRun(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 8} {
		p := New(workers)
		var completed atomic.Int64
		const total = 200
		for i := 0; i < total; i++ {
			require.NoError(t, p.Commit(func() {
				completed.Add(1)
			}))
		}
		p.Stop()
		assert.Equal(t, int64(total), completed.Load(), "workers=%d", workers)
	}
}

func TestDefaultSize(t *testing.T) {
	p := New(0)
	defer p.Stop()
	assert.Positive(t, p.Size())
	assert.LessOrEqual(t, p.Size(), MaxWorkers)
}

func TestSizeCap(t *testing.T) {
	p := New(10000)
	defer p.Stop()
	assert.Equal(t, MaxWorkers, p.Size())
}

func TestCommitAfterStopFails(t *testing.T) {
	p := New(2)
	p.Stop()
	assert.ErrorIs(t, p.Commit(func() {}), ErrStopped)
	// Stop is idempotent.
	p.Stop()
}

func TestBackPressureBounds(t *testing.T) {
	p := New(2)
	defer p.Stop()

	gate := make(chan struct{})
	var running atomic.Int64
	var peak atomic.Int64
	var committed atomic.Int64

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			p.Commit(func() {
				n := running.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				<-gate
				running.Add(-1)
			})
			committed.Add(1)
		}
	}()

	time.Sleep(50 * time.Millisecond)
	// Two running plus two queued fill the in-flight bound of 2*size;
	// the next Commit blocks until the gate opens.
	assert.LessOrEqual(t, committed.Load(), int64(4))
	close(gate)
	wg.Wait()
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestSharedStateUnderLock(t *testing.T) {
	p := New(4)
	results := make(map[int]int)
	var mu sync.Mutex

	for i := 0; i < 100; i++ {
		i := i
		require.NoError(t, p.Commit(func() {
			mu.Lock()
			results[i%10]++
			mu.Unlock()
		}))
	}
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	for k, v := range results {
		assert.Equal(t, 10, v, "bucket %d", k)
	}
}
