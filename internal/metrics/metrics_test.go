package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Concurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}

func TestStorefront_Snapshot(t *testing.T) {
	var s Storefront
	s.ItemsAdded.Inc()
	s.ItemsAdded.Inc()
	s.OrdersRejected.Inc()

	assert.Equal(t, Snapshot{ItemsAdded: 2, OrdersRejected: 1}, s.Snapshot())
}
