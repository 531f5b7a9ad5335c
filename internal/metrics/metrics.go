package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Storefront counts cart and checkout activity since process start.
type Storefront struct {
	ItemsAdded      Counter
	ItemsRemoved    Counter
	CartsCleared    Counter
	OrdersSubmitted Counter
	OrdersRejected  Counter
}

type Snapshot struct {
	ItemsAdded      uint64 `json:"itemsAdded"`
	ItemsRemoved    uint64 `json:"itemsRemoved"`
	CartsCleared    uint64 `json:"cartsCleared"`
	OrdersSubmitted uint64 `json:"ordersSubmitted"`
	OrdersRejected  uint64 `json:"ordersRejected"`
}

func (s *Storefront) Snapshot() Snapshot {
	return Snapshot{
		ItemsAdded:      s.ItemsAdded.Load(),
		ItemsRemoved:    s.ItemsRemoved.Load(),
		CartsCleared:    s.CartsCleared.Load(),
		OrdersSubmitted: s.OrdersSubmitted.Load(),
		OrdersRejected:  s.OrdersRejected.Load(),
	}
}
