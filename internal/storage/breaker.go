package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Breaker fails fast once the wrapped backend keeps erroring. ErrNotFound
// counts as success so an empty cart never trips it.
type Breaker struct {
	next Storage
	cb   *gobreaker.CircuitBreaker[[]byte]
}

func NewBreaker(name string, next Storage) *Breaker {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker[[]byte](st)}
}

func (b *Breaker) Get(ctx context.Context, key string) ([]byte, error) {
	return b.cb.Execute(func() ([]byte, error) {
		return b.next.Get(ctx, key)
	})
}

func (b *Breaker) Set(ctx context.Context, key string, value []byte) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Set(ctx, key, value)
	})
	return err
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
