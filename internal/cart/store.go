package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ds-storefront/internal/logger"
	"ds-storefront/internal/storage"

	"go.uber.org/zap"
)

const DefaultStorageKey = "dsCreationsCart"

// Store owns the cart sequence. Every mutation rewrites the whole blob under
// one key, then notifies listeners.
type Store struct {
	mu        sync.Mutex
	storage   storage.Storage
	key       string
	now       func() time.Time
	items     []LineItem
	lastID    int64
	listeners []Listener
}

type Option func(*Store)

// WithClock replaces time.Now as the source of item IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(st storage.Storage, key string, opts ...Option) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	s := &Store{
		storage: st,
		key:     key,
		now:     time.Now,
		items:   []LineItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers a listener called after Load and every mutation.
func (s *Store) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Load replaces the in-memory cart with the persisted one. A missing or
// corrupt blob yields an empty cart without error.
func (s *Store) Load(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	data, err := s.storage.Get(ctx, s.key)

	var items []LineItem
	var loadErr error
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		log.Warn("failed to read cart, starting empty", zap.String("key", s.key), zap.Error(err))
		loadErr = fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	default:
		if jsonErr := json.Unmarshal(data, &items); jsonErr != nil {
			log.Warn("corrupt cart blob, starting empty", zap.String("key", s.key), zap.Error(jsonErr))
			items = nil
		}
	}

	s.mu.Lock()
	s.items = append([]LineItem{}, items...)
	for _, it := range s.items {
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return loadErr
}

// Add appends a new item priced from its tier. Input is not validated. On a
// storage error the item is still in the cart and is returned with the error.
func (s *Store) Add(ctx context.Context, in LineItemInput) (LineItem, error) {
	s.mu.Lock()
	item := LineItem{
		ID:          s.nextIDLocked(),
		Template:    in.Template,
		Category:    in.Category,
		Package:     in.Tier.DisplayName(),
		PackageType: in.Tier,
		Color:       in.Color,
		Logo:        in.Logo,
		Price:       in.Tier.Price(),
	}
	s.items = append(s.items, item)
	err := s.persistLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	logger.FromCtx(ctx).Info("item added to cart",
		zap.Int64("item_id", item.ID),
		zap.String("template", item.Template),
		zap.String("tier", string(item.PackageType)),
	)

	s.notify(snap)
	return item, err
}

// Remove drops the first item with the given id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	err := s.persistLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return err
}

// RemoveItems drops every item whose id is listed and reports how many went.
// Nothing is persisted when no id matched.
func (s *Store) RemoveItems(ctx context.Context, ids []int64) (int, error) {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	kept := make([]LineItem, 0, len(s.items))
	for _, it := range s.items {
		if _, ok := drop[it.ID]; !ok {
			kept = append(kept, it)
		}
	}
	removed := len(s.items) - len(kept)
	if removed == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	s.items = kept
	err := s.persistLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return removed, err
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = []LineItem{}
	err := s.persistLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return err
}

// Items returns a copy in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]LineItem{}, s.items...)
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

// Tax is always zero; it is kept as its own figure so totals stay explicit.
func (s *Store) Tax() int64 {
	return 0
}

func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked() + s.Tax()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) subtotalLocked() int64 {
	var sum int64
	for _, it := range s.items {
		sum += it.Price
	}
	return sum
}

func (s *Store) snapshotLocked() Snapshot {
	subtotal := s.subtotalLocked()
	tax := s.Tax()
	return Snapshot{
		Items:    append([]LineItem{}, s.items...),
		Count:    len(s.items),
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// nextIDLocked derives the id from the clock in milliseconds, bumping past
// the largest id seen so two adds in the same millisecond never collide.
func (s *Store) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := s.storage.Set(ctx, s.key, data); err != nil {
		logger.FromCtx(ctx).Warn("failed to persist cart",
			zap.String("key", s.key),
			zap.Int("items", len(s.items)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) notify(snap Snapshot) {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}
