package cart

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"ds-storefront/internal/catalog"
	"ds-storefront/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorage is a mock implementation of storage.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func fixedClock() func() time.Time {
	t := time.UnixMilli(1_700_000_000_000)
	return func() time.Time { return t }
}

func little(name string) LineItemInput {
	return LineItemInput{Template: name, Category: "restaurant", Tier: catalog.TierLittle, Color: "#663300", Logo: "default"}
}

func medium(name string) LineItemInput {
	return LineItemInput{Template: name, Category: "salon", Tier: catalog.TierMedium, Color: "#000000", Logo: "custom"}
}

func TestStore_AddPricesFromTier(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemory(), "")

	a, err := s.Add(ctx, little("Royal Feast"))
	require.NoError(t, err)
	b, err := s.Add(ctx, medium("Fresh Look"))
	require.NoError(t, err)

	assert.Equal(t, int64(9000), a.Price)
	assert.Equal(t, "Little Pack", a.Package)
	assert.Equal(t, int64(12000), b.Price)
	assert.Equal(t, "Medium Pack", b.Package)

	assert.Equal(t, int64(21000), s.Subtotal())
	assert.Equal(t, s.Subtotal(), s.Total())
	assert.Equal(t, int64(0), s.Tax())
	assert.Len(t, s.Items(), 2)
	assert.Equal(t, 2, s.Count())
}

func TestStore_EmptyTotals(t *testing.T) {
	s := NewStore(storage.NewMemory(), "")

	assert.Equal(t, int64(0), s.Subtotal())
	assert.Equal(t, int64(0), s.Total())
	assert.Empty(t, s.Items())
}

func TestStore_IDsUniqueWithinSameMillisecond(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemory(), "", WithClock(fixedClock()))

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		item, err := s.Add(ctx, little("Royal Feast"))
		require.NoError(t, err)
		assert.False(t, seen[item.ID], "duplicate id %d", item.ID)
		seen[item.ID] = true
	}
}

func TestStore_IDsNotReusedAfterRemove(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemory(), "", WithClock(fixedClock()))

	first, _ := s.Add(ctx, little("A"))
	second, _ := s.Add(ctx, little("B"))
	require.NoError(t, s.Remove(ctx, second.ID))

	third, _ := s.Add(ctx, little("C"))
	assert.NotEqual(t, second.ID, third.ID)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemory(), "")

	a, _ := s.Add(ctx, little("A"))
	b, _ := s.Add(ctx, medium("B"))

	t.Run("UnknownIDIsNoop", func(t *testing.T) {
		before := s.Items()
		require.NoError(t, s.Remove(ctx, -1))
		assert.Equal(t, before, s.Items())
	})

	t.Run("RemovesMatch", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, a.ID))
		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, b.ID, items[0].ID)
		assert.Equal(t, int64(12000), s.Subtotal())
	})
}

func TestStore_RemoveItems(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	s := NewStore(mem, "")

	a, _ := s.Add(ctx, little("A"))
	b, _ := s.Add(ctx, medium("B"))
	c, _ := s.Add(ctx, little("C"))

	t.Run("UnknownIDsAreNoop", func(t *testing.T) {
		n, err := s.RemoveItems(ctx, []int64{-1, -2})
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Len(t, s.Items(), 3)
	})

	t.Run("DropsOnlyListed", func(t *testing.T) {
		n, err := s.RemoveItems(ctx, []int64{a.ID, c.ID, -1})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []LineItem{b}, s.Items())

		reloaded := NewStore(mem, "")
		require.NoError(t, reloaded.Load(ctx))
		assert.Equal(t, []LineItem{b}, reloaded.Items())
	})
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	s := NewStore(mem, "")

	_, _ = s.Add(ctx, little("A"))
	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Items())
	raw, err := mem.Get(ctx, DefaultStorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestStore_LoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	s := NewStore(mem, "")
	_, _ = s.Add(ctx, little("A"))
	_, _ = s.Add(ctx, medium("B"))
	_, _ = s.Add(ctx, little("C"))

	reloaded := NewStore(mem, "")
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, s.Items(), reloaded.Items())
}

func TestStore_LoadKeepsFrozenPrice(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	blob := `[{"id":1,"template":"Old","category":"salon","package":"Huge Pack","packageType":"huge","color":"#fff","logo":"default","price":14000}]`
	require.NoError(t, mem.Set(ctx, DefaultStorageKey, []byte(blob)))

	s := NewStore(mem, "")
	require.NoError(t, s.Load(ctx))

	assert.Equal(t, int64(14000), s.Subtotal())
}

func TestStore_LoadEmptyCases(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingKey", func(t *testing.T) {
		s := NewStore(storage.NewMemory(), "")
		assert.NoError(t, s.Load(ctx))
		assert.Empty(t, s.Items())
	})

	t.Run("CorruptBlob", func(t *testing.T) {
		mem := storage.NewMemory()
		require.NoError(t, mem.Set(ctx, DefaultStorageKey, []byte(`{not json`)))

		s := NewStore(mem, "")
		assert.NoError(t, s.Load(ctx))
		assert.Empty(t, s.Items())
	})

	t.Run("NullBlob", func(t *testing.T) {
		mem := storage.NewMemory()
		require.NoError(t, mem.Set(ctx, DefaultStorageKey, []byte(`null`)))

		s := NewStore(mem, "")
		assert.NoError(t, s.Load(ctx))
		assert.NotNil(t, s.Items())
		assert.Empty(t, s.Items())
	})

	t.Run("ReadFailure", func(t *testing.T) {
		st := new(MockStorage)
		st.On("Get", mock.Anything, DefaultStorageKey).Return(nil, errors.New("quota exceeded"))

		s := NewStore(st, "")
		err := s.Load(ctx)
		assert.ErrorIs(t, err, ErrStorageUnavailable)
		assert.Empty(t, s.Items())
		st.AssertExpectations(t)
	})
}

func TestStore_StorageFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	st := new(MockStorage)
	st.On("Set", mock.Anything, "cart", mock.Anything).Return(errors.New("quota exceeded"))

	s := NewStore(st, "cart")

	item, err := s.Add(ctx, little("A"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, "A", item.Template)
	assert.Len(t, s.Items(), 1)

	assert.ErrorIs(t, s.Remove(ctx, item.ID), ErrStorageUnavailable)
	assert.Empty(t, s.Items())
}

func TestStore_PersistsWholeSequenceOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	st := new(MockStorage)

	var writes [][]LineItem
	st.On("Set", mock.Anything, DefaultStorageKey, mock.Anything).
		Run(func(args mock.Arguments) {
			var items []LineItem
			require.NoError(t, json.Unmarshal(args.Get(2).([]byte), &items))
			writes = append(writes, items)
		}).
		Return(nil)

	s := NewStore(st, "", WithClock(fixedClock()))
	a, _ := s.Add(ctx, little("A"))
	_, _ = s.Add(ctx, medium("B"))
	_ = s.Remove(ctx, a.ID)
	_ = s.Clear(ctx)

	require.Len(t, writes, 4)
	assert.Len(t, writes[0], 1)
	assert.Len(t, writes[1], 2)
	assert.Len(t, writes[2], 1)
	assert.Equal(t, "B", writes[2][0].Template)
	assert.Empty(t, writes[3])
}

func TestStore_OnChange(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemory(), "")

	var counts []int
	var totals []int64
	s.OnChange(func(snap Snapshot) {
		counts = append(counts, snap.Count)
		totals = append(totals, snap.Total)
	})

	require.NoError(t, s.Load(ctx))
	a, _ := s.Add(ctx, little("A"))
	_, _ = s.Add(ctx, medium("B"))
	_ = s.Remove(ctx, a.ID)
	_ = s.Clear(ctx)

	assert.Equal(t, []int{0, 1, 2, 1, 0}, counts)
	assert.Equal(t, []int64{0, 9000, 21000, 12000, 0}, totals)
}

func TestStore_RandomAddRemoveInvariants(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	s := NewStore(storage.NewMemory(), "", WithClock(fixedClock()))
	tiers := catalog.Tiers()

	adds, removes := 0, 0
	for i := 0; i < 300; i++ {
		items := s.Items()
		if len(items) > 0 && rng.Intn(3) == 0 {
			victim := items[rng.Intn(len(items))]
			require.NoError(t, s.Remove(ctx, victim.ID))
			removes++
			continue
		}
		_, err := s.Add(ctx, LineItemInput{Template: "T", Category: "c", Tier: tiers[rng.Intn(len(tiers))]})
		require.NoError(t, err)
		adds++
	}

	items := s.Items()
	assert.Len(t, items, adds-removes)

	ids := map[int64]bool{}
	var sum int64
	for _, it := range items {
		assert.False(t, ids[it.ID])
		ids[it.ID] = true
		assert.Equal(t, it.PackageType.Price(), it.Price)
		sum += it.Price
	}
	assert.Equal(t, sum, s.Subtotal())
	assert.Equal(t, sum, s.Total())
}
