package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vicmar/server/internal/models"
)

type failingKV struct {
	*MemoryKV
	failPuts bool
}

func (f *failingKV) Put(ctx context.Context, key string, value []byte) error {
	if f.failPuts {
		return errors.New("disk full")
	}
	return f.MemoryKV.Put(ctx, key, value)
}

func newPropertyStore(t *testing.T, kv KV) *Store[models.Property] {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	seq := 0
	return New[models.Property](kv, "property", logger,
		WithClock[models.Property](func() time.Time { return now }),
		WithIDGenerator[models.Property](func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
		WithValidator[models.Property](models.Property.Validate),
	)
}

func seedProperties(t *testing.T, s *Store[models.Property], prices ...int) {
	t.Helper()
	records := make([]models.Property, len(prices))
	for i, price := range prices {
		records[i] = models.Property{
			ID:           fmt.Sprintf("p%d", i),
			Title:        fmt.Sprintf("Unit %d", i),
			PropertyType: models.TypeDuplex,
			Price:        price,
			Status:       models.StatusAvailable,
			CreatedDate:  time.Date(2025, 12, 1+i, 10, 0, 0, 0, time.UTC),
		}
	}
	written, err := s.Seed(context.Background(), records)
	require.NoError(t, err)
	require.True(t, written)
}

func prices(props []models.Property) []int {
	out := make([]int, len(props))
	for i, p := range props {
		out[i] = p.Price
	}
	return out
}

func TestStore_ListSortsDescendingByPrice(t *testing.T) {
	s := newPropertyStore(t, NewMemoryKV())
	seedProperties(t, s, 2500000, 800000, 1500000)

	props, err := s.List(context.Background(), "-price", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2500000, 1500000, 800000}, prices(props))

	again, err := s.List(context.Background(), "-price", 0)
	require.NoError(t, err)
	assert.Equal(t, props, again)
}

func TestStore_ListSortModes(t *testing.T) {
	ctx := context.Background()
	s := newPropertyStore(t, NewMemoryKV())
	seedProperties(t, s, 1500000, 800000, 2500000)

	tests := []struct {
		name      string
		sortField string
		limit     int
		wantIDs   []string
	}{
		{name: "no sort keeps stored order", sortField: "", wantIDs: []string{"p0", "p1", "p2"}},
		{name: "ascending price", sortField: "price", wantIDs: []string{"p1", "p0", "p2"}},
		{name: "newest first", sortField: "-created_date", wantIDs: []string{"p2", "p1", "p0"}},
		{name: "oldest first", sortField: "created_date", wantIDs: []string{"p0", "p1", "p2"}},
		{name: "string field", sortField: "-title", wantIDs: []string{"p2", "p1", "p0"}},
		{name: "limit", sortField: "-created_date", limit: 2, wantIDs: []string{"p2", "p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, err := s.List(ctx, tt.sortField, tt.limit)
			require.NoError(t, err)

			ids := make([]string, len(props))
			for i, p := range props {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStore_SortIsStableAndCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := newPropertyStore(t, NewMemoryKV())
	_, err := s.Seed(ctx, []models.Property{
		{ID: "a", Title: "beta", Status: models.StatusAvailable, Price: 1},
		{ID: "b", Title: "Alpha", Status: models.StatusAvailable, Price: 1},
		{ID: "c", Title: "alpha", Status: models.StatusAvailable, Price: 1},
	})
	require.NoError(t, err)

	byTitle, err := s.List(ctx, "title", 0)
	require.NoError(t, err)
	assert.Equal(t, "b", byTitle[0].ID, "upper case sorts before lower case")
	assert.Equal(t, "c", byTitle[1].ID)
	assert.Equal(t, "a", byTitle[2].ID)

	byPrice, err := s.List(ctx, "-price", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, []string{byPrice[0].ID, byPrice[1].ID, byPrice[2].ID})
}

func TestStore_Filter(t *testing.T) {
	ctx := context.Background()
	s := newPropertyStore(t, NewMemoryKV())
	seedProperties(t, s, 800000, 1500000, 2500000)

	all, err := s.Filter(ctx, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, []string{"p0", "p1", "p2"}, []string{all[0].ID, all[1].ID, all[2].ID})

	byID, err := s.Filter(ctx, map[string]any{"id": "p1"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, 1500000, byID[0].Price)

	byPrice, err := s.Filter(ctx, map[string]any{"price": 2500000, "status": models.StatusAvailable})
	require.NoError(t, err)
	require.Len(t, byPrice, 1)
	assert.Equal(t, "p2", byPrice[0].ID)

	none, err := s.Filter(ctx, map[string]any{"price": 2500000, "status": models.StatusSold})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_FilterWithTextCriteria(t *testing.T) {
	ctx := context.Background()
	s := newPropertyStore(t, NewMemoryKV())
	_, err := s.Seed(ctx, []models.Property{
		{ID: "a", Title: "2024", Price: 2024, Status: models.StatusAvailable},
		{ID: "b", Title: "Phase 2", Price: 1500000, Status: models.StatusAvailable},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		criteria map[string]any
		wantIDs  []string
	}{
		{name: "numeric text on string field", criteria: map[string]any{"title": "2024"}, wantIDs: []string{"a"}},
		{name: "text on numeric field", criteria: map[string]any{"price": "1500000"}, wantIDs: []string{"b"}},
		{name: "text and number agree", criteria: map[string]any{"title": "2024", "price": "2024"}, wantIDs: []string{"a"}},
		{name: "string field is not coerced", criteria: map[string]any{"title": "2024.0"}, wantIDs: []string{}},
		{name: "NaN matches nothing", criteria: map[string]any{"title": "NaN"}, wantIDs: []string{}},
		{name: "NaN on numeric field", criteria: map[string]any{"price": "NaN"}, wantIDs: []string{}},
		{name: "Inf on numeric field", criteria: map[string]any{"price": "Inf"}, wantIDs: []string{}},
		{name: "non-numeric text on numeric field", criteria: map[string]any{"price": "cheap"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, err := s.Filter(ctx, tt.criteria)
			require.NoError(t, err)

			ids := make([]string, len(props))
			for i, p := range props {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStore_ListTwiceGivesSameOrder(t *testing.T) {
	ctx := context.Background()
	s := newPropertyStore(t, NewMemoryKV())
	seedProperties(t, s, 1500000, 800000, 1500000, 800000, 1500000)

	ids := func(props []models.Property) []string {
		out := make([]string, len(props))
		for i, p := range props {
			out[i] = p.ID
		}
		return out
	}

	tests := []struct {
		name      string
		sortField string
		wantIDs   []string
	}{
		{name: "ascending with ties", sortField: "price", wantIDs: []string{"p1", "p3", "p0", "p2", "p4"}},
		{name: "descending with ties", sortField: "-price", wantIDs: []string{"p0", "p2", "p4", "p1", "p3"}},
		{name: "all keys equal", sortField: "status", wantIDs: []string{"p0", "p1", "p2", "p3", "p4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := s.List(ctx, tt.sortField, 0)
			require.NoError(t, err)
			second, err := s.List(ctx, tt.sortField, 0)
			require.NoError(t, err)

			assert.Equal(t, ids(first), ids(second))
			assert.Equal(t, tt.wantIDs, ids(first))
		})
	}
}

func TestStore_CreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newPropertyStore(t, NewMemoryKV())

	input := models.Property{
		Title:        "Triplex (Center Unit)",
		PropertyType: models.TypeTriplex,
		Price:        1900000,
		Location:     "Batangas",
		Status:       models.StatusAvailable,
		FloorPlans: map[string]models.FloorPlan{
			"groundFloor": {Image: "gf.jpg", Label: "Ground Floor"},
		},
	}
	created, err := s.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
	assert.True(t, created.CreatedDate.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	expected := input
	expected.ID = created.ID
	expected.CreatedDate = got.CreatedDate
	assert.Equal(t, expected, *got)
}

func TestStore_CreateOverridesClientIDAndDate(t *testing.T) {
	ctx := context.Background()
	s := newPropertyStore(t, NewMemoryKV())

	created, err := s.Create(ctx, models.Property{
		ID:          "client-chosen",
		Status:      models.StatusAvailable,
		CreatedDate: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, 2026, created.CreatedDate.Year())
}

func TestStore_UpdatePatchesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	s := newPropertyStore(t, NewMemoryKV())
	seedProperties(t, s, 800000, 1500000)

	before, err := s.Get(ctx, "p1")
	require.NoError(t, err)

	updated, err := s.Update(ctx, "p1", map[string]any{"status": models.StatusReserved, "id": "hijack"})
	require.NoError(t, err)
	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, models.StatusReserved, updated.Status)

	after, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	expected := *before
	expected.Status = models.StatusReserved
	assert.Equal(t, expected, *after)

	other, err := s.Get(ctx, "p0")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, other.Status)
}

func TestStore_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	s := newPropertyStore(t, NewMemoryKV())
	seedProperties(t, s, 800000)

	_, err := s.Update(ctx, "missing", map[string]any{"price": 1})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, "p0", map[string]any{"status": "demolished"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = s.Update(ctx, "p0", map[string]any{"price": -5})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = s.Update(ctx, "p0", map[string]any{"price": "cheap"})
	assert.ErrorIs(t, err, ErrInvalid)

	got, err := s.Get(ctx, "p0")
	require.NoError(t, err)
	assert.Equal(t, 800000, got.Price)
	assert.Equal(t, models.StatusAvailable, got.Status)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newPropertyStore(t, NewMemoryKV())
	seedProperties(t, s, 800000, 1500000)

	require.NoError(t, s.Delete(ctx, "p0"))

	got, err := s.Get(ctx, "p0")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, s.Delete(ctx, "p0"), ErrNotFound)

	remaining, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "p1", remaining[0].ID)
}

func TestStore_FailedWriteLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{MemoryKV: NewMemoryKV()}
	s := newPropertyStore(t, kv)
	seedProperties(t, s, 800000, 1500000)
	revision := s.Revision()

	kv.failPuts = true

	_, err := s.Create(ctx, models.Property{Title: "New", Status: models.StatusAvailable})
	assert.ErrorIs(t, err, ErrStorage)

	_, err = s.Update(ctx, "p0", map[string]any{"price": 1})
	assert.ErrorIs(t, err, ErrStorage)

	assert.ErrorIs(t, s.Delete(ctx, "p1"), ErrStorage)

	props, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{800000, 1500000}, prices(props))
	assert.Equal(t, revision, s.Revision())
}

func TestStore_SeedOnlyWhenAbsent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := newPropertyStore(t, kv)
	seedProperties(t, s, 800000)

	written, err := s.Seed(ctx, []models.Property{{ID: "other", Status: models.StatusSold}})
	require.NoError(t, err)
	assert.False(t, written)

	_, ok, err := kv.Get(ctx, "entity:property")
	require.NoError(t, err)
	assert.True(t, ok)

	props, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "p0", props[0].ID)
}

func TestStore_CorruptCollectionIsStorageFailure(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, EntityKey("property"), []byte("{not json")))
	s := newPropertyStore(t, kv)

	_, err := s.List(ctx, "", 0)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestNewID_IsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
