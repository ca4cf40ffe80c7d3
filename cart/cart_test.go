package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), "user:+919876543210", NewMemoryStorage())
	require.NoError(t, err)
	return s
}

func TestAddItemMergesSameProductVariant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, Item{ProductID: "p1", VariantID: "v1", Name: "Rudraksha Mala", Price: 500, Quantity: 1}))
	require.NoError(t, s.AddItem(ctx, Item{ProductID: "p1", VariantID: "v1", Name: "Rudraksha Mala", Price: 500, Quantity: 2}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemDistinctVariantsStaySeparate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, Item{ProductID: "p1", VariantID: "v1", Quantity: 1}))
	require.NoError(t, s.AddItem(ctx, Item{ProductID: "p1", VariantID: "v2", Quantity: 1}))

	assert.Len(t, s.Items(), 2)
}

func TestTotalsDerivedOnRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, Item{ProductID: "p1", VariantID: "v1", Price: 500, Discount: 10, Quantity: 2}))

	totals := s.Totals()
	assert.Equal(t, 2, totals.TotalItems)
	assert.InDelta(t, 900.0, totals.TotalPrice, 0.001)
	assert.InDelta(t, 100.0, totals.DiscountAmount, 0.001)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, Item{ProductID: "p1", VariantID: "v1", Quantity: 2}))
	require.NoError(t, s.UpdateQuantity(ctx, "p1", "v1", 0))
	assert.Empty(t, s.Items())
}

func TestFreezeBlocksMutation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, Item{ProductID: "p1", VariantID: "v1", Quantity: 1}))
	require.NoError(t, s.Freeze(ctx))

	assert.ErrorIs(t, s.AddItem(ctx, Item{ProductID: "p2", VariantID: "v1", Quantity: 1}), ErrCartFrozen)
	assert.ErrorIs(t, s.UpdateQuantity(ctx, "p1", "v1", 5), ErrCartFrozen)
	assert.ErrorIs(t, s.Clear(ctx), ErrCartFrozen)

	require.NoError(t, s.Unfreeze(ctx))
	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Items())
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	require.NoError(t, s.AddItem(ctx, Item{ProductID: "p1", VariantID: "v1", Quantity: 1}))
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Totals.TotalItems)

	unsubscribe()
	require.NoError(t, s.AddItem(ctx, Item{ProductID: "p1", VariantID: "v1", Quantity: 1}))
	assert.Len(t, got, 1)
}

func TestStateSurvivesReload(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	s1, err := New(ctx, "k", storage)
	require.NoError(t, err)
	require.NoError(t, s1.AddItem(ctx, Item{ProductID: "p1", VariantID: "v1", Quantity: 2}))
	require.NoError(t, s1.Freeze(ctx))

	s2, err := New(ctx, "k", storage)
	require.NoError(t, err)
	assert.True(t, s2.Frozen())
	require.Len(t, s2.Items(), 1)
	assert.Equal(t, 2, s2.Items()[0].Quantity)
}
