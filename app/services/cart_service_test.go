package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
)

func productIDs(items []models.Product) []uint {
	ids := make([]uint, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	return ids
}

func TestCart_EmptyHasZeroTotal(t *testing.T) {
	s := newStore(t, nil)
	ann := s.signUp(t, "Ann", "ann@x.io")

	snap, err := s.cart.Get(context.Background(), ann)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0, snap.Total)
}

func TestCart_TotalIsSumOfPrices(t *testing.T) {
	s := newStore(t, nil)
	ann := s.signUp(t, "Ann", "ann@x.io")
	ctx := context.Background()

	_, err := s.cart.Add(ctx, ann, 1)
	require.NoError(t, err)
	snap, err := s.cart.Add(ctx, ann, 2)
	require.NoError(t, err)

	assert.Equal(t, 30, snap.Total)
	assert.Equal(t, []uint{1, 2}, productIDs(snap.Items))
}

func TestCart_AddIsIdempotent(t *testing.T) {
	s := newStore(t, nil)
	ann := s.signUp(t, "Ann", "ann@x.io")
	ctx := context.Background()

	_, err := s.cart.Add(ctx, ann, 1)
	require.NoError(t, err)
	snap, err := s.cart.Add(ctx, ann, 1)
	require.NoError(t, err)

	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 10, snap.Total)
}

func TestCart_AddUnknownProduct(t *testing.T) {
	s := newStore(t, nil)
	ann := s.signUp(t, "Ann", "ann@x.io")

	_, err := s.cart.Add(context.Background(), ann, 99)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCart_RemoveAbsentIsNotFound(t *testing.T) {
	s := newStore(t, nil)
	ann := s.signUp(t, "Ann", "ann@x.io")
	ctx := context.Background()

	assert.ErrorIs(t, s.cart.Remove(ctx, ann, 2), services.ErrNotFound)
	assert.ErrorIs(t, s.cart.Remove(ctx, ann, 99), services.ErrNotFound)
}

func TestCart_AddRemoveReAddRoundTrip(t *testing.T) {
	s := newStore(t, nil)
	ann := s.signUp(t, "Ann", "ann@x.io")
	ctx := context.Background()

	_, err := s.cart.Add(ctx, ann, 2)
	require.NoError(t, err)
	require.NoError(t, s.cart.Remove(ctx, ann, 2))

	snap, err := s.cart.Get(ctx, ann)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	snap, err = s.cart.Add(ctx, ann, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, productIDs(snap.Items))
}

func TestCart_IsPerUser(t *testing.T) {
	s := newStore(t, nil)
	ann := s.signUp(t, "Ann", "ann@x.io")
	bob := s.signUp(t, "Bob", "bob@x.io")
	ctx := context.Background()

	_, err := s.cart.Add(ctx, ann, 1)
	require.NoError(t, err)

	snap, err := s.cart.Get(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
}

func TestCart_ImagesResolveToURLs(t *testing.T) {
	s := newStore(t, nil)
	ann := s.signUp(t, "Ann", "ann@x.io")
	ctx := context.Background()

	_, err := s.cart.Add(ctx, ann, 1)
	require.NoError(t, err)
	snap, err := s.cart.Add(ctx, ann, 3)
	require.NoError(t, err)

	require.Len(t, snap.Items, 2)
	assert.Equal(t, "/storage/products/mug.svg", snap.Items[0].Image)
	assert.Equal(t, "https://cdn.example.com/hat.png", snap.Items[1].Image)
}

func TestCart_RequiresIdentity(t *testing.T) {
	s := newStore(t, nil)
	ctx := context.Background()

	_, err := s.cart.Add(ctx, nil, 1)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	assert.ErrorIs(t, s.cart.Remove(ctx, nil, 1), services.ErrUnauthenticated)
	_, err = s.cart.Get(ctx, nil)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}
