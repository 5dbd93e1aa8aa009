package consent

import (
	"context"
	"errors"
	"testing"

	"givehaven/internal/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct {
	preferences.Store
}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("boom")
}

func TestBanner_PendingUntilChoice(t *testing.T) {
	ctx := context.Background()

	for _, choice := range []Choice{ChoiceAll, ChoiceEssential} {
		store := preferences.NewMemoryStore()
		b := NewBanner(store)

		pending, err := b.Pending(ctx)
		require.NoError(t, err)
		assert.True(t, pending)

		require.NoError(t, b.Choose(ctx, choice))

		remounted := NewBanner(store)
		pending, err = remounted.Pending(ctx)
		require.NoError(t, err)
		assert.False(t, pending, "banner never reappears after %s", choice)

		current, ok, err := remounted.Current(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, choice, current)
	}
}

func TestBanner_DismissIsEssentialOnly(t *testing.T) {
	ctx := context.Background()
	store := preferences.NewMemoryStore()
	b := NewBanner(store)

	require.NoError(t, b.Dismiss(ctx))

	v, _, _ := store.Get(ctx, StorageKey)
	assert.Equal(t, "essential", v)
	assert.False(t, b.AnalyticsAllowed(ctx))
}

func TestBanner_AnalyticsAllowed(t *testing.T) {
	ctx := context.Background()
	b := NewBanner(preferences.NewMemoryStore())

	assert.False(t, b.AnalyticsAllowed(ctx))
	require.NoError(t, b.Choose(ctx, ChoiceAll))
	assert.True(t, b.AnalyticsAllowed(ctx))
}

func TestBanner_RejectsUnknownChoice(t *testing.T) {
	err := NewBanner(preferences.NewMemoryStore()).Choose(context.Background(), Choice("maybe"))
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestBanner_CorruptStoredValueIsPending(t *testing.T) {
	ctx := context.Background()
	store := preferences.NewMemoryStore()
	require.NoError(t, store.Set(ctx, StorageKey, "yes please"))

	pending, err := NewBanner(store).Pending(ctx)
	require.NoError(t, err)
	assert.True(t, pending)
}

func TestBanner_StoreError(t *testing.T) {
	_, err := NewBanner(brokenStore{}).Pending(context.Background())
	assert.Error(t, err)
}

func TestParseChoice(t *testing.T) {
	c, err := ParseChoice("all")
	require.NoError(t, err)
	assert.Equal(t, ChoiceAll, c)

	_, err = ParseChoice("")
	assert.ErrorIs(t, err, ErrInvalidChoice)
}
