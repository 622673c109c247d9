package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanfields/pricelens/internal/common"
	"github.com/rowanfields/pricelens/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.CreateSession(ctx, "march-audit", 0.95)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := store.GetSession(ctx, "march-audit")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.InDelta(t, 0.95, got.Threshold, 1e-9)

	// Duplicate names are rejected.
	_, err = store.CreateSession(ctx, "march-audit", 0.90)
	assert.True(t, errors.Is(err, common.ErrDuplicateSession))

	// Unknown sessions report a typed error.
	_, err = store.GetSession(ctx, "nope")
	assert.True(t, errors.Is(err, common.ErrSessionNotFound))

	require.NoError(t, store.UpdateThreshold(ctx, created.ID, 0.90))
	got, err = store.GetSession(ctx, "march-audit")
	require.NoError(t, err)
	assert.InDelta(t, 0.90, got.Threshold, 1e-9)

	sessions, err := store.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestOverrideRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	session, err := store.CreateSession(ctx, "s1", 0.95)
	require.NoError(t, err)

	five, two := 5, 2
	require.NoError(t, store.SaveOverride(ctx, session.ID, 3, model.RowOverride{
		StandardQty:   &five,
		PromoQty:      &two,
		StandardPrice: "99.50",
	}))
	require.NoError(t, store.SaveOverride(ctx, session.ID, 7, model.RowOverride{
		PromoQty: &two,
	}))

	overrides, err := store.GetOverrides(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, overrides, 2)

	ov := overrides[3]
	require.NotNil(t, ov.StandardQty)
	assert.Equal(t, 5, *ov.StandardQty)
	require.NotNil(t, ov.PromoQty)
	assert.Equal(t, 2, *ov.PromoQty)
	assert.Equal(t, "99.50", ov.StandardPrice)
	assert.Equal(t, "", ov.PromoPrice)

	// Sparse fields stay absent after the round trip.
	assert.Nil(t, overrides[7].StandardQty)

	// Upsert replaces in place.
	require.NoError(t, store.SaveOverride(ctx, session.ID, 3, model.RowOverride{PromoQty: &five}))
	overrides, err = store.GetOverrides(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, overrides[3].StandardQty)
	assert.Equal(t, 5, *overrides[3].PromoQty)

	require.NoError(t, store.DeleteOverride(ctx, session.ID, 3))
	overrides, err = store.GetOverrides(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, overrides, 1)

	// Deleting a row with no override is a no-op.
	require.NoError(t, store.DeleteOverride(ctx, session.ID, 42))
}

func TestAcceptedItemsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	session, err := store.CreateSession(ctx, "s1", 0.95)
	require.NoError(t, err)

	require.NoError(t, store.AddAcceptedItem(ctx, session.ID, "B200"))
	require.NoError(t, store.AddAcceptedItem(ctx, session.ID, "A100"))
	// Accepting twice is idempotent.
	require.NoError(t, store.AddAcceptedItem(ctx, session.ID, "A100"))

	codes, err := store.GetAcceptedItems(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A100", "B200"}, codes)

	require.NoError(t, store.RemoveAcceptedItem(ctx, session.ID, "A100"))
	codes, err = store.GetAcceptedItems(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"B200"}, codes)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	s1, err := store.CreateSession(ctx, "s1", 0.95)
	require.NoError(t, err)
	s2, err := store.CreateSession(ctx, "s2", 0.95)
	require.NoError(t, err)

	one := 1
	require.NoError(t, store.SaveOverride(ctx, s1.ID, 0, model.RowOverride{StandardQty: &one}))
	require.NoError(t, store.AddAcceptedItem(ctx, s1.ID, "A100"))

	overrides, err := store.GetOverrides(ctx, s2.ID)
	require.NoError(t, err)
	assert.Empty(t, overrides)

	codes, err := store.GetAcceptedItems(ctx, s2.ID)
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))
}
