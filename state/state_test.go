package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crypto-tracker/models"
	"crypto-tracker/store"
)

func TestFreshDeviceDefaults(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := NewManager(kv, zap.NewNop()).For("d1")

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Authenticated)
	assert.Equal(t, "zinc", snap.Theme.Key)
	assert.Equal(t, models.PageMarket, snap.Page)

	h, err := s.Holdings(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultHoldings(), h)

	// defaults are persisted on first read
	for _, k := range []string{KeyAuth, KeyTheme, KeyPage, KeyHoldings} {
		_, err := kv.Get(ctx, "device:d1:"+k)
		assert.NoError(t, err, k)
	}
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	s := NewManager(kv, nil).For("d1")
	require.NoError(t, s.Login(ctx))
	_, err := s.SetTheme(ctx, "purple")
	require.NoError(t, err)
	require.NoError(t, s.SetPage(ctx, models.PagePortfolio))
	_, err = s.AddHolding(ctx, models.Holding{AssetID: "solana", Symbol: "SOL", Amount: 4, AvgPrice: 120})
	require.NoError(t, err)

	reloaded := NewManager(kv, nil).For("d1")
	snap, err := reloaded.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "Purple", snap.Theme.Name)
	assert.Equal(t, models.PagePortfolio, snap.Page)

	h, err := reloaded.Holdings(ctx)
	require.NoError(t, err)
	require.Len(t, h, 3)
	assert.Equal(t, "SOL", h[2].Symbol)

	require.NoError(t, reloaded.Logout(ctx))
	ok, err := s.Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDevicesAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemory(), nil)

	require.NoError(t, m.For("a").Login(ctx))
	ok, err := m.For("b").Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRejectsUnknownThemeAndPage(t *testing.T) {
	ctx := context.Background()
	s := NewManager(store.NewMemory(), nil).For("")

	_, err := s.SetTheme(ctx, "neon")
	assert.ErrorIs(t, err, ErrUnknownTheme)
	assert.ErrorIs(t, s.SetPage(ctx, "settings"), ErrUnknownPage)

	th, err := s.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "zinc", th.Key)
}

func TestEditHoldings(t *testing.T) {
	ctx := context.Background()
	s := NewManager(store.NewMemory(), nil).For("d")

	list, err := s.UpdateHolding(ctx, 1, models.Holding{AssetID: "ethereum", Symbol: "ETH", Amount: 3, AvgPrice: 3000})
	require.NoError(t, err)
	assert.Equal(t, 3.0, list[1].Amount)

	list, err = s.RemoveHolding(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ETH", list[0].Symbol)

	_, err = s.RemoveHolding(ctx, 5)
	assert.ErrorIs(t, err, ErrHoldingNotFound)
	_, err = s.UpdateHolding(ctx, -1, models.Holding{})
	assert.ErrorIs(t, err, ErrHoldingNotFound)

	got, err := s.Holdings(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, got)

	want := []models.Holding{{AssetID: "cardano", Symbol: "ADA", Amount: 100, AvgPrice: 0.5}}
	require.NoError(t, s.SetHoldings(ctx, want))
	got, err = s.Holdings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestShapelessStoredValuesFallBack(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	for _, k := range []string{KeyTheme, KeyPage, KeyHoldings} {
		require.NoError(t, kv.Set(ctx, "device:d:"+k, "null"))
	}
	s := NewManager(kv, zap.NewNop()).For("d")

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "zinc", snap.Theme.Key)
	assert.Equal(t, models.PageMarket, snap.Page)

	h, err := s.Holdings(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultHoldings(), h)

	require.NoError(t, kv.Set(ctx, "device:d:"+KeyTheme, `{"unrelated":1}`))
	th, err := s.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Zinc", th.Name)

	require.NoError(t, kv.Set(ctx, "device:d:"+KeyTheme, `{"key":"neon","name":"Neon"}`))
	th, err = s.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "zinc", th.Key)
}

func TestEmptyHoldingsStayEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewManager(store.NewMemory(), nil).For("d")

	require.NoError(t, s.SetHoldings(ctx, nil))
	h, err := s.Holdings(ctx)
	require.NoError(t, err)
	assert.Empty(t, h)
	assert.NotNil(t, h)

	_, err = s.RemoveHolding(ctx, 0)
	assert.ErrorIs(t, err, ErrHoldingNotFound)
}
