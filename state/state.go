// Package state owns the four persisted slots of a device: the login flag,
// the theme, the active page and the holdings list.
package state

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"crypto-tracker/market"
	"crypto-tracker/models"
	"crypto-tracker/store"
)

// Slot keys.
const (
	KeyAuth     = "auth-status"
	KeyTheme    = "app-theme"
	KeyPage     = "current-page"
	KeyHoldings = "portfolio-holdings"
)

var (
	ErrUnknownTheme    = errors.New("unknown theme")
	ErrUnknownPage     = errors.New("unknown page")
	ErrHoldingNotFound = errors.New("holding not found")
)

// DefaultHoldings is the starter portfolio of a fresh device.
func DefaultHoldings() []models.Holding {
	return []models.Holding{
		{AssetID: "bitcoin", Symbol: "BTC", Amount: 0.5, AvgPrice: 65000},
		{AssetID: "ethereum", Symbol: "ETH", Amount: 2.3, AvgPrice: 3200},
	}
}

func defaultTheme() models.Theme {
	t, _ := market.Theme(market.DefaultTheme)
	return t
}

func knownTheme(t models.Theme) bool {
	_, ok := market.Theme(t.Key)
	return ok
}

func nonEmpty(p string) bool { return p != "" }

// Manager hands out per-device state over a shared KV.
type Manager struct {
	kv  store.KV
	log *zap.Logger

	// serializes read-modify-write of holdings
	mu sync.Mutex
}

func NewManager(kv store.KV, log *zap.Logger) *Manager {
	return &Manager{kv: kv, log: log}
}

// For returns the state of one device. An empty id addresses the unprefixed keys.
func (m *Manager) For(deviceID string) *AppState {
	kv := m.kv
	if deviceID != "" {
		kv = store.Prefixed(kv, "device:"+deviceID+":")
	}
	return &AppState{
		mu:       &m.mu,
		auth:     store.NewSlot(kv, m.log, KeyAuth, func() bool { return false }),
		theme:    store.NewSlot(kv, m.log, KeyTheme, defaultTheme).WithCheck(knownTheme),
		page:     store.NewSlot(kv, m.log, KeyPage, func() string { return models.PageMarket }).WithCheck(nonEmpty),
		holdings: store.NewSlot(kv, m.log, KeyHoldings, DefaultHoldings),
	}
}

// AppState is the full persisted state of one device.
type AppState struct {
	mu       *sync.Mutex
	auth     *store.Slot[bool]
	theme    *store.Slot[models.Theme]
	page     *store.Slot[string]
	holdings *store.Slot[[]models.Holding]
}

// Snapshot is every slot read at once, for rendering.
type Snapshot struct {
	Authenticated bool         `json:"authenticated"`
	Theme         models.Theme `json:"theme"`
	Page          string       `json:"page"`
}

func (s *AppState) Authenticated(ctx context.Context) (bool, error) { return s.auth.Load(ctx) }
func (s *AppState) Login(ctx context.Context) error                 { return s.auth.Store(ctx, true) }
func (s *AppState) Logout(ctx context.Context) error                { return s.auth.Store(ctx, false) }

func (s *AppState) Theme(ctx context.Context) (models.Theme, error) { return s.theme.Load(ctx) }

// SetTheme switches to the theme with the given key.
func (s *AppState) SetTheme(ctx context.Context, key string) (models.Theme, error) {
	t, ok := market.Theme(key)
	if !ok {
		return models.Theme{}, ErrUnknownTheme
	}
	return t, s.theme.Store(ctx, t)
}

func (s *AppState) Page(ctx context.Context) (string, error) { return s.page.Load(ctx) }

func (s *AppState) SetPage(ctx context.Context, page string) error {
	if page != models.PageMarket && page != models.PagePortfolio {
		return ErrUnknownPage
	}
	return s.page.Store(ctx, page)
}

func (s *AppState) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Authenticated, err = s.Authenticated(ctx); err != nil {
		return snap, err
	}
	if snap.Theme, err = s.Theme(ctx); err != nil {
		return snap, err
	}
	if snap.Page, err = s.Page(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *AppState) Holdings(ctx context.Context) ([]models.Holding, error) {
	return s.holdings.Load(ctx)
}

// SetHoldings replaces the whole list.
func (s *AppState) SetHoldings(ctx context.Context, list []models.Holding) error {
	if list == nil {
		list = []models.Holding{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holdings.Store(ctx, list)
}

// AddHolding appends h and returns the new list.
func (s *AppState) AddHolding(ctx context.Context, h models.Holding) ([]models.Holding, error) {
	return s.editHoldings(ctx, func(list []models.Holding) ([]models.Holding, error) {
		return append(list, h), nil
	})
}

// UpdateHolding replaces the holding at index i.
func (s *AppState) UpdateHolding(ctx context.Context, i int, h models.Holding) ([]models.Holding, error) {
	return s.editHoldings(ctx, func(list []models.Holding) ([]models.Holding, error) {
		if i < 0 || i >= len(list) {
			return nil, ErrHoldingNotFound
		}
		list[i] = h
		return list, nil
	})
}

// RemoveHolding deletes the holding at index i, keeping the order of the rest.
func (s *AppState) RemoveHolding(ctx context.Context, i int) ([]models.Holding, error) {
	return s.editHoldings(ctx, func(list []models.Holding) ([]models.Holding, error) {
		if i < 0 || i >= len(list) {
			return nil, ErrHoldingNotFound
		}
		return slices.Delete(list, i, i+1), nil
	})
}

func (s *AppState) editHoldings(ctx context.Context, edit func([]models.Holding) ([]models.Holding, error)) ([]models.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.holdings.Load(ctx)
	if err != nil {
		return nil, err
	}
	list, err = edit(slices.Clone(list))
	if err != nil {
		return nil, err
	}
	if err := s.holdings.Store(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}
