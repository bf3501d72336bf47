// Package store binds in-memory values to slots of a durable key-value store.
//
// A slot is seeded with its default on first read and rewritten on every
// store. Values are kept as JSON text.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNotFound is returned by KV.Get when the key holds no value.
var ErrNotFound = errors.New("store: key not found")

// KV is the durable key-value collaborator.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Load returns the value stored under key, or def when there is none.
// A missing key is seeded with def. A stored value that does not decode
// into T, including JSON null, is logged and def is returned without
// overwriting it.
func Load[T any](ctx context.Context, kv KV, log *zap.Logger, key string, def T) (T, error) {
	return load(ctx, kv, log, key, def, nil)
}

func load[T any](ctx context.Context, kv KV, log *zap.Logger, key string, def T, valid func(T) bool) (T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return def, fmt.Errorf("load %q: %w", key, err)
	}
	if errors.Is(err, ErrNotFound) || raw == "" {
		if err := Store(ctx, kv, key, def); err != nil {
			return def, err
		}
		return def, nil
	}

	var v T
	if bytes.Equal(bytes.TrimSpace([]byte(raw)), []byte("null")) {
		err = errNull
	} else if err = json.Unmarshal([]byte(raw), &v); err == nil && valid != nil && !valid(v) {
		err = errInvalid
	}
	if err != nil {
		if log != nil {
			log.Warn("corrupt persisted value, using default",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return def, nil
	}
	return v, nil
}

var (
	errNull    = errors.New("null value")
	errInvalid = errors.New("value rejected by slot check")
)

// Store overwrites key with the JSON encoding of value.
func Store[T any](ctx context.Context, kv KV, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("store %q: %w", key, err)
	}
	return nil
}

// Slot is one named durable value with a default.
type Slot[T any] struct {
	kv    KV
	log   *zap.Logger
	key   string
	def   func() T
	valid func(T) bool
}

// NewSlot binds key in kv. def is called each time a default is needed, so
// mutable defaults such as slices are never shared between callers.
func NewSlot[T any](kv KV, log *zap.Logger, key string, def func() T) *Slot[T] {
	return &Slot[T]{kv: kv, log: log, key: key, def: def}
}

// WithCheck makes Load treat decoded values that fail valid as corrupt.
func (s *Slot[T]) WithCheck(valid func(T) bool) *Slot[T] {
	s.valid = valid
	return s
}

// Key returns the key the slot is stored under.
func (s *Slot[T]) Key() string { return s.key }

// Load returns the stored value, seeding the default when absent.
func (s *Slot[T]) Load(ctx context.Context) (T, error) {
	return load(ctx, s.kv, s.log, s.key, s.def(), s.valid)
}

// Store persists v.
func (s *Slot[T]) Store(ctx context.Context, v T) error {
	return Store(ctx, s.kv, s.key, v)
}
