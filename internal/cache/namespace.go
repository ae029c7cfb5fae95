// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Namespace stores JSON-encoded values of T under "<prefix>:<name>" keys
// of a shared Cacher. The loader keeps one namespace per snapshot kind.
type Namespace[T any] struct {
	backend Cacher
	prefix  string
	ttl     time.Duration
}

// NewNamespace creates a Namespace over backend. A zero ttl defers to the
// backend's default.
func NewNamespace[T any](backend Cacher, prefix string, ttl time.Duration) *Namespace[T] {
	return &Namespace[T]{backend: backend, prefix: prefix, ttl: ttl}
}

// Key returns the backend key for name.
func (n *Namespace[T]) Key(name string) string {
	return n.prefix + ":" + name
}

// Load returns the value stored for name. A miss reports false. An entry
// that no longer decodes into T is dropped and also reports false.
func (n *Namespace[T]) Load(ctx context.Context, name string) (T, bool) {
	var value T

	data, err := n.backend.Get(ctx, n.Key(name))
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		_ = n.backend.Delete(ctx, n.Key(name))
		var zero T
		return zero, false
	}
	return value, true
}

// Store replaces the value for name.
func (n *Namespace[T]) Store(ctx context.Context, name string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", n.Key(name), err)
	}
	return n.backend.Set(ctx, n.Key(name), data, n.ttl)
}

// Forget removes the value for name.
func (n *Namespace[T]) Forget(ctx context.Context, name string) error {
	return n.backend.Delete(ctx, n.Key(name))
}
