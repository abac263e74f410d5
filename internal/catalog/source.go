// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Source holds the live catalog snapshot. Readers call Current and keep the
// snapshot for the duration of a request; Replace swaps it atomically.
type Source struct {
	current atomic.Pointer[Catalog]

	mu    sync.Mutex
	hooks []func(*Catalog)
}

// NewSource returns a Source serving c.
func NewSource(c *Catalog) *Source {
	s := &Source{}
	s.current.Store(c)
	return s
}

// Current returns the live snapshot.
func (s *Source) Current() *Catalog {
	return s.current.Load()
}

// OnReload registers fn to run after every Replace. Hooks run synchronously
// in registration order.
func (s *Source) OnReload(fn func(*Catalog)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Replace swaps in c and fires the reload hooks.
func (s *Source) Replace(c *Catalog) {
	s.current.Store(c)

	s.mu.Lock()
	hooks := make([]func(*Catalog), len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(c)
	}
}

// Reload pulls a fresh snapshot from l. On failure the current snapshot is
// kept and the error returned.
func (s *Source) Reload(ctx context.Context, l Loader) error {
	c, err := l.Load(ctx)
	if err != nil {
		slog.Warn("catalog reload failed, keeping previous snapshot", "error", err)
		return err
	}
	s.Replace(c)
	slog.Info("catalog reloaded", "units", len(c.units), "items", len(c.items))
	return nil
}
