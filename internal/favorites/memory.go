// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package favorites

import (
	"bytes"
	"context"
	"sync"
)

// MemoryBackend keeps documents in process memory. Used for tests and for
// single-instance deployments without Valkey.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
	subs []func(string)
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

// Get implements Backend.
func (m *MemoryBackend) Get(_ context.Context, owner string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.docs[owner]; ok {
		return bytes.Clone(d), nil
	}
	return nil, nil
}

// Update implements Backend. fn runs under the backend lock. Subscribers
// are notified asynchronously after a write, matching pub/sub delivery.
func (m *MemoryBackend) Update(_ context.Context, owner string, fn UpdateFunc) error {
	m.mu.Lock()
	next, err := fn(bytes.Clone(m.docs[owner]))
	if err != nil || next == nil {
		m.mu.Unlock()
		return err
	}
	m.docs[owner] = bytes.Clone(next)
	subs := make([]func(string), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		go fn(owner)
	}
	return nil
}

// Subscribe implements Backend. The subscription lives until ctx is done.
func (m *MemoryBackend) Subscribe(ctx context.Context, fn func(string)) error {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	idx := len(m.subs) - 1
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		m.subs[idx] = func(string) {}
		m.mu.Unlock()
	}()
	return nil
}
