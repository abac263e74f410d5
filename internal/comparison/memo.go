// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// memo.go provides the in-memory score cache. Scores are keyed by amount,
// unit id and unit cost, so a catalog reload that changes a cost produces a
// miss even before Reset runs.
package comparison

import (
	"log/slog"
	"sync"
)

type memoKey struct {
	amount  float64
	unitID  string
	cost    float64
	boosted bool
}

// scoreMemo is a bounded, concurrency-safe score cache. When full it is
// cleared wholesale; entries are cheap to recompute.
type scoreMemo struct {
	mu      sync.RWMutex
	entries map[memoKey]float64
	max     int
}

func newScoreMemo(max int) *scoreMemo {
	return &scoreMemo{entries: make(map[memoKey]float64), max: max}
}

func (m *scoreMemo) get(k memoKey) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[k]
	return v, ok
}

func (m *scoreMemo) put(k memoKey, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) >= m.max {
		slog.Debug("score memo full, clearing", "size", len(m.entries))
		m.entries = make(map[memoKey]float64)
	}
	m.entries[k] = v
}

func (m *scoreMemo) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[memoKey]float64)
}

func (m *scoreMemo) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
