// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package favorites keeps each visitor's saved comparisons. A Store holds
// the current snapshot per owner in memory and persists through a Backend;
// backend change notifications refresh the snapshot, so several instances
// sharing one backend stay consistent.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxPerOwner caps how many favorites one visitor can keep.
const MaxPerOwner = 50

// maxSnapshots bounds the in-memory snapshot map; it is cleared when full.
const maxSnapshots = 10_000

// ErrTooManyFavorites is returned by Add when the owner is at MaxPerOwner.
var ErrTooManyFavorites = fmt.Errorf("at most %d favorites allowed", MaxPerOwner)

// ErrInvalidFavorite is returned by Add when the item or unit id is empty.
var ErrInvalidFavorite = errors.New("favorite needs a budget item and a unit")

// Favorite is one saved (budget item, unit) pairing.
type Favorite struct {
	ID           uuid.UUID `json:"id"`
	BudgetItemID string    `json:"budgetItemId"`
	UnitID       string    `json:"unitId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UpdateFunc derives the next document from the current one, which is nil
// when the owner has none. Returning a nil document leaves it unchanged.
// It may be called more than once when writers race.
type UpdateFunc func(current []byte) ([]byte, error)

// Backend persists favorites as one opaque document per owner.
type Backend interface {
	// Get returns the owner's document, or nil when there is none.
	Get(ctx context.Context, owner string) ([]byte, error)
	// Update atomically replaces the owner's document with fn's result and
	// notifies subscribers. An error from fn is returned unchanged.
	Update(ctx context.Context, owner string, fn UpdateFunc) error
	// Subscribe calls fn with the owner whenever a document changes, until
	// ctx is cancelled.
	Subscribe(ctx context.Context, fn func(owner string)) error
}

// Store is safe for concurrent use.
type Store struct {
	backend Backend

	mu        sync.Mutex
	snapshots map[string][]Favorite
}

// NewStore returns a Store over b and subscribes to its change
// notifications for the lifetime of ctx.
func NewStore(ctx context.Context, b Backend) (*Store, error) {
	s := &Store{backend: b, snapshots: make(map[string][]Favorite)}
	if err := b.Subscribe(ctx, s.invalidate); err != nil {
		return nil, fmt.Errorf("subscribing to favorites backend: %w", err)
	}
	return s, nil
}

// invalidate drops the owner's snapshot; the next read reloads it.
func (s *Store) invalidate(owner string) {
	s.mu.Lock()
	delete(s.snapshots, owner)
	s.mu.Unlock()
	slog.Debug("favorites snapshot invalidated", "owner", owner)
}

// List returns the owner's favorites, oldest first.
func (s *Store) List(ctx context.Context, owner string) ([]Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	favs, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]Favorite, len(favs))
	copy(out, favs)
	return out, nil
}

// Add saves the pairing for owner. Saving a pairing that already exists
// returns the existing favorite unchanged.
func (s *Store) Add(ctx context.Context, owner, itemID, unitID string) (Favorite, error) {
	if itemID == "" || unitID == "" {
		return Favorite{}, ErrInvalidFavorite
	}

	var out Favorite
	err := s.update(ctx, owner, func(favs []Favorite) ([]Favorite, error) {
		for _, f := range favs {
			if f.BudgetItemID == itemID && f.UnitID == unitID {
				out = f
				return nil, nil
			}
		}
		if len(favs) >= MaxPerOwner {
			return nil, ErrTooManyFavorites
		}
		out = Favorite{
			ID:           uuid.New(),
			BudgetItemID: itemID,
			UnitID:       unitID,
			CreatedAt:    time.Now().UTC(),
		}
		return append(favs, out), nil
	})
	if err != nil {
		return Favorite{}, err
	}
	return out, nil
}

// Remove deletes a favorite by id and reports whether it existed.
func (s *Store) Remove(ctx context.Context, owner string, id uuid.UUID) (bool, error) {
	var removed bool
	err := s.update(ctx, owner, func(favs []Favorite) ([]Favorite, error) {
		next := make([]Favorite, 0, len(favs))
		for _, f := range favs {
			if f.ID != id {
				next = append(next, f)
			}
		}
		removed = len(next) < len(favs)
		if !removed {
			return nil, nil
		}
		return next, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// update runs a read-modify-write of the owner's list inside the backend's
// Update, so concurrent writers on other instances are never overwritten.
// fn returns nil to leave the list unchanged. The local snapshot is
// dropped afterwards and reloaded on the next read.
func (s *Store) update(ctx context.Context, owner string, fn func([]Favorite) ([]Favorite, error)) error {
	err := s.backend.Update(ctx, owner, func(current []byte) ([]byte, error) {
		favs, err := decode(current)
		if err != nil {
			return nil, err
		}
		next, err := fn(favs)
		if err != nil || next == nil {
			return nil, err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("encoding favorites: %w", err)
		}
		return data, nil
	})
	s.invalidate(owner)
	if err != nil {
		if errors.Is(err, ErrTooManyFavorites) {
			return err
		}
		return fmt.Errorf("saving favorites: %w", err)
	}
	return nil
}

// load returns the snapshot, reading through to the backend on a miss.
// Callers hold s.mu.
func (s *Store) load(ctx context.Context, owner string) ([]Favorite, error) {
	if favs, ok := s.snapshots[owner]; ok {
		return favs, nil
	}
	data, err := s.backend.Get(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}
	favs, err := decode(data)
	if err != nil {
		return nil, err
	}
	s.remember(owner, favs)
	return favs, nil
}

func decode(data []byte) ([]Favorite, error) {
	favs := []Favorite{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &favs); err != nil {
			return nil, fmt.Errorf("decoding favorites: %w", err)
		}
	}
	return favs, nil
}

func (s *Store) remember(owner string, favs []Favorite) {
	if len(s.snapshots) >= maxSnapshots {
		slog.Debug("favorites snapshots full, clearing", "size", len(s.snapshots))
		s.snapshots = make(map[string][]Favorite)
	}
	s.snapshots[owner] = favs
}
