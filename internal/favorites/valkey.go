// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces favorites documents in Valkey.
	keyPrefix = "favorites:"

	// changeChannel carries the owner id of every changed document.
	changeChannel = "favorites:changed"

	// DefaultTTL is how long an untouched favorites document survives.
	DefaultTTL = 365 * 24 * time.Hour

	// maxUpdateAttempts bounds optimistic retries when another writer
	// changes the document between WATCH and EXEC.
	maxUpdateAttempts = 16
)

// ErrConflict is returned by Update when every attempt lost the race to a
// concurrent writer.
var ErrConflict = errors.New("favorites document kept changing")

// ValkeyBackend stores documents in Valkey and announces changes over
// pub/sub so every instance drops its stale snapshot.
type ValkeyBackend struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeyBackend returns a backend using client. ttl 0 means DefaultTTL.
func NewValkeyBackend(client *redis.Client, ttl time.Duration) *ValkeyBackend {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ValkeyBackend{client: client, ttl: ttl}
}

// Get implements Backend.
func (v *ValkeyBackend) Get(ctx context.Context, owner string) ([]byte, error) {
	val, err := v.client.Get(ctx, keyPrefix+owner).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get: %w", err)
	}
	return val, nil
}

// Update implements Backend with WATCH/MULTI/EXEC. When the key changes
// before EXEC the transaction aborts and fn runs again on the new value.
func (v *ValkeyBackend) Update(ctx context.Context, owner string, fn UpdateFunc) error {
	key := keyPrefix + owner
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		written := false
		err := v.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				current = nil
			} else if err != nil {
				return fmt.Errorf("valkey get: %w", err)
			}

			next, err := fn(current)
			if err != nil || next == nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, next, v.ttl)
				return nil
			})
			written = err == nil
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			slog.Debug("favorites update conflict, retrying", "owner", owner, "attempt", attempt)
			continue
		}
		if err != nil {
			return err
		}
		if written {
			if err := v.client.Publish(ctx, changeChannel, owner).Err(); err != nil {
				slog.Warn("favorites change publish failed", "owner", owner, "error", err)
			}
		}
		return nil
	}
	return ErrConflict
}

// Subscribe implements Backend. Messages are delivered on a background
// goroutine until ctx is cancelled.
func (v *ValkeyBackend) Subscribe(ctx context.Context, fn func(string)) error {
	sub := v.client.Subscribe(ctx, changeChannel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("valkey subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fn(msg.Payload)
			}
		}
	}()
	return nil
}
