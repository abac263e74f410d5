// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"budgetscale/internal/catalog"
)

// CatalogLoader fetches and parses the YAML catalog stored at key.
func (c *Client) CatalogLoader(key string) catalog.Loader {
	return catalog.LoaderFunc(func(ctx context.Context) (*catalog.Catalog, error) {
		data, _, err := c.Download(ctx, key)
		if err != nil {
			return nil, err
		}
		cat, err := catalog.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("catalog s3://%s/%s: %w", c.bucket, key, err)
		}
		return cat, nil
	})
}

// SeedCatalog uploads data to key when no object exists there yet.
func (c *Client) SeedCatalog(ctx context.Context, key string, data []byte) error {
	_, err := c.ETag(ctx, key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := c.Upload(ctx, key, "application/yaml", data); err != nil {
		return err
	}
	slog.Info("catalog seeded to object storage", "bucket", c.bucket, "key", key)
	return nil
}

// PollCatalog checks the object's ETag every interval and reloads src when
// it changes, until ctx is cancelled.
func (c *Client) PollCatalog(ctx context.Context, key string, src *catalog.Source, interval time.Duration) {
	loader := c.CatalogLoader(key)
	last, err := c.ETag(ctx, key)
	if err != nil {
		slog.Warn("catalog poll: initial etag", "key", key, "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			etag, err := c.ETag(ctx, key)
			if err != nil {
				slog.Warn("catalog poll failed", "key", key, "error", err)
				continue
			}
			if etag == last {
				continue
			}
			if err := src.Reload(ctx, loader); err == nil {
				last = etag
			}
		}
	}
}
