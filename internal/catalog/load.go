// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"budgetscale/internal/models"
)

//go:embed data/catalog.yaml
var seedYAML []byte

// Loader produces a fresh catalog snapshot from some backing store.
type Loader interface {
	Load(ctx context.Context) (*Catalog, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (*Catalog, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) (*Catalog, error) { return f(ctx) }

// Parse decodes a YAML catalog document and validates it. Unknown fields
// are rejected so typos surface at load time.
func Parse(data []byte) (*Catalog, error) {
	units, items, err := Decode(data)
	if err != nil {
		return nil, err
	}
	c, err := New(units, items)
	if err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	return c, nil
}

// Decode parses a YAML catalog document into normalized records without
// validating them.
func Decode(data []byte) ([]models.Unit, []models.BudgetItem, error) {
	var raw rawCatalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("parsing catalog: %w", err)
	}

	units := make([]models.Unit, 0, len(raw.Units))
	for _, r := range raw.Units {
		units = append(units, r.unit())
	}
	items := make([]models.BudgetItem, 0, len(raw.Items))
	for _, r := range raw.Items {
		items = append(items, r.item(raw.FiscalYear))
	}
	return units, items, nil
}

// Embedded returns the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	c, err := Parse(seedYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}

// EmbeddedYAML returns a copy of the raw embedded catalog document.
func EmbeddedYAML() []byte {
	return bytes.Clone(seedYAML)
}

// LoadFile reads and parses a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// EmbeddedLoader loads the compiled-in catalog.
func EmbeddedLoader() Loader {
	return LoaderFunc(func(context.Context) (*Catalog, error) { return Embedded() })
}

// FileLoader loads the catalog at path on every call.
func FileLoader(path string) Loader {
	return LoaderFunc(func(context.Context) (*Catalog, error) { return LoadFile(path) })
}
