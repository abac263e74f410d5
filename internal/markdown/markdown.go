// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts catalog descriptions from Markdown to HTML
// using goldmark. Raw HTML in the source is escaped, since descriptions can
// come from files, the database or object storage.
package markdown

import (
	"bytes"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // tables, strikethrough, autolinks
		extension.Typographer, // smart quotes and dashes
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// MaxMemoized bounds the conversion memo. It is cleared when full.
const MaxMemoized = 2048

// rendered memoizes conversions of the current catalog's descriptions.
var rendered = struct {
	mu      sync.RWMutex
	entries map[string]string
}{entries: make(map[string]string)}

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	rendered.mu.RLock()
	out, ok := rendered.entries[source]
	rendered.mu.RUnlock()
	if ok {
		return out, nil
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	out = strings.TrimSpace(buf.String())

	rendered.mu.Lock()
	if len(rendered.entries) >= MaxMemoized {
		rendered.entries = make(map[string]string)
	}
	rendered.entries[source] = out
	rendered.mu.Unlock()
	return out, nil
}

// Reset drops every memoized conversion. Called when the catalog is
// replaced.
func Reset() {
	rendered.mu.Lock()
	rendered.entries = make(map[string]string)
	rendered.mu.Unlock()
}

func memoized() int {
	rendered.mu.RLock()
	defer rendered.mu.RUnlock()
	return len(rendered.entries)
}
