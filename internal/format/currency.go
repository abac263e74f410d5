// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package format

import (
	"math"

	"golang.org/x/text/language"
)

// DefaultCompactFrom is the smallest absolute amount rendered with a suffix.
// Amounts below it are printed in full ("$8,500").
const DefaultCompactFrom = 10_000

// currencyUnits is the compact ladder for dollar amounts.
var currencyUnits = []scaleUnit{
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

type currencyConfig struct {
	compact     bool
	compactFrom float64
	cents       *bool
	symbol      string
	locale      language.Tag
}

// CurrencyOption tweaks FormatCurrency.
type CurrencyOption func(*currencyConfig)

// WithoutCompact prints the full grouped amount regardless of size.
func WithoutCompact() CurrencyOption {
	return func(c *currencyConfig) { c.compact = false }
}

// WithCompactFrom sets the smallest amount that gets a K/M/B suffix.
func WithCompactFrom(v float64) CurrencyOption {
	return func(c *currencyConfig) { c.compactFrom = v }
}

// WithCents forces cents on or off. By default cents are shown only for
// amounts below $1,000.
func WithCents(show bool) CurrencyOption {
	return func(c *currencyConfig) { c.cents = &show }
}

// WithSymbol replaces the "$" prefix.
func WithSymbol(symbol string) CurrencyOption {
	return func(c *currencyConfig) { c.symbol = symbol }
}

// WithLocale selects the digit grouping locale.
func WithLocale(tag language.Tag) CurrencyOption {
	return func(c *currencyConfig) { c.locale = tag }
}

// FormatCurrency renders a dollar amount. Compact notation is on by default:
// >= 1e9 uses B, >= 1e6 M and >= DefaultCompactFrom K, each with up to two
// decimals and trailing zeros stripped. The sign always precedes the symbol.
func FormatCurrency(amount float64, opts ...CurrencyOption) string {
	cfg := currencyConfig{
		compact:     true,
		compactFrom: DefaultCompactFrom,
		symbol:      "$",
		locale:      DefaultLocale,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !finite(amount) {
		return cfg.symbol + "0"
	}

	pr := printerFor(cfg.locale)
	sign := ""
	abs := amount
	if amount < 0 {
		sign = "-"
		abs = -amount
	}

	if cfg.compact && abs >= cfg.compactFrom {
		if s, ok := pr.compact(abs, currencyUnits, 2); ok {
			return sign + cfg.symbol + s
		}
	}

	showCents := math.Round(abs*100)/100 < 1000
	if cfg.cents != nil {
		showCents = *cfg.cents
	}
	decimals := 0
	if showCents {
		decimals = 2
	}
	if math.Round(abs*math.Pow10(decimals)) == 0 {
		sign = ""
	}
	return sign + cfg.symbol + pr.grouped(abs, decimals, false)
}
