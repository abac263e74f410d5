// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package format

import "budgetscale/internal/models"

// countWords is the ladder for spelled-out comparison counts.
var countWords = []scaleUnit{
	{1e9, " billion"},
	{1e6, " million"},
}

// numberUnits is the ladder for compact counts.
var numberUnits = []scaleUnit{
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatNumber groups digits and keeps up to two decimals: 1234.5 → "1,234.5".
func FormatNumber(n float64) string {
	if !finite(n) {
		return "0"
	}
	pr := printerFor(DefaultLocale)
	if n < 0 {
		if s := pr.grouped(-n, 2, true); s != "0" {
			return "-" + s
		}
		return "0"
	}
	return pr.grouped(n, 2, true)
}

// FormatCount renders a comparison count for prose:
//
//	>= 1e9  "4.8 billion"
//	>= 1e6  "1.3 million"
//	>= 100  "10,525"
//	>= 1    "2.5"
//	> 0     "0.25", or "<0.01" when it would round to zero
func FormatCount(n float64) string {
	if !finite(n) || n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	pr := printerFor(DefaultLocale)
	switch {
	case n >= 1e6:
		s, _ := pr.compact(n, countWords, 1)
		return s
	case n >= 100:
		return pr.grouped(n, 0, false)
	case n >= 1:
		return pr.grouped(n, 1, true)
	}
	if s := pr.grouped(n, 2, true); s != "0" {
		return s
	}
	return "<0.01"
}

// CompactNumber renders a count with K/M/B suffixes: 45000 → "45K".
// Values below 1,000 fall back to FormatNumber.
func CompactNumber(n float64) string {
	if !finite(n) {
		return "0"
	}
	abs := n
	sign := ""
	if n < 0 {
		abs = -n
		sign = "-"
	}
	if s, ok := printerFor(DefaultLocale).compact(abs, numberUnits, 2); ok {
		return sign + s
	}
	return FormatNumber(n)
}

// FormatComparisonResult renders "10,525 F-35 Fighter Jets".
func FormatComparisonResult(count float64, unit models.Unit) string {
	return FormatCount(count) + " " + unit.DisplayName(count)
}

// FormatPercent renders a percentage value (3.2 → "3.2%"). With signed set,
// positive values get a leading "+".
func FormatPercent(v float64, signed bool) string {
	if !finite(v) {
		return "0%"
	}
	pr := printerFor(DefaultLocale)
	abs := v
	if v < 0 {
		abs = -v
	}
	s := pr.grouped(abs, 1, true) + "%"
	if s == "0%" {
		return s
	}
	switch {
	case v < 0:
		return "-" + s
	case signed:
		return "+" + s
	}
	return s
}
