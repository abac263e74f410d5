// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package format turns raw dollar amounts and comparison counts into the
// strings shown to readers: compact currency ("$1.2B"), grouped counts
// ("10,525"), pluralized unit names and per-capita breakdowns.
//
// Digit grouping is locale-aware through golang.org/x/text; the K/M/B
// suffixes are English short-scale for every locale.
package format

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when no locale option is given.
var DefaultLocale = language.AmericanEnglish

// printer bundles a message.Printer with the locale's decimal separator.
type printer struct {
	p          *message.Printer
	decimalSep string
}

var printers sync.Map // language.Tag -> *printer

// printerFor returns a cached printer for the tag.
func printerFor(tag language.Tag) *printer {
	if v, ok := printers.Load(tag); ok {
		return v.(*printer)
	}
	p := message.NewPrinter(tag)
	sep := strings.Trim(p.Sprintf("%v", number.Decimal(1.5, number.MinFractionDigits(1))), "0123456789")
	if sep == "" {
		sep = "."
	}
	pr := &printer{p: p, decimalSep: sep}
	v, _ := printers.LoadOrStore(tag, pr)
	return v.(*printer)
}

// grouped formats a non-negative value with locale digit grouping and the
// given number of decimals. With trim set, trailing fractional zeros (and a
// bare separator) are dropped.
func (pr *printer) grouped(v float64, decimals int, trim bool) string {
	scale := math.Pow10(decimals)
	r := math.Round(v * scale)
	if r >= math.MaxInt64 {
		return pr.p.Sprintf("%.0f", v)
	}
	whole := math.Floor(r / scale)
	frac := r - whole*scale

	s := pr.p.Sprintf("%d", int64(whole))
	if decimals == 0 {
		return s
	}
	fs := fmt.Sprintf("%0*d", decimals, int64(frac))
	if trim {
		fs = strings.TrimRight(fs, "0")
	}
	if fs == "" {
		return s
	}
	return s + pr.decimalSep + fs
}

// scaleUnit is one step of a compact notation ladder.
type scaleUnit struct {
	threshold float64
	suffix    string
}

// compact scales abs by the largest unit it reaches. A value that rounds up
// to 1000 of one unit is promoted to the next larger unit, so 999,999 reads
// "1M" rather than "1,000K". Units must be ordered largest first.
func (pr *printer) compact(abs float64, units []scaleUnit, decimals int) (string, bool) {
	for i, u := range units {
		if abs < u.threshold {
			continue
		}
		scale := math.Pow10(decimals)
		v := abs / u.threshold
		if math.Round(v*scale)/scale >= 1000 && i > 0 {
			u = units[i-1]
			v = abs / u.threshold
		}
		return pr.grouped(v, decimals, true) + u.suffix, true
	}
	return "", false
}

// finite reports whether v is a usable number.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
