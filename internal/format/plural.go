// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package format

import "strings"

// Pluralize returns singular when n is exactly 1. Every other count,
// including 0 and fractions, uses the explicit plural if one is given and
// otherwise the regular English plural of singular.
func Pluralize(n float64, singular string, plural ...string) string {
	if n == 1 {
		return singular
	}
	if len(plural) > 0 && plural[0] != "" {
		return plural[0]
	}
	return regularPlural(singular)
}

// regularPlural applies the common English suffix rules.
func regularPlural(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	for _, suffix := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(lower, suffix) {
			return word + "es"
		}
	}
	if n := len(lower); n >= 2 && lower[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(lower[n-2])) {
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}
