// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"budgetscale/internal/comparison"
	"budgetscale/internal/models"
)

// Limits for query parameters.
const (
	maxQueryLen = 200
	maxDepth    = 10
	maxLimit    = 500
)

var errInvalidParam = errors.New("invalid parameter")

// parseAmount reads an optional dollar amount. ok is false when the
// parameter is absent.
func parseAmount(raw string) (amount float64, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !comparison.ValidAmount(v) {
		return 0, false, fmt.Errorf("%w: amount must be a non-negative number", errInvalidParam)
	}
	return v, true, nil
}

// parseLimit reads how many alternatives to return. "all" and 0 mean no
// limit; an absent value means def.
func parseLimit(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return def, nil
	case "all":
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > maxLimit {
		return 0, fmt.Errorf("%w: limit must be \"all\" or between 0 and %d", errInvalidParam, maxLimit)
	}
	return n, nil
}

// parseDepth reads the category tree depth. An absent value means the
// whole tree.
func parseDepth(raw string) (depth int, all bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > maxDepth {
		return 0, false, fmt.Errorf("%w: depth must be between 0 and %d", errInvalidParam, maxDepth)
	}
	return n, false, nil
}

// parseCategories reads a comma-separated unit category filter.
func parseCategories(raw string) ([]models.UnitCategory, error) {
	var out []models.UnitCategory
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := models.ParseUnitCategory(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidParam, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// parseTiers reads a comma-separated tier filter.
func parseTiers(raw string) ([]models.Tier, error) {
	var out []models.Tier
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := models.ParseTier(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidParam, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// validateQuery checks a free-text search query.
func validateQuery(q string) error {
	if len(q) > maxQueryLen {
		return fmt.Errorf("%w: query is too long (max %d characters)", errInvalidParam, maxQueryLen)
	}
	return nil
}

// paramMessage strips the sentinel prefix for the client-facing message.
func paramMessage(err error) string {
	return strings.TrimPrefix(err.Error(), errInvalidParam.Error()+": ")
}
