// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package liquid

import (
	"errors"
	"fmt"
	"strings"
)

// Ingredient is one of the six additives that set bits in the liquid.
type Ingredient int

const (
	Sugar Ingredient = iota
	GhastTear
	SpiderEye
	FermentedSpiderEye
	BlazePowder
	MagmaCream
)

// ErrUnknownIngredient is returned by ParseIngredient for unrecognised names.
var ErrUnknownIngredient = errors.New("unknown ingredient")

// ingredientBits is indexed by Ingredient. Positions are listed low to high.
var ingredientBits = [...][]int{
	Sugar:              {0},
	GhastTear:          {11},
	SpiderEye:          {5, 7, 10},
	FermentedSpiderEye: {9, 14},
	BlazePowder:        {14},
	MagmaCream:         {1, 6, 14},
}

var ingredientNames = [...]string{
	Sugar:              "sugar",
	GhastTear:          "ghast_tear",
	SpiderEye:          "spider_eye",
	FermentedSpiderEye: "fermented_spider_eye",
	BlazePowder:        "blaze_powder",
	MagmaCream:         "magma_cream",
}

// Ingredients returns every ingredient in canonical order.
func Ingredients() []Ingredient {
	return []Ingredient{Sugar, GhastTear, SpiderEye, FermentedSpiderEye, BlazePowder, MagmaCream}
}

// Valid reports whether i is one of the six defined ingredients.
func (i Ingredient) Valid() bool {
	return i >= Sugar && i <= MagmaCream
}

// Bits returns the bit positions the ingredient sets.
//
// The slice is a copy; callers may modify it freely.
func (i Ingredient) Bits() []int {
	if !i.Valid() {
		return nil
	}
	src := ingredientBits[i]
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// mask is the OR of every bit in the ingredient's table entry.
func (i Ingredient) mask() uint16 {
	if !i.Valid() {
		return 0
	}
	var m uint16
	for _, b := range ingredientBits[i] {
		m |= 1 << b
	}
	return m
}

// String returns the snake_case name, e.g. "fermented_spider_eye".
func (i Ingredient) String() string {
	if !i.Valid() {
		return fmt.Sprintf("ingredient(%d)", int(i))
	}
	return ingredientNames[i]
}

// ParseIngredient resolves a name produced by String. Matching ignores
// case and accepts '-' or ' ' in place of '_'.
func ParseIngredient(name string) (Ingredient, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for idx, n := range ingredientNames {
		if n == norm {
			return Ingredient(idx), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIngredient, name)
}
