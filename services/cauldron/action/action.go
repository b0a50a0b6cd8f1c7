// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package action

import (
	"fmt"

	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
)

// Kind discriminates the three shapes of Action.
type Kind int

const (
	KindIngredient Kind = iota
	KindDilute
	KindCatalyst
)

// String returns a short lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindIngredient:
		return "ingredient"
	case KindDilute:
		return "dilute"
	case KindCatalyst:
		return "catalyst"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Count is the number of distinct actions.
const Count = 8

// Action is one move applied to a liquid.
//
// The zero value is AddIngredient(liquid.Sugar).
type Action struct {
	kind       Kind
	ingredient liquid.Ingredient
}

// AddIngredient returns the action that adds ingredient.
func AddIngredient(ingredient liquid.Ingredient) Action {
	return Action{kind: KindIngredient, ingredient: ingredient}
}

// Dilute returns the action that adds water.
func Dilute() Action {
	return Action{kind: KindDilute}
}

// AddCatalyst returns the action that adds the catalyst.
func AddCatalyst() Action {
	return Action{kind: KindCatalyst}
}

// All returns the eight actions in canonical order.
func All() []Action {
	out := make([]Action, 0, Count)
	for _, ing := range liquid.Ingredients() {
		out = append(out, AddIngredient(ing))
	}
	return append(out, Dilute(), AddCatalyst())
}

// Kind returns the variant of a.
func (a Action) Kind() Kind {
	return a.kind
}

// Ingredient returns the ingredient of an ingredient action. ok is false
// for Dilute and AddCatalyst.
func (a Action) Ingredient() (ingredient liquid.Ingredient, ok bool) {
	if a.kind != KindIngredient {
		return 0, false
	}
	return a.ingredient, true
}

// Apply returns the liquid produced by performing a on d.
func (a Action) Apply(d liquid.Data) liquid.Data {
	switch a.kind {
	case KindIngredient:
		return d.ApplyIngredient(a.ingredient)
	case KindDilute:
		return d.Dilute()
	case KindCatalyst:
		return d.ApplyCatalyst()
	default:
		return d
	}
}

// ingredientCodes is indexed by liquid.Ingredient.
var ingredientCodes = [...]byte{
	liquid.Sugar:              'S',
	liquid.GhastTear:          'G',
	liquid.SpiderEye:          'E',
	liquid.FermentedSpiderEye: 'F',
	liquid.BlazePowder:        'B',
	liquid.MagmaCream:         'C',
}

const (
	diluteCode   byte = 'W'
	catalystCode byte = 'N'
)

// Code returns the single-character code of a, or '?' for an action
// built from an invalid ingredient.
func (a Action) Code() byte {
	switch a.kind {
	case KindIngredient:
		if !a.ingredient.Valid() {
			return '?'
		}
		return ingredientCodes[a.ingredient]
	case KindDilute:
		return diluteCode
	case KindCatalyst:
		return catalystCode
	default:
		return '?'
	}
}

// FromCode resolves a code produced by Code. Lowercase letters are
// accepted.
func FromCode(c byte) (Action, error) {
	if 'a' <= c && c <= 'z' {
		c -= 'a' - 'A'
	}
	switch c {
	case diluteCode:
		return Dilute(), nil
	case catalystCode:
		return AddCatalyst(), nil
	}
	for idx, code := range ingredientCodes {
		if code == c {
			return AddIngredient(liquid.Ingredient(idx)), nil
		}
	}
	return Action{}, &UnknownCodeError{Code: c, Position: -1}
}

// String returns a readable name, e.g. "add(spider_eye)" or "dilute".
func (a Action) String() string {
	if a.kind == KindIngredient {
		return "add(" + a.ingredient.String() + ")"
	}
	return a.kind.String()
}
