// Package model defines the core data structures for mealmix.
package model

import (
	"regexp"
	"strings"
)

// MaxIngredientSlots is the number of paired ingredient/measure slots in a
// MealDB record (strIngredient1..20, strMeasure1..20).
const MaxIngredientSlots = 20

// Ingredient is one line of a recipe's ingredient list.
// Measure is empty when the record had no measure for the slot.
type Ingredient struct {
	Name    string
	Measure string
}

// String formats the ingredient as "<measure> <name>", or just the name
// when there is no measure.
func (i Ingredient) String() string {
	if i.Measure == "" {
		return i.Name
	}
	return i.Measure + " " + i.Name
}

// Recipe is a single dish as returned by the recipe source.
type Recipe struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Thumbnail    string
	Instructions string
	Tags         []string
	YouTube      string
	Source       string
	Ingredients  []Ingredient

	// Record is the full record as received, kept so that it can be
	// forwarded verbatim (for example as remix context).
	Record map[string]any
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// InstructionLines splits the instructions on line breaks.
// Empty lines are kept so paragraph spacing survives rendering.
func (r *Recipe) InstructionLines() []string {
	if r.Instructions == "" {
		return nil
	}
	return lineBreak.Split(r.Instructions, -1)
}

// DisplayTags returns the tags joined for display.
func (r *Recipe) DisplayTags() string {
	return strings.Join(r.Tags, ", ")
}
