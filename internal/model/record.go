package model

import (
	"fmt"
	"strings"
)

// MealDB record field names.
const (
	fieldID           = "idMeal"
	fieldName         = "strMeal"
	fieldCategory     = "strCategory"
	fieldArea         = "strArea"
	fieldThumbnail    = "strMealThumb"
	fieldInstructions = "strInstructions"
	fieldTags         = "strTags"
	fieldYouTube      = "strYoutube"
	fieldSource       = "strSource"
)

// RecipeFromRecord builds a Recipe from a decoded MealDB record.
// Returns an error if the record has no name, since a nameless recipe can
// neither be displayed nor saved.
func RecipeFromRecord(rec map[string]any) (*Recipe, error) {
	name := strings.TrimSpace(stringField(rec, fieldName))
	if name == "" {
		return nil, fmt.Errorf("recipe record has no %s", fieldName)
	}

	r := &Recipe{
		ID:           stringField(rec, fieldID),
		Name:         name,
		Category:     stringField(rec, fieldCategory),
		Area:         stringField(rec, fieldArea),
		Thumbnail:    stringField(rec, fieldThumbnail),
		Instructions: stringField(rec, fieldInstructions),
		YouTube:      stringField(rec, fieldYouTube),
		Source:       stringField(rec, fieldSource),
		Ingredients:  IngredientsFromRecord(rec),
		Record:       rec,
	}

	for _, tag := range strings.Split(stringField(rec, fieldTags), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			r.Tags = append(r.Tags, tag)
		}
	}

	return r, nil
}

// IngredientsFromRecord collects the paired ingredient/measure slots.
// Slots whose ingredient is absent or blank after trimming are skipped.
// A present ingredient with a blank measure gets no measure prefix.
func IngredientsFromRecord(rec map[string]any) []Ingredient {
	var out []Ingredient
	for i := 1; i <= MaxIngredientSlots; i++ {
		name := strings.TrimSpace(stringField(rec, fmt.Sprintf("strIngredient%d", i)))
		if name == "" {
			continue
		}
		out = append(out, Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(stringField(rec, fmt.Sprintf("strMeasure%d", i))),
		})
	}
	return out
}

// stringField returns rec[key] if it is a string, otherwise "".
// MealDB uses JSON null for unused slots.
func stringField(rec map[string]any, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}
	return ""
}
