// Package override layers a user's sparse customisation onto a catalog meal
// without touching the catalog record.
package override

import (
	"reflect"
	"time"

	"nutriplan-go-worker/models"
)

// Override holds only the fields that differed from the catalog meal when it was
// saved. A nil pointer means "use the catalog value".
type Override struct {
	UserID       string
	MealID       string
	Name         *string
	Calories     *int
	Ingredients  *[]models.Ingredient
	Instructions *[]string
	Image        *string
	UpdatedAt    time.Time
}

// IsEmpty reports whether the override changes nothing. Empty overrides are never
// persisted.
func (o *Override) IsEmpty() bool {
	return o == nil || (o.Name == nil && o.Calories == nil && o.Ingredients == nil &&
		o.Instructions == nil && o.Image == nil)
}

// Diff records every field of modified that differs from original. It returns nil
// when the two meals are the same.
func Diff(original, modified models.Meal) *Override {
	o := &Override{MealID: original.ID}
	if modified.Name != original.Name {
		name := modified.Name
		o.Name = &name
	}
	if modified.Calories != original.Calories {
		calories := modified.Calories
		o.Calories = &calories
	}
	if modified.ImageRef != original.ImageRef {
		image := modified.ImageRef
		o.Image = &image
	}
	if !sameIngredients(original.Ingredients, modified.Ingredients) {
		ingredients := cloneIngredients(modified.Ingredients)
		o.Ingredients = &ingredients
	}
	if !sameInstructions(original.Instructions, modified.Instructions) {
		instructions := cloneInstructions(modified.Instructions)
		o.Instructions = &instructions
	}
	if o.IsEmpty() {
		return nil
	}
	return o
}

// Apply returns the user's view of original. The catalog value is returned as is
// when there is no override.
func Apply(original models.Meal, o *Override) models.Meal {
	if o == nil {
		return original
	}
	meal := original
	meal.Ingredients = cloneIngredients(original.Ingredients)
	meal.Instructions = cloneInstructions(original.Instructions)
	if o.Name != nil {
		meal.Name = *o.Name
	}
	if o.Calories != nil {
		meal.Calories = *o.Calories
	}
	if o.Image != nil {
		meal.ImageRef = *o.Image
	}
	if o.Ingredients != nil {
		meal.Ingredients = cloneIngredients(*o.Ingredients)
		meal.IngredientsJSON = ""
	}
	if o.Instructions != nil {
		meal.Instructions = cloneInstructions(*o.Instructions)
		meal.InstructionsJSON = ""
	}
	return meal
}

func cloneIngredients(items []models.Ingredient) []models.Ingredient {
	if len(items) == 0 {
		return items
	}
	return append([]models.Ingredient(nil), items...)
}

func cloneInstructions(steps []string) []string {
	if len(steps) == 0 {
		return steps
	}
	return append([]string(nil), steps...)
}

// 空 slice 與 nil 視為相同
func sameIngredients(a, b []models.Ingredient) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameInstructions(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
