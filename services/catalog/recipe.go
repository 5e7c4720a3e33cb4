package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

const maxIngredientSlots = 20

type RecipeIngredient struct {
	Name    string
	Measure string
}

// Recipe is one record of the recipe catalog. The upstream format spreads
// ingredients over numbered strIngredientN/strMeasureN fields.
type Recipe struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	Thumbnail    string
	Ingredients  []RecipeIngredient
}

func (r *Recipe) UnmarshalJSON(data []byte) error {
	var fields map[string]*string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	get := func(key string) string {
		if value := fields[key]; value != nil {
			return strings.TrimSpace(*value)
		}
		return ""
	}

	r.ID = get("idMeal")
	r.Name = get("strMeal")
	r.Category = get("strCategory")
	r.Area = get("strArea")
	r.Instructions = get("strInstructions")
	r.Thumbnail = get("strMealThumb")
	r.Ingredients = nil
	for i := 1; i <= maxIngredientSlots; i++ {
		n := strconv.Itoa(i)
		name := get("strIngredient" + n)
		if name == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, RecipeIngredient{Name: name, Measure: get("strMeasure" + n)})
	}
	return nil
}

type recipeResponse struct {
	Meals []Recipe `json:"meals"`
}
