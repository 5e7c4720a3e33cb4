package catalog

import (
	"strings"

	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/ingredient"
)

// ToMeal maps a catalog record into a Meal; calories are derived from the ingredients.
func ToMeal(recipe Recipe) models.Meal {
	meal := models.Meal{
		ID:           recipe.ID,
		Name:         recipe.Name,
		ImageRef:     recipe.Thumbnail,
		Category:     recipe.Category,
		Area:         recipe.Area,
		Instructions: splitInstructions(recipe.Instructions),
	}
	for _, item := range recipe.Ingredients {
		quantity, unit := ParseMeasure(item.Measure)
		meal.Ingredients = append(meal.Ingredients, models.Ingredient{
			Name:            item.Name,
			Quantity:        quantity,
			Unit:            unit,
			CaloriesPer100g: ingredient.CaloriesPer100g(item.Name),
		})
	}
	meal.Calories = ingredient.MealCalories(meal.Ingredients)
	return meal
}

func splitInstructions(text string) []string {
	var steps []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}
