package override

import (
	"strconv"
	"strings"

	"nutriplan-go-worker/models"
)

// Stored rows keep the original delimiter encoding:
//
//	ingredients:  name,quantity,unit,caloriesPer100g|name,quantity,unit,caloriesPer100g
//	instructions: step|step|step
//
// A value that itself contains '|' or ',' does not survive the round trip.
const (
	entrySeparator = "|"
	fieldSeparator = ","
)

func EncodeIngredients(items []models.Ingredient) string {
	entries := make([]string, 0, len(items))
	for _, item := range items {
		entries = append(entries, strings.Join([]string{
			item.Name,
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			item.Unit,
			strconv.FormatFloat(item.CaloriesPer100g, 'f', -1, 64),
		}, fieldSeparator))
	}
	return strings.Join(entries, entrySeparator)
}

// DecodeIngredients skips entries with the wrong token count or unparsable numbers
// instead of failing the whole list.
func DecodeIngredients(value string) []models.Ingredient {
	items := []models.Ingredient{}
	if value == "" {
		return items
	}
	for _, entry := range strings.Split(value, entrySeparator) {
		tokens := strings.Split(entry, fieldSeparator)
		if len(tokens) != 4 {
			continue
		}
		quantity, err := strconv.ParseFloat(strings.TrimSpace(tokens[1]), 64)
		if err != nil {
			continue
		}
		calories, err := strconv.ParseFloat(strings.TrimSpace(tokens[3]), 64)
		if err != nil {
			continue
		}
		items = append(items, models.Ingredient{
			Name:            tokens[0],
			Quantity:        quantity,
			Unit:            tokens[2],
			CaloriesPer100g: calories,
		})
	}
	return items
}

func EncodeInstructions(steps []string) string {
	return strings.Join(steps, entrySeparator)
}

func DecodeInstructions(value string) []string {
	steps := []string{}
	if value == "" {
		return steps
	}
	for _, step := range strings.Split(value, entrySeparator) {
		if strings.TrimSpace(step) == "" {
			continue
		}
		steps = append(steps, step)
	}
	return steps
}

// ToRow converts an override into its stored form.
func ToRow(o Override) models.MealOverride {
	row := models.MealOverride{
		UserID:         o.UserID,
		MealID:         o.MealID,
		CustomName:     o.Name,
		CustomCalories: o.Calories,
		CustomImage:    o.Image,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.Ingredients != nil {
		encoded := EncodeIngredients(*o.Ingredients)
		row.CustomIngredients = &encoded
	}
	if o.Instructions != nil {
		encoded := EncodeInstructions(*o.Instructions)
		row.CustomInstructions = &encoded
	}
	return row
}

// FromRow reads a stored override. A nil row gives a nil override.
func FromRow(row *models.MealOverride) *Override {
	if row == nil {
		return nil
	}
	o := &Override{
		UserID:    row.UserID,
		MealID:    row.MealID,
		Name:      row.CustomName,
		Calories:  row.CustomCalories,
		Image:     row.CustomImage,
		UpdatedAt: row.UpdatedAt,
	}
	if row.CustomIngredients != nil {
		items := DecodeIngredients(*row.CustomIngredients)
		o.Ingredients = &items
	}
	if row.CustomInstructions != nil {
		steps := DecodeInstructions(*row.CustomInstructions)
		o.Instructions = &steps
	}
	return o
}
