package models

import (
	"encoding/json"
	"time"
)

// Ingredient is embedded in Meal and never stored on its own.
type Ingredient struct {
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
}

// Meal is a catalog record. Rows are replaced wholesale on sync, never patched.
type Meal struct {
	ID               string       `gorm:"column:id;primary_key" json:"id"`
	Name             string       `gorm:"column:name" json:"name"`
	ImageRef         string       `gorm:"column:image_ref" json:"image_ref"`
	Category         string       `gorm:"column:category;index" json:"category"`
	Area             string       `gorm:"column:area" json:"area"`
	Calories         int          `gorm:"column:calories" json:"calories"`
	Ingredients      []Ingredient `gorm:"-" json:"ingredients"`
	Instructions     []string     `gorm:"-" json:"instructions"`
	IngredientsJSON  string       `gorm:"column:ingredients;type:text" json:"-"`
	InstructionsJSON string       `gorm:"column:instructions;type:text" json:"-"`
	CreatedAt        time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (m *Meal) TableName() string {
	return "meals"
}

// EncodeColumns copies the list fields into their text columns.
// Bulk inserts skip gorm callbacks, so callers on that path invoke it directly.
func (m *Meal) EncodeColumns() error {
	ingredients, err := json.Marshal(m.Ingredients)
	if err != nil {
		return err
	}
	instructions, err := json.Marshal(m.Instructions)
	if err != nil {
		return err
	}
	m.IngredientsJSON = string(ingredients)
	m.InstructionsJSON = string(instructions)
	return nil
}

func (m *Meal) BeforeSave() error {
	return m.EncodeColumns()
}

func (m *Meal) AfterFind() error {
	m.Ingredients = nil
	m.Instructions = nil
	if m.IngredientsJSON != "" {
		if err := json.Unmarshal([]byte(m.IngredientsJSON), &m.Ingredients); err != nil {
			return err
		}
	}
	if m.InstructionsJSON != "" {
		if err := json.Unmarshal([]byte(m.InstructionsJSON), &m.Instructions); err != nil {
			return err
		}
	}
	return nil
}
