package override

import (
	"testing"

	"nutriplan-go-worker/models"
)

func catalogMeal() models.Meal {
	return models.Meal{
		ID:       "52772",
		Name:     "Teriyaki Chicken Casserole",
		ImageRef: "https://img.example/teriyaki.jpg",
		Category: "Chicken",
		Area:     "Japanese",
		Calories: 640,
		Ingredients: []models.Ingredient{
			{Name: "soy sauce", Quantity: 0.75, Unit: "cup", CaloriesPer100g: 53},
			{Name: "chicken breast", Quantity: 2, Unit: "piece", CaloriesPer100g: 165},
			{Name: "rice", Quantity: 3, Unit: "cup", CaloriesPer100g: 130},
		},
		Instructions: []string{"Preheat oven to 350F", "Combine soy sauce and water", "Bake 35 minutes"},
	}
}

func mealsEqual(a, b models.Meal) bool {
	return a.ID == b.ID && a.Name == b.Name && a.ImageRef == b.ImageRef &&
		a.Category == b.Category && a.Area == b.Area && a.Calories == b.Calories &&
		sameIngredients(a.Ingredients, b.Ingredients) && sameInstructions(a.Instructions, b.Instructions)
}

func TestDiff_NoChangeIsNil(t *testing.T) {
	meal := catalogMeal()
	if o := Diff(meal, meal); o != nil {
		t.Fatalf("Diff(m, m) = %+v, want nil", o)
	}
	if !(*Override)(nil).IsEmpty() {
		t.Fatal("nil override must be empty")
	}
}

func TestDiff_OnlyChangedFields(t *testing.T) {
	original := catalogMeal()
	modified := catalogMeal()
	modified.Name = "Lighter Teriyaki"
	modified.Calories = 480

	o := Diff(original, modified)
	if o == nil {
		t.Fatal("expected override")
	}
	if o.Name == nil || *o.Name != "Lighter Teriyaki" || o.Calories == nil || *o.Calories != 480 {
		t.Fatalf("unexpected scalar fields: %+v", o)
	}
	if o.Image != nil || o.Ingredients != nil || o.Instructions != nil {
		t.Fatalf("unchanged fields must be absent: %+v", o)
	}
}

func TestApply_NilOverrideReturnsOriginal(t *testing.T) {
	meal := catalogMeal()
	if got := Apply(meal, nil); !mealsEqual(got, meal) {
		t.Fatalf("Apply(m, nil) = %+v", got)
	}
}

func TestApply_DoesNotMutateCatalog(t *testing.T) {
	original := catalogMeal()
	modified := catalogMeal()
	modified.Ingredients[0].Quantity = 1
	o := Diff(original, modified)

	merged := Apply(original, o)
	merged.Ingredients[1].Name = "tofu"
	merged.Instructions[0] = "changed"

	fresh := catalogMeal()
	if !mealsEqual(original, fresh) {
		t.Fatalf("catalog meal was mutated: %+v", original)
	}
}

func TestMergeRoundTrip(t *testing.T) {
	original := catalogMeal()
	edits := map[string]func(m *models.Meal){
		"name":     func(m *models.Meal) { m.Name = "My casserole" },
		"calories": func(m *models.Meal) { m.Calories = 512 },
		"image":    func(m *models.Meal) { m.ImageRef = "file:///me.png" },
		"ingredient quantity": func(m *models.Meal) {
			m.Ingredients[2].Quantity = 1.5
		},
		"ingredient removed": func(m *models.Meal) { m.Ingredients = m.Ingredients[:1] },
		"ingredient added": func(m *models.Meal) {
			m.Ingredients = append(m.Ingredients, models.Ingredient{Name: "broccoli", Quantity: 200, Unit: "g", CaloriesPer100g: 34})
		},
		"instructions reordered": func(m *models.Meal) {
			m.Instructions[0], m.Instructions[2] = m.Instructions[2], m.Instructions[0]
		},
		"instructions cleared": func(m *models.Meal) { m.Instructions = nil },
		"everything": func(m *models.Meal) {
			m.Name = "All new"
			m.Calories = 1
			m.ImageRef = ""
			m.Ingredients = []models.Ingredient{{Name: "egg", Quantity: 2, Unit: "piece", CaloriesPer100g: 155}}
			m.Instructions = []string{"Boil"}
		},
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			modified := catalogMeal()
			edit(&modified)

			o := Diff(original, modified)
			if got := Apply(original, o); !mealsEqual(got, modified) {
				t.Fatalf("in-memory round trip:\n got %+v\nwant %+v", got, modified)
			}

			// through the stored representation as well
			var stored *Override
			if o != nil {
				o.UserID = "user-1"
				row := ToRow(*o)
				stored = FromRow(&row)
			}
			if got := Apply(original, stored); !mealsEqual(got, modified) {
				t.Fatalf("stored round trip:\n got %+v\nwant %+v", got, modified)
			}
		})
	}
}

func TestDecodeIngredients_SkipsMalformed(t *testing.T) {
	value := "rice,200,g,130|broken entry|oil,1,tbsp|egg,two,piece,155|egg,2,piece,155|,,,"
	got := DecodeIngredients(value)
	want := []models.Ingredient{
		{Name: "rice", Quantity: 200, Unit: "g", CaloriesPer100g: 130},
		{Name: "egg", Quantity: 2, Unit: "piece", CaloriesPer100g: 155},
	}
	if !sameIngredients(got, want) {
		t.Fatalf("DecodeIngredients = %+v, want %+v", got, want)
	}
	if got := DecodeIngredients(""); len(got) != 0 {
		t.Fatalf("empty decode = %+v", got)
	}
}

func TestDecodeInstructions(t *testing.T) {
	got := DecodeInstructions("Chop|| |Fry")
	if !sameInstructions(got, []string{"Chop", "Fry"}) {
		t.Fatalf("DecodeInstructions = %q", got)
	}
}

// Values containing the delimiters are a known limitation of the stored form.
func TestCodec_DelimiterCollision(t *testing.T) {
	items := []models.Ingredient{{Name: "salt, to taste", Quantity: 1, Unit: "pinch", CaloriesPer100g: 0}}
	if got := DecodeIngredients(EncodeIngredients(items)); len(got) != 0 {
		t.Fatalf("expected the colliding entry to be dropped, got %+v", got)
	}
	steps := []string{"Mix a|b"}
	if got := DecodeInstructions(EncodeInstructions(steps)); len(got) != 2 {
		t.Fatalf("expected the step to split in two, got %q", got)
	}
}

func TestFromRow_Nil(t *testing.T) {
	if FromRow(nil) != nil {
		t.Fatal("FromRow(nil) must be nil")
	}
}
