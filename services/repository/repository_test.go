package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"nutriplan-go-worker/database"
	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/cache"
	"nutriplan-go-worker/services/catalog"
	"nutriplan-go-worker/services/dailymenu"
	"nutriplan-go-worker/services/remote"
	"nutriplan-go-worker/structs"
)

type fakeRemote struct {
	docs map[string]map[string][]byte
	down bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: map[string]map[string][]byte{}}
}

func (f *fakeRemote) collection(name string) map[string][]byte {
	if f.docs[name] == nil {
		f.docs[name] = map[string][]byte{}
	}
	return f.docs[name]
}

func (f *fakeRemote) Get(ctx context.Context, collection, id string, out interface{}) (bool, error) {
	if f.down {
		return false, remote.ErrUnavailable
	}
	doc, ok := f.collection(collection)[id]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(doc, out)
}

func (f *fakeRemote) GetAll(ctx context.Context, collection string, out interface{}) error {
	return f.Query(ctx, collection, "", nil, out)
}

func (f *fakeRemote) Query(ctx context.Context, collection, field string, value interface{}, out interface{}) error {
	if f.down {
		return remote.ErrUnavailable
	}
	docs := f.collection(collection)
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	matches := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		if field != "" {
			var fields map[string]interface{}
			json.Unmarshal(docs[id], &fields)
			if fields[field] != value {
				continue
			}
		}
		matches = append(matches, docs[id])
	}
	raw, _ := json.Marshal(matches)
	return json.Unmarshal(raw, out)
}

func (f *fakeRemote) Put(ctx context.Context, collection, id string, doc interface{}) error {
	if f.down {
		return remote.ErrUnavailable
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	f.collection(collection)[id] = raw
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, collection, id string) error {
	if f.down {
		return remote.ErrUnavailable
	}
	delete(f.collection(collection), id)
	return nil
}

type fakeRecipes struct {
	recipes map[string]catalog.Recipe
}

func (f *fakeRecipes) ByCategory(ctx context.Context, category string) ([]catalog.Recipe, error) {
	var summaries []catalog.Recipe
	for _, recipe := range f.recipes {
		if recipe.Category == category {
			summaries = append(summaries, catalog.Recipe{ID: recipe.ID, Name: recipe.Name})
		}
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (f *fakeRecipes) ByID(ctx context.Context, id string) (*catalog.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, nil
	}
	return &recipe, nil
}

type fixture struct {
	repo    *Repository
	local   *cache.GormStore
	remote  *fakeRemote
	recipes *fakeRecipes
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSqlite("")
	if err != nil {
		t.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	entry := logrus.NewEntry(logger)

	local := cache.NewGormStore(db)
	remoteStore := newFakeRemote()
	recipes := &fakeRecipes{recipes: map[string]catalog.Recipe{
		"52772": {
			ID: "52772", Name: "Teriyaki Chicken Casserole", Category: "Chicken", Area: "Japanese",
			Instructions: "Preheat oven.\nBake.",
			Ingredients:  []catalog.RecipeIngredient{{Name: "soy sauce", Measure: "3/4 cup"}, {Name: "chicken breast", Measure: "500g"}},
		},
		"52940": {
			ID: "52940", Name: "Brown Stew Chicken", Category: "Chicken",
			Ingredients: []catalog.RecipeIngredient{{Name: "chicken", Measure: "1 whole"}},
		},
	}}
	menu := dailymenu.New(local, entry, dailymenu.WithVerifyDelay(0))
	return &fixture{
		repo:    New(local, remoteStore, recipes, menu, entry),
		local:   local,
		remote:  remoteStore,
		recipes: recipes,
	}
}

func (f *fixture) seedMeal(t *testing.T, meal models.Meal) {
	t.Helper()
	if err := f.local.ReplaceMeals(context.Background(), []models.Meal{meal}); err != nil {
		t.Fatal(err)
	}
}

func teriyaki() models.Meal {
	return models.Meal{
		ID: "52772", Name: "Teriyaki Chicken Casserole", Category: "Chicken", Calories: 95,
		Ingredients:  []models.Ingredient{{Name: "soy sauce", Quantity: 0.75, Unit: "cup", CaloriesPer100g: 53}},
		Instructions: []string{"Preheat oven.", "Bake."},
	}
}

func TestGetAllMeals_WritesThroughFromRemote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.remote.Put(ctx, enums.MealsCollection, "52772", teriyaki())
	f.remote.Put(ctx, enums.MealsCollection, "52940", models.Meal{ID: "52940", Name: "Brown Stew Chicken", Category: "Chicken"})

	result := f.repo.GetAllMeals(ctx)
	if !result.IsSuccess() || len(result.Value) != 2 {
		t.Fatalf("GetAllMeals = %v", result)
	}

	cached, _ := f.local.FindMeals(ctx, "")
	if len(cached) != 2 {
		t.Errorf("cached meals = %d, want 2", len(cached))
	}
}

func TestGetAllMeals_RemoteDownFallsBackToLocal(t *testing.T) {
	f := newFixture(t)
	f.remote.down = true

	result := f.repo.GetAllMeals(context.Background())
	if !result.IsSuccess() {
		t.Fatalf("GetAllMeals = %v, want success", result)
	}
	if len(result.Value) != 0 {
		t.Errorf("meals = %+v", result.Value)
	}
}

func TestGetMealByID_Missing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result := f.repo.GetMealByID(ctx, "nope")
	if !result.IsError() || !errors.Is(result.Cause, structs.ErrNotFound) {
		t.Errorf("missing meal = %v", result)
	}

	f.remote.down = true
	result = f.repo.GetMealByID(ctx, "nope")
	if !result.IsError() || !errors.Is(result.Cause, structs.ErrNotFound) {
		t.Errorf("missing meal with remote down = %v", result)
	}

	result = f.repo.GetMealByID(ctx, " ")
	if !errors.Is(result.Cause, structs.ErrValidation) {
		t.Errorf("blank id = %v", result)
	}
}

func TestSaveOverride_RequiresFavorite(t *testing.T) {
	f := newFixture(t)
	f.seedMeal(t, teriyaki())

	modified := teriyaki()
	modified.Name = "Mine"
	result := f.repo.SaveOverride(context.Background(), "u1", modified)

	if !result.IsError() {
		t.Fatalf("SaveOverride = %v, want error", result)
	}
	if !errors.Is(result.Cause, structs.ErrValidation) || !errors.Is(result.Cause, structs.ErrNotFavorite) {
		t.Errorf("cause = %v", result.Cause)
	}
	if row, _ := f.local.FindOverride(context.Background(), "u1", "52772"); row != nil {
		t.Errorf("override persisted: %+v", row)
	}
}

func TestOverrideLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedMeal(t, teriyaki())

	if result := f.repo.AddFavorite(ctx, "u1", "52772"); !result.IsSuccess() {
		t.Fatalf("AddFavorite = %v", result)
	}
	if _, ok := f.remote.docs[enums.FavoritesCollection]["u1_52772"]; !ok {
		t.Error("favorite not pushed to remote")
	}

	// 沒有修改時不寫入
	noop := f.repo.SaveOverride(ctx, "u1", teriyaki())
	if !noop.IsSuccess() || noop.Value != nil {
		t.Fatalf("no-op SaveOverride = %v", noop)
	}
	if row, _ := f.local.FindOverride(ctx, "u1", "52772"); row != nil {
		t.Fatalf("empty override persisted: %+v", row)
	}

	modified := teriyaki()
	modified.Name = "Less Sweet Teriyaki"
	modified.Calories = 780
	saved := f.repo.SaveOverride(ctx, "u1", modified)
	if !saved.IsSuccess() || saved.Value == nil || saved.Value.Ingredients != nil {
		t.Fatalf("SaveOverride = %v", saved)
	}

	effective := f.repo.GetEffectiveMeal(ctx, "u1", "52772")
	if effective.Value.Name != "Less Sweet Teriyaki" || effective.Value.Calories != 780 {
		t.Errorf("effective meal = %+v", effective.Value)
	}
	if len(effective.Value.Ingredients) != 1 {
		t.Errorf("ingredients = %+v", effective.Value.Ingredients)
	}
	if catalogMeal := f.repo.GetMealByID(ctx, "52772"); catalogMeal.Value.Name != "Teriyaki Chicken Casserole" {
		t.Errorf("catalog mutated: %+v", catalogMeal.Value)
	}
	if other := f.repo.GetEffectiveMeal(ctx, "u2", "52772"); other.Value.Name != "Teriyaki Chicken Casserole" {
		t.Errorf("override leaked to another user: %+v", other.Value)
	}

	if result := f.repo.RemoveFavorite(ctx, "u1", "52772"); !result.IsSuccess() {
		t.Fatalf("RemoveFavorite = %v", result)
	}
	if row, _ := f.local.FindOverride(ctx, "u1", "52772"); row != nil {
		t.Errorf("override survived favorite removal: %+v", row)
	}
	if effective := f.repo.GetEffectiveMeal(ctx, "u1", "52772"); effective.Value.Name != "Teriyaki Chicken Casserole" {
		t.Errorf("effective after unfavorite = %+v", effective.Value)
	}
}

func TestGetFavorites_PullsFromRemote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.remote.Put(ctx, enums.FavoritesCollection, "u1_52772", models.Favorite{UserID: "u1", MealID: "52772"})
	f.remote.Put(ctx, enums.FavoritesCollection, "u2_52940", models.Favorite{UserID: "u2", MealID: "52940"})

	result := f.repo.GetFavorites(ctx, "u1")
	if !result.IsSuccess() || len(result.Value) != 1 || result.Value[0].MealID != "52772" {
		t.Fatalf("GetFavorites = %v", result)
	}
	if fav, _ := f.local.FindFavorite(ctx, "u1", "52772"); fav == nil {
		t.Error("favorite not written through")
	}
}

var lunchTime = time.Date(2024, 3, 10, 13, 45, 12, 0, time.Local)

func TestDailyMenuFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedMeal(t, teriyaki())

	if result := f.repo.AddToDailyMenu(ctx, "u1", lunchTime, "52772", enums.Lunch, 0); !errors.Is(result.Cause, structs.ErrValidation) {
		t.Errorf("zero portion = %v", result)
	}
	if result := f.repo.AddToDailyMenu(ctx, "u1", lunchTime, "52772", "BRUNCH", 1); !errors.Is(result.Cause, structs.ErrValidation) {
		t.Errorf("bad category = %v", result)
	}

	added := f.repo.AddToDailyMenu(ctx, "u1", lunchTime, "52772", enums.Lunch, 1)
	if !added.IsSuccess() || added.Value.MealName != "Teriyaki Chicken Casserole" || added.Value.Calories != 95 {
		t.Fatalf("AddToDailyMenu = %v", added)
	}

	toggled := f.repo.ToggleConsumed(ctx, "u1", lunchTime, added.Value.ID, true)
	if !toggled.IsSuccess() || !toggled.Value.IsConsumed {
		t.Fatalf("ToggleConsumed = %v", toggled)
	}
	if missing := f.repo.ToggleConsumed(ctx, "u1", lunchTime, "nope", true); !errors.Is(missing.Cause, structs.ErrNotFound) {
		t.Errorf("toggle missing = %v", missing)
	}

	summary := f.repo.GetDaySummary(ctx, "u1", lunchTime)
	if summary.Value.PlannedCalories != 95 || summary.Value.ConsumedCalories != 95 {
		t.Errorf("summary = %+v", summary.Value)
	}

	for i := 0; i < 2; i++ {
		if result := f.repo.DeleteFromDailyMenu(ctx, "u1", lunchTime, "52772", enums.Lunch); !result.IsSuccess() {
			t.Fatalf("DeleteFromDailyMenu #%d = %v", i+1, result)
		}
	}
	if menu := f.repo.GetDailyMenu(ctx, "u1", lunchTime); len(menu.Value) != 0 {
		t.Errorf("menu after delete = %+v", menu.Value)
	}
	if intakes := f.repo.GetIntakes(ctx, "u1", lunchTime); len(intakes.Value) != 1 {
		t.Errorf("intakes = %+v", intakes.Value)
	}
}

func TestApplyCatalogChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedMeal(t, teriyaki())
	f.repo.AddFavorite(ctx, "u1", "52772")
	f.repo.AddToDailyMenu(ctx, "u1", lunchTime, "52772", enums.Dinner, 1)

	updated := teriyaki()
	updated.Name = "Teriyaki Chicken"
	updated.Ingredients = append(updated.Ingredients, models.Ingredient{Name: "chicken breast", Quantity: 200, Unit: "g", CaloriesPer100g: 165})
	// 事件帶來的熱量不採用，改由食材推算: 95.4 + 330
	updated.Calories = 9999
	result := f.repo.ApplyCatalogChange(ctx, structs.CatalogQueueParam{Event: enums.CatalogUpdated, MealID: "52772", Meal: &updated})
	if !result.IsSuccess() || result.Value.OKRows != 1 {
		t.Fatalf("update event = %v", result)
	}
	if meal, _ := f.local.FindMeal(ctx, "52772"); meal == nil || meal.Calories != 425 {
		t.Errorf("stored meal = %+v, want calories 425", meal)
	}
	menu := f.repo.GetDailyMenu(ctx, "u1", lunchTime)
	if len(menu.Value) != 1 || menu.Value[0].MealName != "Teriyaki Chicken" || menu.Value[0].Calories != 425 {
		t.Errorf("menu after update = %+v", menu.Value)
	}

	result = f.repo.ApplyCatalogChange(ctx, structs.CatalogQueueParam{Event: enums.CatalogDeleted, MealID: "52772"})
	if !result.IsSuccess() {
		t.Fatalf("delete event = %v", result)
	}
	if menu := f.repo.GetDailyMenu(ctx, "u1", lunchTime); len(menu.Value) != 0 {
		t.Errorf("menu after delete = %+v", menu.Value)
	}
	if fav, _ := f.local.FindFavorite(ctx, "u1", "52772"); fav != nil {
		t.Error("favorite survived catalog delete")
	}

	bad := f.repo.ApplyCatalogChange(ctx, structs.CatalogQueueParam{Event: "renamed", MealID: "52772"})
	if !errors.Is(bad.Cause, structs.ErrValidation) {
		t.Errorf("unknown event = %v", bad)
	}
}

func TestApplyCatalogChange_DeleteClearsRemoteFavorites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedMeal(t, teriyaki())
	f.seedMeal(t, models.Meal{ID: "52940", Name: "Brown Stew Chicken", Category: "Chicken"})
	for _, add := range []struct{ user, meal string }{{"u1", "52772"}, {"u2", "52772"}, {"u1", "52940"}} {
		if result := f.repo.AddFavorite(ctx, add.user, add.meal); !result.IsSuccess() {
			t.Fatalf("AddFavorite(%s, %s) = %v", add.user, add.meal, result)
		}
	}

	result := f.repo.ApplyCatalogChange(ctx, structs.CatalogQueueParam{Event: enums.CatalogDeleted, MealID: "52772"})
	if !result.IsSuccess() {
		t.Fatalf("delete event = %v", result)
	}
	remoteFavorites := f.remote.docs[enums.FavoritesCollection]
	if _, ok := remoteFavorites["u1_52772"]; ok {
		t.Error("remote favorite u1_52772 survived catalog delete")
	}
	if _, ok := remoteFavorites["u2_52772"]; ok {
		t.Error("remote favorite u2_52772 survived catalog delete")
	}
	if _, ok := remoteFavorites["u1_52940"]; !ok {
		t.Error("unrelated remote favorite was deleted")
	}

	// u2 本地沒有收藏，會回頭向遠端拉
	if favorites := f.repo.GetFavorites(ctx, "u2"); !favorites.IsSuccess() || len(favorites.Value) != 0 {
		t.Errorf("GetFavorites(u2) = %v, want empty", favorites)
	}
	favorites := f.repo.GetFavorites(ctx, "u1")
	if !favorites.IsSuccess() || len(favorites.Value) != 1 || favorites.Value[0].MealID != "52940" {
		t.Errorf("GetFavorites(u1) = %v", favorites)
	}

	modified := teriyaki()
	modified.Name = "Mine"
	if saved := f.repo.SaveOverride(ctx, "u2", modified); !errors.Is(saved.Cause, structs.ErrNotFavorite) {
		t.Errorf("SaveOverride after catalog delete = %v", saved)
	}
}

func TestApplyCatalogChange_FetchesRecipeWhenBodyMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result := f.repo.ApplyCatalogChange(ctx, structs.CatalogQueueParam{Event: enums.CatalogUpdated, MealID: "52940"})
	if !result.IsSuccess() {
		t.Fatalf("update event = %v", result)
	}
	meal, _ := f.local.FindMeal(ctx, "52940")
	if meal == nil || meal.Name != "Brown Stew Chicken" || meal.Calories == 0 {
		t.Errorf("meal = %+v", meal)
	}
}

func TestRefreshCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result := f.repo.RefreshCatalog(ctx, "Chicken")
	if !result.IsSuccess() || result.Value.OKRows != 2 {
		t.Fatalf("RefreshCatalog = %v", result)
	}
	meals, _ := f.local.FindMeals(ctx, "Chicken")
	if len(meals) != 2 {
		t.Errorf("cached chicken meals = %d", len(meals))
	}
	if len(f.remote.docs[enums.MealsCollection]) != 2 {
		t.Errorf("remote meals = %d", len(f.remote.docs[enums.MealsCollection]))
	}
}

func TestProfileAndTargets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := f.repo.SaveProfile(ctx, models.User{ID: "u1", Weight: -1, Height: 175, Age: 25, Gender: enums.Male, Goal: enums.LoseWeight})
	if !errors.Is(bad.Cause, structs.ErrValidation) {
		t.Errorf("negative weight = %v", bad)
	}

	saved := f.repo.SaveProfile(ctx, models.User{
		ID: "u1", Name: "Mei", Weight: 70, Height: 175, Age: 25, Gender: enums.Male,
		ActivityMinutesPerDay: 30, ActivityDaysPerWeek: 5, Goal: enums.LoseWeight,
	})
	if !saved.IsSuccess() {
		t.Fatalf("SaveProfile = %v", saved)
	}
	if saved.Value.ActivityLevel != enums.Moderate || saved.Value.HealthMetrics.BMR != 1673.75 || saved.Value.HealthMetrics.TDEE != 2594.3 {
		t.Errorf("profile = %+v", saved.Value)
	}

	targets := f.repo.MealTargets(ctx, "u1")
	if !targets.IsSuccess() {
		t.Fatalf("MealTargets = %v", targets)
	}
	want := map[enums.MealCategory]int{enums.Breakfast: 628, enums.Lunch: 838, enums.Dinner: 628}
	for category, kcal := range want {
		if targets.Value[category] != kcal {
			t.Errorf("%s = %d, want %d", category, targets.Value[category], kcal)
		}
	}

	if missing := f.repo.GetProfile(ctx, "ghost"); !errors.Is(missing.Cause, structs.ErrNotFound) || !strings.Contains(missing.Message, "not found") {
		t.Errorf("missing profile = %v", missing)
	}
}
