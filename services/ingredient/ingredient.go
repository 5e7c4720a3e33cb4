// Package ingredient estimates ingredient energy. It is a deterministic heuristic,
// not a nutrition database: values are good enough to rank and total meals.
package ingredient

import (
	"math"
	"regexp"
	"strings"

	"nutriplan-go-worker/models"
)

type calorieEntry struct {
	name     string
	calories float64
}

// calorieTable is scanned in order; the first matching row wins for both exact and
// substring lookups. "pepper" is listed twice with different values, and only the
// first (bell pepper) is reachable.
// Substring rows are tried before the keyword buckets, so "eggplant" resolves to
// egg and "pineapple" to apple.
var calorieTable = []calorieEntry{
	{"chicken breast", 165},
	{"chicken", 239},
	{"beef", 250},
	{"minced beef", 254},
	{"pork", 242},
	{"bacon", 541},
	{"lamb", 294},
	{"sausage", 301},
	{"ham", 145},
	{"turkey", 189},
	{"salmon", 208},
	{"tuna", 132},
	{"cod", 82},
	{"prawns", 99},
	{"shrimp", 99},
	{"egg", 155},
	{"milk", 42},
	{"butter", 717},
	{"cheese", 402},
	{"parmesan", 431},
	{"cream", 340},
	{"yogurt", 59},
	{"rice", 130},
	{"pasta", 131},
	{"spaghetti", 158},
	{"noodles", 138},
	{"bread", 265},
	{"flour", 364},
	{"oats", 389},
	{"potato", 77},
	{"sweet potato", 86},
	{"onion", 40},
	{"garlic", 149},
	{"tomato", 18},
	{"carrot", 41},
	{"pepper", 20},
	{"spinach", 23},
	{"broccoli", 34},
	{"mushroom", 22},
	{"celery", 16},
	{"lettuce", 15},
	{"cucumber", 15},
	{"peas", 81},
	{"beans", 347},
	{"lentils", 116},
	{"chickpeas", 164},
	{"apple", 52},
	{"banana", 89},
	{"lemon", 29},
	{"lime", 30},
	{"orange", 47},
	{"olive oil", 884},
	{"vegetable oil", 884},
	{"oil", 884},
	{"sugar", 387},
	{"honey", 304},
	{"salt", 0},
	{"water", 0},
	{"pepper", 251},
	{"soy sauce", 53},
	{"stock", 5},
	{"almonds", 579},
	{"peanut", 567},
	{"walnuts", 654},
	{"coconut milk", 230},
}

type calorieBucket struct {
	keywords []string
	calories float64
}

// 找不到時依關鍵字分類估算
var calorieBuckets = []calorieBucket{
	{[]string{"oil", "lard", "ghee", "dripping"}, 880},
	{[]string{"sugar", "syrup", "jam", "chocolate", "caramel"}, 390},
	{[]string{"nut", "seed", "cashew", "pistachio", "hazelnut", "pecan"}, 600},
	{[]string{"meat", "steak", "mince", "veal", "duck", "goose", "venison", "chorizo", "pancetta"}, 220},
	{[]string{"fish", "haddock", "mackerel", "trout", "sardine", "anchov", "crab", "lobster", "mussel", "squid"}, 150},
	{[]string{"cheddar", "mozzarella", "ricotta", "feta", "dairy", "creme", "fraiche", "curd"}, 150},
	{[]string{"grain", "wheat", "barley", "couscous", "quinoa", "cornmeal", "tortilla", "dough", "breadcrumbs"}, 350},
	{[]string{"fruit", "berry", "berries", "grape", "mango", "pear", "peach", "plum", "cherry", "pineapple", "melon"}, 55},
	{[]string{"vegetable", "leaf", "leaves", "cabbage", "kale", "leek", "squash", "courgette", "zucchini", "aubergine", "eggplant", "herb", "parsley", "coriander", "basil", "chilli", "ginger"}, 30},
}

const defaultCaloriesPer100g = 100

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CaloriesPer100g resolves an ingredient name: exact table row, then substring in
// either direction, then keyword bucket, then the flat default.
func CaloriesPer100g(name string) float64 {
	key := normalize(name)
	if key == "" {
		return defaultCaloriesPer100g
	}
	for _, entry := range calorieTable {
		if entry.name == key {
			return entry.calories
		}
	}
	for _, entry := range calorieTable {
		if strings.Contains(key, entry.name) || strings.Contains(entry.name, key) {
			return entry.calories
		}
	}
	for _, bucket := range calorieBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(key, keyword) {
				return bucket.calories
			}
		}
	}
	return defaultCaloriesPer100g
}

type unitRule struct {
	pattern *regexp.Regexp
	grams   float64
}

// 順序有意義：kg 要在 g 前面，ml 要在 l 前面
var unitRules = []unitRule{
	{regexp.MustCompile(`^(kg|kgs|kilos?|kilograms?)\b`), 1000},
	{regexp.MustCompile(`^(lb|lbs|pounds?)\b`), 453.6},
	{regexp.MustCompile(`^(oz|ounces?)\b`), 28.35},
	{regexp.MustCompile(`^(cups?)\b`), 240},
	{regexp.MustCompile(`^(tbsp|tbs|tbls|tablespoons?)\b`), 15},
	{regexp.MustCompile(`^(tsp|teaspoons?)\b`), 5},
	{regexp.MustCompile(`^(ml|millilit(re|er)s?)\b`), 1},
	{regexp.MustCompile(`^(l|lit(re|er)s?)\b`), 1000},
	{regexp.MustCompile(`^(g|gr|grams?|grammes?)\b`), 1},
	{regexp.MustCompile(`^(pieces?|whole|pcs?)?$`), 100},
}

const defaultGramsPerUnit = 100

// ToGrams converts a quantity in a free-text unit into grams. Unknown units count
// as 100 g per unit; this is a heuristic and makes no accuracy claim.
func ToGrams(quantity float64, unit string) float64 {
	if quantity <= 0 {
		return 0
	}
	key := normalize(unit)
	for _, rule := range unitRules {
		if rule.pattern.MatchString(key) {
			return quantity * rule.grams
		}
	}
	return quantity * defaultGramsPerUnit
}

// Calories is the energy of one ingredient line.
func Calories(item models.Ingredient) float64 {
	return ToGrams(item.Quantity, item.Unit) * item.CaloriesPer100g / 100
}

// MealCalories totals a meal's ingredient lines, rounded to whole kcal.
func MealCalories(items []models.Ingredient) int {
	total := 0.0
	for _, item := range items {
		total += Calories(item)
	}
	return int(math.Round(total))
}
