package enums

type Gender string

type ActivityLevel string

type Goal string

type MealCategory string

type BMICategory string

const (
	Male   Gender = "MALE"
	Female Gender = "FEMALE"

	Sedentary ActivityLevel = "SEDENTARY"
	Light     ActivityLevel = "LIGHT"
	Moderate  ActivityLevel = "MODERATE"
	Very      ActivityLevel = "VERY"
	Extra     ActivityLevel = "EXTRA"

	LoseWeight Goal = "LOSE_WEIGHT"
	Maintain   Goal = "MAINTAIN"
	GainWeight Goal = "GAIN_WEIGHT"

	Breakfast MealCategory = "BREAKFAST"
	Lunch     MealCategory = "LUNCH"
	Dinner    MealCategory = "DINNER"

	SevereThinness   BMICategory = "SEVERE_THINNESS"
	ModerateThinness BMICategory = "MODERATE_THINNESS"
	MildThinness     BMICategory = "MILD_THINNESS"
	NormalWeight     BMICategory = "NORMAL"
	Overweight       BMICategory = "OVERWEIGHT"
	ObeseClassI      BMICategory = "OBESE_CLASS_I"
	ObeseClassII     BMICategory = "OBESE_CLASS_II"
)

const (
	CatalogUpdated      = "updated"
	CatalogDeleted      = "deleted"
	CatalogQueue        = "meal-catalog"
	MealsCollection     = "meals"
	FavoritesCollection = "favorites"
)
