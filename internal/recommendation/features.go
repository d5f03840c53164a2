package recommendation

import (
	"bnin/internal/microservices/http-api/models"
)

// FeatureCount is the width of every feature vector and of the model input layer.
const FeatureCount = 8

// Feature positions inside a FeatureVector.
const (
	FeatureDifficulty = iota
	FeaturePrepTime
	FeatureCookTime
	FeatureIngredientCoverage
	FeatureMoodRelevance
	FeaturePreferredHit
	FeatureDislikedAvoidance
	FeatureAllergenAvoidance
)

const (
	maxPrepMinutes = 120.0
	maxCookMinutes = 180.0
	maxRelevance   = 10.0

	// used when the user or the preference row is unknown
	neutralPreference = 0.5
	neutralAllergen   = 1.0
)

// FeatureVector is a fixed-width numeric description of one (user, recipe, context) triple.
type FeatureVector [FeatureCount]float64

// BuildFeatures derives the feature vector for scoring recipe for user given
// the request's input ingredients and mood. user may be nil; inputs may be empty.
func BuildFeatures(user *models.User, recipe *models.Recipe, inputIngredientIDs []string, inputMoodID string) FeatureVector {
	var f FeatureVector

	f[FeatureDifficulty] = difficultyValue(recipe.Difficulty)
	f[FeaturePrepTime] = clamp01(float64(recipe.PrepTime) / maxPrepMinutes)
	f[FeatureCookTime] = clamp01(float64(recipe.CookTime) / maxCookMinutes)

	recipeIngredients := make(map[string]bool, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		recipeIngredients[ri.IngredientID] = true
	}

	if len(inputIngredientIDs) > 0 {
		matched := 0
		for _, id := range inputIngredientIDs {
			if recipeIngredients[id] {
				matched++
			}
		}
		f[FeatureIngredientCoverage] = float64(matched) / float64(len(inputIngredientIDs))
	}

	if inputMoodID != "" {
		if rel, ok := recipe.MoodRelevance(inputMoodID); ok {
			f[FeatureMoodRelevance] = clamp01(float64(rel) / maxRelevance)
		}
	}

	f[FeaturePreferredHit] = neutralPreference
	f[FeatureDislikedAvoidance] = neutralPreference
	f[FeatureAllergenAvoidance] = neutralAllergen

	if user != nil && user.Preferences != nil {
		prefs := user.Preferences
		f[FeaturePreferredHit] = boolValue(containsAny(recipeIngredients, prefs.PreferredIngredients))
		f[FeatureDislikedAvoidance] = boolValue(!containsAny(recipeIngredients, prefs.DislikedIngredients))
		f[FeatureAllergenAvoidance] = boolValue(!containsAny(recipeIngredients, prefs.Allergies))
	}

	return f
}

// IngredientCoverage returns how many of the recipe's own ingredients appear in
// the inputs, as a fraction of the recipe's ingredient count, plus the match count.
func IngredientCoverage(recipe *models.Recipe, inputIngredientIDs []string) (float64, int) {
	if len(recipe.Ingredients) == 0 {
		return 0, 0
	}
	inputs := make(map[string]bool, len(inputIngredientIDs))
	for _, id := range inputIngredientIDs {
		inputs[id] = true
	}
	matched := 0
	for _, ri := range recipe.Ingredients {
		if inputs[ri.IngredientID] {
			matched++
		}
	}
	return float64(matched) / float64(len(recipe.Ingredients)), matched
}

func difficultyValue(d string) float64 {
	switch d {
	case models.DifficultyEasy:
		return 0
	case models.DifficultyHard:
		return 1
	default:
		return 0.5
	}
}

func containsAny(set map[string]bool, ids []string) bool {
	for _, id := range ids {
		if set[id] {
			return true
		}
	}
	return false
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
