package dto

import (
	"time"

	"bnin/internal/microservices/http-api/models"
	"bnin/internal/recommendation"
)

// RecommendByIngredientsDTO asks for recipes using any of the given ingredients
type RecommendByIngredientsDTO struct {
	IngredientIDs []string `json:"ingredient_ids" binding:"required,min=1,dive,required,uuid"`
	UserID        string   `json:"user_id" binding:"omitempty,uuid"`
}

// RecommendByMoodDTO asks for recipes tagged with a mood
type RecommendByMoodDTO struct {
	MoodID string `json:"mood_id" binding:"required,uuid"`
	UserID string `json:"user_id" binding:"omitempty,uuid"`
}

// RecommendationFeedbackDTO resolves an earlier recommendation
type RecommendationFeedbackDTO struct {
	RecommendationID string `json:"recommendation_id" binding:"required,uuid"`
	Accepted         *bool  `json:"accepted" binding:"required"`
	Rating           *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

type RecommendedRecipeResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	ImageURL           *string `json:"image_url,omitempty"`
	PrepTime           int     `json:"prep_time"`
	CookTime           int     `json:"cook_time"`
	Difficulty         string  `json:"difficulty"`
	Score              float64 `json:"score"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	MatchedIngredients int     `json:"matched_ingredients"`
	MissingIngredients int     `json:"missing_ingredients"`
	MoodRelevance      int     `json:"mood_relevance,omitempty"`
}

// RecommendationResponse is a ranked list. RecommendationID is empty when nothing matched.
type RecommendationResponse struct {
	RecommendationID string                      `json:"recommendation_id,omitempty"`
	Recipes          []RecommendedRecipeResponse `json:"recipes"`
}

// FromResultToRecommendationResponse converts an engine result to the API shape
func FromResultToRecommendationResponse(res *recommendation.Result) *RecommendationResponse {
	out := &RecommendationResponse{Recipes: []RecommendedRecipeResponse{}}
	if res == nil {
		return out
	}
	out.RecommendationID = res.RecommendationID
	for _, sr := range res.Recipes {
		out.Recipes = append(out.Recipes, RecommendedRecipeResponse{
			ID:                 sr.Recipe.ID,
			Name:               sr.Recipe.Name,
			Description:        sr.Recipe.Description,
			ImageURL:           sr.Recipe.ImageURL,
			PrepTime:           sr.Recipe.PrepTime,
			CookTime:           sr.Recipe.CookTime,
			Difficulty:         sr.Recipe.Difficulty,
			Score:              sr.Score,
			CoveragePercentage: sr.CoveragePercentage,
			MatchedIngredients: sr.MatchedIngredients,
			MissingIngredients: sr.MissingIngredients,
			MoodRelevance:      sr.MoodRelevance,
		})
	}
	return out
}

type FeedbackResponse struct {
	RecommendationID string    `json:"recommendation_id"`
	RecipeID         string    `json:"recipe_id"`
	Accepted         bool      `json:"accepted"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FromModelToFeedbackResponse(log *models.RecommendationLog) *FeedbackResponse {
	resp := &FeedbackResponse{
		RecommendationID: log.ID,
		RecipeID:         log.RecipeID,
		UpdatedAt:        log.UpdatedAt,
	}
	if log.UserAccepted != nil {
		resp.Accepted = *log.UserAccepted
	}
	return resp
}
