package dto

import "bnin/internal/microservices/http-api/models"

// ToggleFavoriteDTO adds the recipe to the user's favorites, or removes it when already there
type ToggleFavoriteDTO struct {
	RecipeID string `json:"recipe_id" binding:"required,uuid"`
	UserID   string `json:"user_id" binding:"omitempty,uuid"`
}

type ToggleFavoriteResponse struct {
	RecipeID   string `json:"recipe_id"`
	IsFavorite bool   `json:"is_favorite"`
}

// FromFavoritesToRecipeList returns the favorited recipes, newest favorite first
func FromFavoritesToRecipeList(favs []models.FavoriteRecipe) []RecipeBasicResponse {
	out := make([]RecipeBasicResponse, 0, len(favs))
	for i := range favs {
		if favs[i].Recipe == nil {
			continue
		}
		out = append(out, FromModelToRecipeBasicResponse(favs[i].Recipe))
	}
	return out
}
