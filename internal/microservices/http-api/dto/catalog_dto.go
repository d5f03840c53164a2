package dto

import (
	"time"

	"bnin/internal/microservices/http-api/models"

	"gorm.io/datatypes"
)

// CreateIngredientDTO for adding an ingredient to the catalog
type CreateIngredientDTO struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required,ingredient_category"`
	ImageURL    *string `json:"image_url"`
	Description *string `json:"description"`
}

func (d *CreateIngredientDTO) ToModel() *models.Ingredient {
	return &models.Ingredient{
		Name:        d.Name,
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		Description: d.Description,
	}
}

type IngredientResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromModelToIngredientResponse(i *models.Ingredient) *IngredientResponse {
	return &IngredientResponse{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		ImageURL:    i.ImageURL,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
	}
}

// CreateCompatibilityDTO pairs two distinct ingredients; the pairing is stored both ways
type CreateCompatibilityDTO struct {
	IngredientID       string `json:"ingredient_id" binding:"required,uuid"`
	CompatibleWithID   string `json:"compatible_with_id" binding:"required,uuid,nefield=IngredientID"`
	CompatibilityScore int    `json:"compatibility_score" binding:"required,min=1,max=10"`
}

type CompatibilityResponse struct {
	IngredientID       string              `json:"ingredient_id"`
	CompatibleWithID   string              `json:"compatible_with_id"`
	CompatibilityScore int                 `json:"compatibility_score"`
	CompatibleWith     *IngredientResponse `json:"compatible_with,omitempty"`
}

func FromModelToCompatibilityResponse(c *models.IngredientCompatibility) *CompatibilityResponse {
	resp := &CompatibilityResponse{
		IngredientID:       c.IngredientID,
		CompatibleWithID:   c.CompatibleWithID,
		CompatibilityScore: c.CompatibilityScore,
	}
	if c.CompatibleWith != nil {
		resp.CompatibleWith = FromModelToIngredientResponse(c.CompatibleWith)
	}
	return resp
}

type MoodResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func FromModelToMoodResponse(m *models.Mood) *MoodResponse {
	return &MoodResponse{ID: m.ID, Name: m.Name, Description: m.Description}
}

type RecipeIngredientDTO struct {
	IngredientID string `json:"ingredient_id" binding:"required,uuid"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit"`
}

type RecipeMoodDTO struct {
	MoodID         string `json:"mood_id" binding:"required,uuid"`
	RelevanceScore int    `json:"relevance_score" binding:"min=0,max=10"`
}

// CreateRecipeDTO for creating a recipe with its ingredient and mood rows
type CreateRecipeDTO struct {
	Name         string                `json:"name" binding:"required"`
	Description  string                `json:"description"`
	Instructions []string              `json:"instructions"`
	PrepTime     int                   `json:"prep_time" binding:"min=0"`
	CookTime     int                   `json:"cook_time" binding:"min=0"`
	Difficulty   string                `json:"difficulty" binding:"required,difficulty"`
	Servings     int                   `json:"servings" binding:"omitempty,min=1"`
	ImageURL     *string               `json:"image_url"`
	VideoURL     *string               `json:"video_url"`
	Ingredients  []RecipeIngredientDTO `json:"ingredients" binding:"dive"`
	Moods        []RecipeMoodDTO       `json:"moods" binding:"dive"`
}

// ToModel builds the recipe and its join rows. Servings defaults to 1.
func (d *CreateRecipeDTO) ToModel() *models.Recipe {
	servings := d.Servings
	if servings == 0 {
		servings = 1
	}
	recipe := &models.Recipe{
		Name:         d.Name,
		Description:  d.Description,
		Instructions: datatypes.JSONSlice[string](d.Instructions),
		PrepTime:     d.PrepTime,
		CookTime:     d.CookTime,
		Difficulty:   d.Difficulty,
		Servings:     servings,
		ImageURL:     d.ImageURL,
		VideoURL:     d.VideoURL,
	}
	for _, ing := range d.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: ing.IngredientID,
			Quantity:     ing.Quantity,
			Unit:         ing.Unit,
		})
	}
	for _, m := range d.Moods {
		recipe.Moods = append(recipe.Moods, models.RecipeMood{
			MoodID:         m.MoodID,
			RelevanceScore: m.RelevanceScore,
		})
	}
	return recipe
}

// RecipeBasicResponse is the list view of a recipe
type RecipeBasicResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PrepTime      int     `json:"prep_time"`
	CookTime      int     `json:"cook_time"`
	Difficulty    string  `json:"difficulty"`
	ImageURL      *string `json:"image_url,omitempty"`
	FavoriteCount int     `json:"favorite_count"`
}

func FromModelToRecipeBasicResponse(r *models.Recipe) RecipeBasicResponse {
	return RecipeBasicResponse{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		PrepTime:      r.PrepTime,
		CookTime:      r.CookTime,
		Difficulty:    r.Difficulty,
		ImageURL:      r.ImageURL,
		FavoriteCount: r.FavoriteCount,
	}
}

type RecipeIngredientResponse struct {
	IngredientID string `json:"ingredient_id"`
	Name         string `json:"name,omitempty"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit"`
}

type RecipeMoodResponse struct {
	MoodID         string `json:"mood_id"`
	Name           string `json:"name,omitempty"`
	RelevanceScore int    `json:"relevance_score"`
}

// RecipeResponse is the detail view of a recipe
type RecipeResponse struct {
	RecipeBasicResponse
	Instructions []string                   `json:"instructions"`
	Servings     int                        `json:"servings"`
	VideoURL     *string                    `json:"video_url,omitempty"`
	Ingredients  []RecipeIngredientResponse `json:"ingredients"`
	Moods        []RecipeMoodResponse       `json:"moods"`
	CreatedAt    time.Time                  `json:"created_at"`
}

func FromModelToRecipeResponse(r *models.Recipe) *RecipeResponse {
	resp := &RecipeResponse{
		RecipeBasicResponse: FromModelToRecipeBasicResponse(r),
		Instructions:        []string(r.Instructions),
		Servings:            r.Servings,
		VideoURL:            r.VideoURL,
		Ingredients:         make([]RecipeIngredientResponse, 0, len(r.Ingredients)),
		Moods:               make([]RecipeMoodResponse, 0, len(r.Moods)),
		CreatedAt:           r.CreatedAt,
	}
	if resp.Instructions == nil {
		resp.Instructions = []string{}
	}
	for _, ri := range r.Ingredients {
		item := RecipeIngredientResponse{
			IngredientID: ri.IngredientID,
			Quantity:     ri.Quantity,
			Unit:         ri.Unit,
		}
		if ri.Ingredient != nil {
			item.Name = ri.Ingredient.Name
		}
		resp.Ingredients = append(resp.Ingredients, item)
	}
	for _, rm := range r.Moods {
		item := RecipeMoodResponse{MoodID: rm.MoodID, RelevanceScore: rm.RelevanceScore}
		if rm.Mood != nil {
			item.Name = rm.Mood.Name
		}
		resp.Moods = append(resp.Moods, item)
	}
	return resp
}
