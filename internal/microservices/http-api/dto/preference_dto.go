package dto

import (
	"time"

	"bnin/internal/microservices/http-api/models"
)

// UpdatePreferencesDTO replaces every preference set. Omitted sets become empty.
type UpdatePreferencesDTO struct {
	PreferredIngredients []string `json:"preferred_ingredients" binding:"dive,required,uuid"`
	DislikedIngredients  []string `json:"disliked_ingredients" binding:"dive,required,uuid"`
	Allergies            []string `json:"allergies" binding:"dive,required"`
	DietaryRestrictions  []string `json:"dietary_restrictions" binding:"dive,required"`
	PreferredMoods       []string `json:"preferred_moods" binding:"dive,required,uuid"`
}

func (d *UpdatePreferencesDTO) ToModel(userID string) *models.UserPreference {
	return &models.UserPreference{
		UserID:               userID,
		PreferredIngredients: nonNil(d.PreferredIngredients),
		DislikedIngredients:  nonNil(d.DislikedIngredients),
		Allergies:            nonNil(d.Allergies),
		DietaryRestrictions:  nonNil(d.DietaryRestrictions),
		PreferredMoods:       nonNil(d.PreferredMoods),
	}
}

type PreferencesResponse struct {
	UserID               string    `json:"user_id"`
	PreferredIngredients []string  `json:"preferred_ingredients"`
	DislikedIngredients  []string  `json:"disliked_ingredients"`
	Allergies            []string  `json:"allergies"`
	DietaryRestrictions  []string  `json:"dietary_restrictions"`
	PreferredMoods       []string  `json:"preferred_moods"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func FromModelToPreferencesResponse(p *models.UserPreference) *PreferencesResponse {
	return &PreferencesResponse{
		UserID:               p.UserID,
		PreferredIngredients: nonNil(p.PreferredIngredients),
		DislikedIngredients:  nonNil(p.DislikedIngredients),
		Allergies:            nonNil(p.Allergies),
		DietaryRestrictions:  nonNil(p.DietaryRestrictions),
		PreferredMoods:       nonNil(p.PreferredMoods),
		UpdatedAt:            p.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
