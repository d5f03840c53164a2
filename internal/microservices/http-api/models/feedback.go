package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecommendationLog records the top pick of one scoring call and, later,
// whether the user accepted it. UserAccepted stays nil until feedback arrives.
type RecommendationLog struct {
	ID               string                      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID           *string                     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	RecipeID         string                      `gorm:"type:uuid;index;not null" json:"recipe_id"`
	InputIngredients datatypes.JSONSlice[string] `json:"input_ingredients"`
	InputMoodID      *string                     `gorm:"type:uuid" json:"input_mood_id,omitempty"`
	ConfidenceScore  float64                     `gorm:"not null" json:"confidence_score"`
	UserAccepted     *bool                       `json:"user_accepted,omitempty"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"index" json:"updated_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;" json:"recipe,omitempty"`
}

func (l *RecommendationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return
}

func (RecommendationLog) TableName() string {
	return "recommendation_logs"
}

type UserRecipeHistory struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	RecipeID  string    `gorm:"type:uuid;index;not null" json:"recipe_id"`
	Rating    *int      `gorm:"check:rating IS NULL OR (rating >= 1 AND rating <= 5)" json:"rating,omitempty"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	ViewedAt  time.Time `gorm:"index" json:"viewed_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;" json:"recipe,omitempty"`
}

func (h *UserRecipeHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.ViewedAt.IsZero() {
		h.ViewedAt = time.Now()
	}
	return
}

func (UserRecipeHistory) TableName() string {
	return "user_recipe_history"
}

type FavoriteRecipe struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;" json:"recipe,omitempty"`
}

func (f *FavoriteRecipe) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}

func (FavoriteRecipe) TableName() string {
	return "favorite_recipes"
}
