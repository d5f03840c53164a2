package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

type Recipe struct {
	ID            string                      `gorm:"primaryKey;type:uuid" json:"id"`
	Name          string                      `gorm:"index;not null" json:"name"`
	Description   string                      `json:"description"`
	Instructions  datatypes.JSONSlice[string] `json:"instructions"`
	PrepTime      int                         `gorm:"not null;default:0" json:"prep_time"`
	CookTime      int                         `gorm:"not null;default:0" json:"cook_time"`
	Difficulty    string                      `gorm:"not null;default:'Medium'" json:"difficulty"`
	Servings      int                         `gorm:"not null;default:1" json:"servings"`
	ImageURL      *string                     `json:"image_url,omitempty"`
	VideoURL      *string                     `json:"video_url,omitempty"`
	FavoriteCount int                         `gorm:"not null;default:0" json:"favorite_count"`
	CreatedAt     time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`

	// Associations
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;" json:"ingredients,omitempty"`
	Moods       []RecipeMood       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;" json:"moods,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Recipe) TableName() string {
	return "recipes"
}

// IngredientIDs returns the ids of every ingredient the recipe uses.
func (r *Recipe) IngredientIDs() []string {
	ids := make([]string, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		ids = append(ids, ri.IngredientID)
	}
	return ids
}

// MoodRelevance returns the relevance score for moodID, or false when untagged.
func (r *Recipe) MoodRelevance(moodID string) (int, bool) {
	for _, rm := range r.Moods {
		if rm.MoodID == moodID {
			return rm.RelevanceScore, true
		}
	}
	return 0, false
}

// explicit join model carrying quantity and unit
type RecipeIngredient struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	RecipeID     string `gorm:"type:uuid;index;not null" json:"recipe_id"`
	IngredientID string `gorm:"type:uuid;index;not null" json:"ingredient_id"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) (err error) {
	if ri.ID == "" {
		ri.ID = uuid.New().String()
	}
	return
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

type RecipeMood struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	RecipeID       string `gorm:"type:uuid;index;not null" json:"recipe_id"`
	MoodID         string `gorm:"type:uuid;index;not null" json:"mood_id"`
	RelevanceScore int    `gorm:"not null;default:5;check:relevance_score >= 0 AND relevance_score <= 10" json:"relevance_score"`

	Mood *Mood `gorm:"foreignKey:MoodID" json:"mood,omitempty"`
}

func (rm *RecipeMood) BeforeCreate(tx *gorm.DB) (err error) {
	if rm.ID == "" {
		rm.ID = uuid.New().String()
	}
	return
}

func (RecipeMood) TableName() string {
	return "recipe_moods"
}
