package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Preferences *UserPreference `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"preferences,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

// UserPreference holds id sets; ingredient and mood entries are catalog ids,
// dietary restrictions are free-form labels.
type UserPreference struct {
	ID                   string                      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID               string                      `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	PreferredIngredients datatypes.JSONSlice[string] `json:"preferred_ingredients"`
	DislikedIngredients  datatypes.JSONSlice[string] `json:"disliked_ingredients"`
	Allergies            datatypes.JSONSlice[string] `json:"allergies"`
	DietaryRestrictions  datatypes.JSONSlice[string] `json:"dietary_restrictions"`
	PreferredMoods       datatypes.JSONSlice[string] `json:"preferred_moods"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

func (p *UserPreference) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

// AllModels lists every table in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&UserPreference{},
		&Ingredient{},
		&IngredientCompatibility{},
		&Mood{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeMood{},
		&RecommendationLog{},
		&UserRecipeHistory{},
		&FavoriteRecipe{},
	}
}
