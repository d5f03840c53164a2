package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient categories accepted by the catalog.
const (
	CategoryProtein   = "protein"
	CategoryVegetable = "vegetable"
	CategoryGrain     = "grain"
	CategoryDairy     = "dairy"
	CategoryBaking    = "baking"
	CategoryPantry    = "pantry"
	CategorySweet     = "sweet"
)

var IngredientCategories = []string{
	CategoryProtein, CategoryVegetable, CategoryGrain, CategoryDairy,
	CategoryBaking, CategoryPantry, CategorySweet,
}

type Ingredient struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Category    string    `gorm:"index;not null" json:"category"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// IngredientCompatibility is one direction of a symmetric pairing.
type IngredientCompatibility struct {
	ID                 string `gorm:"primaryKey;type:uuid" json:"id"`
	IngredientID       string `gorm:"type:uuid;not null;uniqueIndex:idx_compat_pair" json:"ingredient_id"`
	CompatibleWithID   string `gorm:"type:uuid;not null;uniqueIndex:idx_compat_pair" json:"compatible_with_id"`
	CompatibilityScore int    `gorm:"not null" json:"compatibility_score"`

	CompatibleWith *Ingredient `gorm:"foreignKey:CompatibleWithID" json:"compatible_with,omitempty"`
}

func (c *IngredientCompatibility) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (IngredientCompatibility) TableName() string {
	return "ingredient_compatibilities"
}
