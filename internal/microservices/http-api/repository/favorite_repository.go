package repository

import (
	"context"
	"fmt"

	"bnin/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Toggle(ctx context.Context, userID, recipeID string) (bool, error)
	List(ctx context.Context, userID string) ([]models.FavoriteRecipe, error)
	Exists(ctx context.Context, userID, recipeID string) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle adds or removes the favorite and keeps recipes.favorite_count in step.
// It reports whether the recipe is a favorite afterwards.
func (r *favoriteRepository) Toggle(ctx context.Context, userID, recipeID string) (bool, error) {
	favorited := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.FavoriteRecipe{})
		if result.Error != nil {
			return fmt.Errorf("remove favorite: %w", result.Error)
		}

		delta := -1
		if result.RowsAffected == 0 {
			fav := &models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}
			if err := tx.Create(fav).Error; err != nil {
				return fmt.Errorf("add favorite: %w", err)
			}
			delta = 1
			favorited = true
		}

		if err := tx.Model(&models.Recipe{}).
			Where("id = ?", recipeID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count + ?", delta)).Error; err != nil {
			return fmt.Errorf("update favorite count: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return favorited, nil
}

func (r *favoriteRepository) List(ctx context.Context, userID string) ([]models.FavoriteRecipe, error) {
	var list []models.FavoriteRecipe
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return list, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FavoriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
