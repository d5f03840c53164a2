package repository

import (
	"context"
	"fmt"

	"bnin/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user and preference data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindWithPreferences(ctx context.Context, id string) (*models.User, error)
	GetPreferences(ctx context.Context, userID string) (*models.UserPreference, error)
	UpsertPreferences(ctx context.Context, pref *models.UserPreference) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindWithPreferences loads the user and, when present, the preference row.
func (r *userRepository) FindWithPreferences(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Preferences").First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) GetPreferences(ctx context.Context, userID string) (*models.UserPreference, error) {
	var pref models.UserPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error; err != nil {
		return nil, translate(err)
	}
	return &pref, nil
}

// UpsertPreferences replaces the stored sets for pref.UserID, creating the row if needed.
func (r *userRepository) UpsertPreferences(ctx context.Context, pref *models.UserPreference) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.UserPreference
		err := tx.Where("user_id = ?", pref.UserID).First(&existing).Error
		if err != nil && translate(err) != ErrNotFound {
			return fmt.Errorf("load preferences: %w", err)
		}
		if err == nil {
			pref.ID = existing.ID
			if err := tx.Save(pref).Error; err != nil {
				return fmt.Errorf("update preferences: %w", err)
			}
			return nil
		}
		if err := tx.Create(pref).Error; err != nil {
			return fmt.Errorf("create preferences: %w", err)
		}
		return nil
	})
}
