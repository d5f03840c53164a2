package repository

import (
	"context"
	"fmt"
	"time"

	"bnin/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// FeedbackRepository persists scoring outcomes and the signals used to train on them.
type FeedbackRepository interface {
	CreateRecommendationLog(ctx context.Context, log *models.RecommendationLog) error
	FindRecommendationLog(ctx context.Context, id string) (*models.RecommendationLog, error)
	UpdateRecommendationLog(ctx context.Context, id string, accepted bool) (*models.RecommendationLog, error)
	CreateUserHistoryEntry(ctx context.Context, entry *models.UserRecipeHistory) error
	CountRecentResolvedFeedback(ctx context.Context, since time.Time) (int64, error)
	FindUserHistory(ctx context.Context, userID string, limit int) ([]models.UserRecipeHistory, error)
	ListResolvedLogs(ctx context.Context) ([]models.RecommendationLog, error)
	ListRatedHistory(ctx context.Context) ([]models.UserRecipeHistory, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) CreateRecommendationLog(ctx context.Context, log *models.RecommendationLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("create recommendation log: %w", err)
	}
	return nil
}

func (r *feedbackRepository) FindRecommendationLog(ctx context.Context, id string) (*models.RecommendationLog, error) {
	var log models.RecommendationLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &log, nil
}

// UpdateRecommendationLog overwrites the acceptance outcome and bumps updated_at.
func (r *feedbackRepository) UpdateRecommendationLog(ctx context.Context, id string, accepted bool) (*models.RecommendationLog, error) {
	result := r.db.WithContext(ctx).
		Model(&models.RecommendationLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"user_accepted": accepted,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("update recommendation log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindRecommendationLog(ctx, id)
}

func (r *feedbackRepository) CreateUserHistoryEntry(ctx context.Context, entry *models.UserRecipeHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create user history: %w", err)
	}
	return nil
}

// CountRecentResolvedFeedback counts logs with an outcome recorded since the given time.
func (r *feedbackRepository) CountRecentResolvedFeedback(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RecommendationLog{}).
		Where("user_accepted IS NOT NULL AND updated_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count resolved feedback: %w", err)
	}
	return count, nil
}

// FindUserHistory returns the most recently viewed entries first.
func (r *feedbackRepository) FindUserHistory(ctx context.Context, userID string, limit int) ([]models.UserRecipeHistory, error) {
	q := r.db.WithContext(ctx).
		Preload("Recipe.Ingredients").
		Preload("Recipe.Moods").
		Where("user_id = ?", userID).
		Order("viewed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.UserRecipeHistory
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find user history: %w", err)
	}
	return list, nil
}

func (r *feedbackRepository) ListResolvedLogs(ctx context.Context) ([]models.RecommendationLog, error) {
	var list []models.RecommendationLog
	if err := r.db.WithContext(ctx).
		Preload("Recipe.Ingredients").
		Preload("Recipe.Moods").
		Where("user_accepted IS NOT NULL").
		Order("created_at ASC").Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list resolved logs: %w", err)
	}
	return list, nil
}

func (r *feedbackRepository) ListRatedHistory(ctx context.Context) ([]models.UserRecipeHistory, error) {
	var list []models.UserRecipeHistory
	if err := r.db.WithContext(ctx).
		Preload("Recipe.Ingredients").
		Preload("Recipe.Moods").
		Where("rating IS NOT NULL").
		Order("viewed_at ASC").Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list rated history: %w", err)
	}
	return list, nil
}
