package service

import (
	"context"

	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/microservices/http-api/models"
	"bnin/internal/recommendation"
)

// Recommender is the part of recommendation.Engine the service drives.
type Recommender interface {
	RecommendByIngredients(ctx context.Context, ingredientIDs []string, userID string) (*recommendation.Result, error)
	RecommendByMood(ctx context.Context, moodID, userID string) (*recommendation.Result, error)
	UpdateModel(ctx context.Context, recommendationID string, accepted bool, rating *int) (*models.RecommendationLog, error)
}

type RecommendationService interface {
	RecommendByIngredients(ctx context.Context, ingredientIDs []string, userID string) (*dto.RecommendationResponse, error)
	RecommendByMood(ctx context.Context, moodID, userID string) (*dto.RecommendationResponse, error)
	SubmitFeedback(ctx context.Context, recommendationID string, accepted bool, rating *int) (*dto.FeedbackResponse, error)
}

type recommendationService struct {
	engine Recommender
}

func NewRecommendationService(engine Recommender) RecommendationService {
	return &recommendationService{engine: engine}
}

func (s *recommendationService) RecommendByIngredients(ctx context.Context, ingredientIDs []string, userID string) (*dto.RecommendationResponse, error) {
	res, err := s.engine.RecommendByIngredients(ctx, ingredientIDs, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromResultToRecommendationResponse(res), nil
}

func (s *recommendationService) RecommendByMood(ctx context.Context, moodID, userID string) (*dto.RecommendationResponse, error) {
	res, err := s.engine.RecommendByMood(ctx, moodID, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromResultToRecommendationResponse(res), nil
}

// SubmitFeedback resolves a recommendation. Errors from the engine
// (ErrRecommendationNotFound, ErrInvalidInput) are returned unchanged.
func (s *recommendationService) SubmitFeedback(ctx context.Context, recommendationID string, accepted bool, rating *int) (*dto.FeedbackResponse, error) {
	log, err := s.engine.UpdateModel(ctx, recommendationID, accepted, rating)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToFeedbackResponse(log), nil
}
