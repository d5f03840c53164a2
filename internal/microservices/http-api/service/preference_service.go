package service

import (
	"context"
	"errors"

	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/microservices/http-api/models"
	"bnin/internal/microservices/http-api/repository"
)

type PreferenceService interface {
	Get(ctx context.Context, userID string) (*dto.PreferencesResponse, error)
	Replace(ctx context.Context, userID string, req *dto.UpdatePreferencesDTO) (*dto.PreferencesResponse, error)
}

type preferenceService struct {
	userRepo repository.UserRepository
}

func NewPreferenceService(userRepo repository.UserRepository) PreferenceService {
	return &preferenceService{userRepo: userRepo}
}

// Get returns the user's preferences; a user who never saved any gets empty sets
func (s *preferenceService) Get(ctx context.Context, userID string) (*dto.PreferencesResponse, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	pref, err := s.userRepo.GetPreferences(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return dto.FromModelToPreferencesResponse(&models.UserPreference{UserID: userID}), nil
	}
	if err != nil {
		return nil, err
	}
	return dto.FromModelToPreferencesResponse(pref), nil
}

func (s *preferenceService) Replace(ctx context.Context, userID string, req *dto.UpdatePreferencesDTO) (*dto.PreferencesResponse, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	pref := req.ToModel(userID)
	if err := s.userRepo.UpsertPreferences(ctx, pref); err != nil {
		return nil, err
	}
	return dto.FromModelToPreferencesResponse(pref), nil
}

func (s *preferenceService) userExists(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
