package service

import (
	"context"
	"errors"

	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/microservices/http-api/repository"
)

type FavoriteService interface {
	Toggle(ctx context.Context, userID, recipeID string) (*dto.ToggleFavoriteResponse, error)
	List(ctx context.Context, userID string) ([]dto.RecipeBasicResponse, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	catalogRepo  repository.CatalogRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, catalogRepo repository.CatalogRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		catalogRepo:  catalogRepo,
	}
}

// Toggle flips the favorite state of recipeID for userID
func (s *favoriteService) Toggle(ctx context.Context, userID, recipeID string) (*dto.ToggleFavoriteResponse, error) {
	if _, err := s.catalogRepo.FindRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	favorited, err := s.favoriteRepo.Toggle(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleFavoriteResponse{RecipeID: recipeID, IsFavorite: favorited}, nil
}

func (s *favoriteService) List(ctx context.Context, userID string) ([]dto.RecipeBasicResponse, error) {
	favs, err := s.favoriteRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromFavoritesToRecipeList(favs), nil
}
