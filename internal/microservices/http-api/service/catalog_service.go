package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/microservices/http-api/repository"
)

type CatalogService interface {
	ListIngredients(ctx context.Context, category string) ([]dto.IngredientResponse, error)
	CreateIngredient(ctx context.Context, req *dto.CreateIngredientDTO) (*dto.IngredientResponse, error)
	CreateCompatibility(ctx context.Context, req *dto.CreateCompatibilityDTO) error
	ListCompatibility(ctx context.Context, ingredientID string) ([]dto.CompatibilityResponse, error)
	ListMoods(ctx context.Context) ([]dto.MoodResponse, error)
	ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]dto.RecipeBasicResponse, error)
	GetRecipe(ctx context.Context, id string) (*dto.RecipeResponse, error)
	CreateRecipe(ctx context.Context, req *dto.CreateRecipeDTO) (*dto.RecipeResponse, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListIngredients(ctx context.Context, category string) ([]dto.IngredientResponse, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && !dto.IsIngredientCategory(category) {
		return nil, ErrInvalidCategory
	}

	list, err := s.repo.ListIngredients(ctx, category)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(list))
	for i := range list {
		out = append(out, *dto.FromModelToIngredientResponse(&list[i]))
	}
	return out, nil
}

func (s *catalogService) CreateIngredient(ctx context.Context, req *dto.CreateIngredientDTO) (*dto.IngredientResponse, error) {
	if !dto.IsIngredientCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	ing := req.ToModel()
	ing.Name = strings.TrimSpace(ing.Name)
	if err := s.repo.CreateIngredient(ctx, ing); err != nil {
		return nil, err
	}
	return dto.FromModelToIngredientResponse(ing), nil
}

// CreateCompatibility stores a symmetric pairing between two existing ingredients.
func (s *catalogService) CreateCompatibility(ctx context.Context, req *dto.CreateCompatibilityDTO) error {
	for _, id := range []string{req.IngredientID, req.CompatibleWithID} {
		if err := s.ingredientExists(ctx, id); err != nil {
			return err
		}
	}

	err := s.repo.CreateCompatibility(ctx, req.IngredientID, req.CompatibleWithID, req.CompatibilityScore)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return ErrCompatibilityExists
	}
	return err
}

// ListCompatibility returns the ingredient's pairings, best score first.
func (s *catalogService) ListCompatibility(ctx context.Context, ingredientID string) ([]dto.CompatibilityResponse, error) {
	if err := s.ingredientExists(ctx, ingredientID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListCompatibility(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompatibilityResponse, 0, len(list))
	for i := range list {
		out = append(out, *dto.FromModelToCompatibilityResponse(&list[i]))
	}
	return out, nil
}

func (s *catalogService) ListMoods(ctx context.Context) ([]dto.MoodResponse, error) {
	list, err := s.repo.ListMoods(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MoodResponse, 0, len(list))
	for i := range list {
		out = append(out, *dto.FromModelToMoodResponse(&list[i]))
	}
	return out, nil
}

func (s *catalogService) ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]dto.RecipeBasicResponse, error) {
	list, err := s.repo.ListRecipes(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeBasicResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.FromModelToRecipeBasicResponse(&list[i]))
	}
	return out, nil
}

func (s *catalogService) GetRecipe(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	recipe, err := s.repo.FindRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return dto.FromModelToRecipeResponse(recipe), nil
}

// CreateRecipe checks every referenced ingredient and mood, stores the recipe
// with its join rows, and returns it reloaded with names.
func (s *catalogService) CreateRecipe(ctx context.Context, req *dto.CreateRecipeDTO) (*dto.RecipeResponse, error) {
	for _, ing := range req.Ingredients {
		if err := s.ingredientExists(ctx, ing.IngredientID); err != nil {
			return nil, err
		}
	}
	for _, m := range req.Moods {
		if _, err := s.repo.FindMoodByID(ctx, m.MoodID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrMoodNotFound, m.MoodID)
			}
			return nil, err
		}
	}

	recipe := req.ToModel()
	if err := s.repo.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID)
}

func (s *catalogService) ingredientExists(ctx context.Context, id string) error {
	if _, err := s.repo.FindIngredientByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrIngredientNotFound, id)
		}
		return err
	}
	return nil
}
