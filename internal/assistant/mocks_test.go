package assistant

import (
	"context"

	"bnin/internal/microservices/http-api/models"
	"bnin/internal/recommendation"
	"bnin/internal/weather"

	"github.com/stretchr/testify/mock"
)

type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) RecommendByIngredients(ctx context.Context, ingredientIDs []string, userID string) (*recommendation.Result, error) {
	args := m.Called(ctx, ingredientIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recommendation.Result), args.Error(1)
}

func (m *MockRecommender) RecommendByMood(ctx context.Context, moodID, userID string) (*recommendation.Result, error) {
	args := m.Called(ctx, moodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recommendation.Result), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) FindIngredientsByNames(ctx context.Context, names []string) ([]models.Ingredient, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockCatalog) FindMoodByName(ctx context.Context, name string) (*models.Mood, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mood), args.Error(1)
}

func (m *MockCatalog) FindMoodsByNames(ctx context.Context, names []string) ([]models.Mood, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Mood), args.Error(1)
}

func (m *MockCatalog) FindRecentRecipesByMoods(ctx context.Context, moodIDs []string, minRelevance, limit int) ([]models.Recipe, error) {
	args := m.Called(ctx, moodIDs, minRelevance, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) FindWithPreferences(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) FindUserHistory(ctx context.Context, userID string, limit int) ([]models.UserRecipeHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserRecipeHistory), args.Error(1)
}

type MockWeather struct {
	mock.Mock
}

func (m *MockWeather) Current(ctx context.Context, location string) (*weather.Reading, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weather.Reading), args.Error(1)
}

func scored(recipes ...models.Recipe) *recommendation.Result {
	res := &recommendation.Result{Recipes: []recommendation.ScoredRecipe{}, RecommendationID: "log-1"}
	for _, r := range recipes {
		res.Recipes = append(res.Recipes, recommendation.ScoredRecipe{Recipe: r, Score: 0.5})
	}
	return res
}

func recipe(id, name string) models.Recipe {
	return models.Recipe{ID: id, Name: name}
}
