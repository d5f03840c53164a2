package handler_test

import (
	"context"

	"bnin/internal/assistant"
	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/microservices/http-api/handler"
	"bnin/internal/microservices/http-api/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// keys shaped like the ones the database generates
const (
	userA       = "3f2b8c1e-6a4d-4e7f-9b1a-2c5d8e0f1a2b"
	userB       = "8a1c2e3f-4b5d-4c6e-8f7a-9b0c1d2e3f4a"
	ingredientA = "b5e1c7d2-0f3a-4b8c-9d6e-1a2b3c4d5e6f"
	ingredientB = "c6f2d8e3-1a4b-4c9d-8e7f-2b3c4d5e6f7a"
	moodA       = "d7a3e9f4-2b5c-4dae-9f80-3c4d5e6f7a8b"
	recipeA     = "e8b4fa05-3c6d-4ebf-8a91-4d5e6f7a8b9c"
	logA        = "f9c50b16-4d7e-4fc0-9ba2-5e6f7a8b9c0d"
	missingID   = "0a1b2c3d-4e5f-4a6b-8c7d-8e9f0a1b2c3d"
)

// --- MOCK SERVICES ---

type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) RecommendByIngredients(ctx context.Context, ingredientIDs []string, userID string) (*dto.RecommendationResponse, error) {
	args := m.Called(ctx, ingredientIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecommendationResponse), args.Error(1)
}

func (m *MockRecommendationService) RecommendByMood(ctx context.Context, moodID, userID string) (*dto.RecommendationResponse, error) {
	args := m.Called(ctx, moodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecommendationResponse), args.Error(1)
}

func (m *MockRecommendationService) SubmitFeedback(ctx context.Context, recommendationID string, accepted bool, rating *int) (*dto.FeedbackResponse, error) {
	args := m.Called(ctx, recommendationID, accepted, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FeedbackResponse), args.Error(1)
}

type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Chat(ctx context.Context, userID, query string, qctx assistant.QueryContext) (*dto.ChatResponse, error) {
	args := m.Called(ctx, userID, query, qctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChatResponse), args.Error(1)
}

func (m *MockAssistantService) Greeting(ctx context.Context, userID string, qctx assistant.QueryContext) (*dto.GreetingResponse, error) {
	args := m.Called(ctx, userID, qctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GreetingResponse), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListIngredients(ctx context.Context, category string) ([]dto.IngredientResponse, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.IngredientResponse), args.Error(1)
}

func (m *MockCatalogService) CreateIngredient(ctx context.Context, req *dto.CreateIngredientDTO) (*dto.IngredientResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.IngredientResponse), args.Error(1)
}

func (m *MockCatalogService) CreateCompatibility(ctx context.Context, req *dto.CreateCompatibilityDTO) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockCatalogService) ListCompatibility(ctx context.Context, ingredientID string) ([]dto.CompatibilityResponse, error) {
	args := m.Called(ctx, ingredientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CompatibilityResponse), args.Error(1)
}

func (m *MockCatalogService) ListMoods(ctx context.Context) ([]dto.MoodResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.MoodResponse), args.Error(1)
}

func (m *MockCatalogService) ListRecipes(ctx context.Context, filter repository.RecipeFilter) ([]dto.RecipeBasicResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RecipeBasicResponse), args.Error(1)
}

func (m *MockCatalogService) GetRecipe(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecipeResponse), args.Error(1)
}

func (m *MockCatalogService) CreateRecipe(ctx context.Context, req *dto.CreateRecipeDTO) (*dto.RecipeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecipeResponse), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Toggle(ctx context.Context, userID, recipeID string) (*dto.ToggleFavoriteResponse, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ToggleFavoriteResponse), args.Error(1)
}

func (m *MockFavoriteService) List(ctx context.Context, userID string) ([]dto.RecipeBasicResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RecipeBasicResponse), args.Error(1)
}

type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) Get(ctx context.Context, userID string) (*dto.PreferencesResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PreferencesResponse), args.Error(1)
}

func (m *MockPreferenceService) Replace(ctx context.Context, userID string, req *dto.UpdatePreferencesDTO) (*dto.PreferencesResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PreferencesResponse), args.Error(1)
}

// --- HELPERS ---

// mockAuthMiddleware simulates a verified bearer token
func mockAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	}
}

type mockServices struct {
	recs  *MockRecommendationService
	chat  *MockAssistantService
	cat   *MockCatalogService
	favs  *MockFavoriteService
	prefs *MockPreferenceService
}

// setupRouter wires every handler under /api; tokenUser simulates an authenticated caller
func setupRouter(tokenUser string) (*gin.Engine, *mockServices) {
	gin.SetMode(gin.TestMode)
	_ = dto.RegisterValidators()

	m := &mockServices{
		recs:  new(MockRecommendationService),
		chat:  new(MockAssistantService),
		cat:   new(MockCatalogService),
		favs:  new(MockFavoriteService),
		prefs: new(MockPreferenceService),
	}

	r := gin.Default()
	api := r.Group("/api")
	api.Use(mockAuthMiddleware(tokenUser))
	handler.NewRecommendationHandler(m.recs).RegisterRoutes(api)
	handler.NewAssistantHandler(m.chat).RegisterRoutes(api)
	handler.NewCatalogHandler(m.cat).RegisterRoutes(api)
	handler.NewFavoriteHandler(m.favs).RegisterRoutes(api)
	handler.NewPreferenceHandler(m.prefs).RegisterRoutes(api)
	return r, m
}

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
