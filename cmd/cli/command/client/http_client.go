package client

// http_client.go = HTTP client for the bnin API used by every CLI command.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bnin/internal/microservices/http-api/dto"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// constructor for HTTP client; training on first use can take a while
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// Recommendations

func (c *HTTPClient) RecommendByIngredients(ctx context.Context, ingredientIDs []string, userID string) (*dto.RecommendationResponse, error) {
	req := dto.RecommendByIngredientsDTO{IngredientIDs: ingredientIDs, UserID: userID}
	var result dto.RecommendationResponse
	if err := c.do(ctx, http.MethodPost, "/api/recommendations/by-ingredients", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) RecommendByMood(ctx context.Context, moodID, userID string) (*dto.RecommendationResponse, error) {
	req := dto.RecommendByMoodDTO{MoodID: moodID, UserID: userID}
	var result dto.RecommendationResponse
	if err := c.do(ctx, http.MethodPost, "/api/recommendations/by-mood", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) SendFeedback(ctx context.Context, recommendationID string, accepted bool, rating *int) (*dto.FeedbackResponse, error) {
	req := dto.RecommendationFeedbackDTO{RecommendationID: recommendationID, Accepted: &accepted, Rating: rating}
	var result dto.FeedbackResponse
	if err := c.do(ctx, http.MethodPost, "/api/recommendation-feedback", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Assistant

func (c *HTTPClient) Chat(ctx context.Context, req *dto.ChatRequestDTO) (*dto.ChatResponse, error) {
	var result dto.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/assistant/chat", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Greeting(ctx context.Context, req *dto.GreetingRequestDTO) (*dto.GreetingResponse, error) {
	var result dto.GreetingResponse
	if err := c.do(ctx, http.MethodPost, "/api/assistant/greeting", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Catalog

func (c *HTTPClient) ListIngredients(ctx context.Context, category string) ([]dto.IngredientResponse, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	var result []dto.IngredientResponse
	if err := c.do(ctx, http.MethodGet, "/api/ingredients", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) ListMoods(ctx context.Context) ([]dto.MoodResponse, error) {
	var result []dto.MoodResponse
	if err := c.do(ctx, http.MethodGet, "/api/moods", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) ListRecipes(ctx context.Context, query url.Values) ([]dto.RecipeBasicResponse, error) {
	var result []dto.RecipeBasicResponse
	if err := c.do(ctx, http.MethodGet, "/api/recipes", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) GetRecipe(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	var result dto.RecipeResponse
	if err := c.do(ctx, http.MethodGet, "/api/recipes/"+url.PathEscape(id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Favorites

func (c *HTTPClient) ListFavorites(ctx context.Context, userID string) ([]dto.RecipeBasicResponse, error) {
	query := url.Values{}
	if userID != "" {
		query.Set("user_id", userID)
	}
	var result []dto.RecipeBasicResponse
	if err := c.do(ctx, http.MethodGet, "/api/favorites", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) ToggleFavorite(ctx context.Context, recipeID, userID string) (*dto.ToggleFavoriteResponse, error) {
	req := dto.ToggleFavoriteDTO{RecipeID: recipeID, UserID: userID}
	var result dto.ToggleFavoriteResponse
	if err := c.do(ctx, http.MethodPost, "/api/favorites", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do sends a JSON request and decodes a JSON response into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
