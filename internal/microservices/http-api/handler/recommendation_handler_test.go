package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/recommendation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, path string, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRecommendationHandler_ByIngredients(t *testing.T) {
	expected := &dto.RecommendationResponse{
		RecommendationID: logA,
		Recipes: []dto.RecommendedRecipeResponse{
			{ID: "r1", Name: "Garlic Chicken", Score: 0.91, MissingIngredients: 1},
		},
	}

	t.Run("Success", func(t *testing.T) {
		r, m := setupRouter("")
		m.recs.On("RecommendByIngredients", mock.Anything, []string{ingredientA, ingredientB}, userB).Return(expected, nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendations/by-ingredients", jsonBody{
			"ingredient_ids": []string{ingredientA, ingredientB},
			"user_id":        userB,
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.RecommendationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, logA, response.RecommendationID)
		require.Len(t, response.Recipes, 1)
		assert.Equal(t, "Garlic Chicken", response.Recipes[0].Name)
		m.recs.AssertExpectations(t)
	})

	t.Run("TokenUserWins", func(t *testing.T) {
		r, m := setupRouter("u-token")
		m.recs.On("RecommendByIngredients", mock.Anything, []string{ingredientA}, "u-token").Return(expected, nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendations/by-ingredients", jsonBody{
			"ingredient_ids": []string{ingredientA},
			"user_id":        userB,
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		m.recs.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		r, m := setupRouter("")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendations/by-ingredients", jsonBody{"ingredient_ids": []string{}}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "IngredientIDs")
		m.recs.AssertNotCalled(t, "RecommendByIngredients", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedIngredientID", func(t *testing.T) {
		r, m := setupRouter("")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendations/by-ingredients", jsonBody{"ingredient_ids": []string{ingredientA, "chicken"}}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "IngredientIDs[1] must be a valid id")
		m.recs.AssertNotCalled(t, "RecommendByIngredients", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedUserID", func(t *testing.T) {
		r, m := setupRouter("")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendations/by-ingredients", jsonBody{
			"ingredient_ids": []string{ingredientA},
			"user_id":        "u1",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "UserID must be a valid id")
		m.recs.AssertNotCalled(t, "RecommendByIngredients", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ModelUnavailable", func(t *testing.T) {
		r, m := setupRouter("")
		m.recs.On("RecommendByIngredients", mock.Anything, []string{ingredientA}, "").
			Return(nil, recommendation.ErrModelUnavailable).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendations/by-ingredients", jsonBody{"ingredient_ids": []string{ingredientA}}))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("InternalErrorIsHidden", func(t *testing.T) {
		r, m := setupRouter("")
		m.recs.On("RecommendByIngredients", mock.Anything, []string{ingredientA}, "").
			Return(nil, errors.New("pq: connection refused")).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendations/by-ingredients", jsonBody{"ingredient_ids": []string{ingredientA}}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pq:")
	})
}

func TestRecommendationHandler_ByMood(t *testing.T) {
	r, m := setupRouter("")
	m.recs.On("RecommendByMood", mock.Anything, moodA, "").
		Return(&dto.RecommendationResponse{Recipes: []dto.RecommendedRecipeResponse{}}, nil).Once()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postJSON(t, "/api/recommendations/by-mood", jsonBody{"mood_id": moodA}))

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotContains(t, response, "recommendation_id")
	assert.Equal(t, []interface{}{}, response["recipes"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, postJSON(t, "/api/recommendations/by-mood", jsonBody{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, postJSON(t, "/api/recommendations/by-mood", jsonBody{"mood_id": "comfort"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MoodID must be a valid id")
	m.recs.AssertNumberOfCalls(t, "RecommendByMood", 1)
}

func TestRecommendationHandler_Feedback(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, m := setupRouter("")
		m.recs.On("SubmitFeedback", mock.Anything, logA, true, intPtr(4)).
			Return(&dto.FeedbackResponse{RecommendationID: logA, RecipeID: "r1", Accepted: true}, nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendation-feedback", jsonBody{
			"recommendation_id": logA,
			"accepted":          true,
			"rating":            4,
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		m.recs.AssertExpectations(t)
	})

	t.Run("RejectedWithoutRating", func(t *testing.T) {
		r, m := setupRouter("")
		m.recs.On("SubmitFeedback", mock.Anything, logA, false, (*int)(nil)).
			Return(&dto.FeedbackResponse{RecommendationID: logA}, nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendation-feedback", jsonBody{
			"recommendation_id": logA,
			"accepted":          false,
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		m.recs.AssertExpectations(t)
	})

	t.Run("AcceptedIsRequired", func(t *testing.T) {
		r, _ := setupRouter("")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendation-feedback", jsonBody{"recommendation_id": logA}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		r, _ := setupRouter("")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendation-feedback", jsonBody{
			"recommendation_id": logA,
			"accepted":          true,
			"rating":            6,
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Rating must be at most 5")
	})

	t.Run("MalformedRecommendationID", func(t *testing.T) {
		r, m := setupRouter("")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendation-feedback", jsonBody{
			"recommendation_id": "rec-1",
			"accepted":          true,
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "RecommendationID must be a valid id")
		m.recs.AssertNotCalled(t, "SubmitFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownRecommendation", func(t *testing.T) {
		r, m := setupRouter("")
		m.recs.On("SubmitFeedback", mock.Anything, missingID, true, (*int)(nil)).
			Return(nil, recommendation.ErrRecommendationNotFound).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/recommendation-feedback", jsonBody{
			"recommendation_id": missingID,
			"accepted":          true,
		}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

type jsonBody map[string]interface{}
