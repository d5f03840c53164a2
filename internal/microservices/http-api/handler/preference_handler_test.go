package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPreferenceHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, m := setupRouter("")
		m.prefs.On("Get", mock.Anything, userA).Return(&dto.PreferencesResponse{
			UserID:         userA,
			PreferredMoods: []string{moodA},
		}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/users/"+userA+"/preferences", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.PreferencesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []string{moodA}, response.PreferredMoods)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		r, m := setupRouter("")
		m.prefs.On("Get", mock.Anything, missingID).Return(nil, service.ErrUserNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/users/"+missingID+"/preferences", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MalformedUser", func(t *testing.T) {
		r, m := setupRouter("")

		req, _ := http.NewRequest(http.MethodGet, "/api/users/ghost/preferences", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.prefs.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("OtherUsersToken", func(t *testing.T) {
		r, m := setupRouter(userB)

		req, _ := http.NewRequest(http.MethodGet, "/api/users/"+userA+"/preferences", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		m.prefs.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestPreferenceHandler_Replace(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, m := setupRouter(userA)
		m.prefs.On("Replace", mock.Anything, userA, mock.MatchedBy(func(req *dto.UpdatePreferencesDTO) bool {
			return len(req.PreferredIngredients) == 2 && len(req.Allergies) == 1
		})).Return(&dto.PreferencesResponse{UserID: userA}, nil).Once()

		body, _ := json.Marshal(jsonBody{
			"preferred_ingredients": []string{ingredientA, ingredientB},
			"allergies":             []string{"peanut"},
		})
		req, _ := http.NewRequest(http.MethodPut, "/api/users/"+userA+"/preferences", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		m.prefs.AssertExpectations(t)
	})

	t.Run("MalformedIngredient", func(t *testing.T) {
		r, m := setupRouter("")

		body, _ := json.Marshal(jsonBody{"preferred_ingredients": []string{"garlic"}})
		req, _ := http.NewRequest(http.MethodPut, "/api/users/"+userA+"/preferences", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "PreferredIngredients[0] must be a valid id")
		m.prefs.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EmptyEntry", func(t *testing.T) {
		r, _ := setupRouter("")

		body, _ := json.Marshal(jsonBody{"preferred_moods": []string{""}})
		req, _ := http.NewRequest(http.MethodPut, "/api/users/"+userA+"/preferences", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
