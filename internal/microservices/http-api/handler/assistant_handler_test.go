package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bnin/internal/assistant"
	"bnin/internal/microservices/http-api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssistantHandler_Chat(t *testing.T) {
	t.Run("PassesContext", func(t *testing.T) {
		r, m := setupRouter("")
		temp := 3.5
		day := 5
		qctx := assistant.QueryContext{Location: "Oslo", Weather: "snowy", Temperature: &temp, TimeOfDay: "evening", DayOfWeek: &day}
		m.chat.On("Chat", mock.Anything, userA, "something warm", qctx).Return(&dto.ChatResponse{
			Message: "Warm up with these",
			Recipes: []dto.RecipeCardResponse{{ID: "r1", Name: "Chili"}},
		}, nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/assistant/chat", jsonBody{
			"query":   "something warm",
			"user_id": userA,
			"context": jsonBody{
				"location":    "Oslo",
				"weather":     "snowy",
				"temperature": 3.5,
				"time_of_day": "evening",
				"day_of_week": 5,
			},
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Warm up with these", response["message"])
		assert.NotContains(t, response, "actions")
		m.chat.AssertExpectations(t)
	})

	t.Run("QueryRequired", func(t *testing.T) {
		r, _ := setupRouter("")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/assistant/chat", jsonBody{"user_id": userA}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Query is required")
	})

	t.Run("MalformedUser", func(t *testing.T) {
		r, m := setupRouter("")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/assistant/chat", jsonBody{"query": "soup", "user_id": "sam"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "UserID must be a valid id")
		m.chat.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("BadTimeOfDay", func(t *testing.T) {
		r, _ := setupRouter("")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/assistant/chat", jsonBody{
			"query":   "lunch ideas",
			"context": jsonBody{"time_of_day": "brunch"},
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAssistantHandler_Greeting(t *testing.T) {
	t.Run("EmptyBody", func(t *testing.T) {
		r, m := setupRouter("")
		m.chat.On("Greeting", mock.Anything, "", assistant.QueryContext{}).Return(&dto.GreetingResponse{
			Greeting:    "Good morning, there!",
			Suggestions: []dto.SuggestionResponse{},
		}, nil).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/assistant/greeting", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.GreetingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Good morning, there!", response.Greeting)
		assert.Empty(t, response.SpecialSuggestion)
	})

	t.Run("TokenUser", func(t *testing.T) {
		r, m := setupRouter("u-token")
		m.chat.On("Greeting", mock.Anything, "u-token", assistant.QueryContext{TimeOfDay: "night"}).Return(&dto.GreetingResponse{
			Greeting:          "Good evening, ana!",
			Suggestions:       []dto.SuggestionResponse{{ID: "r1", Name: "Brownies", Message: "Something sweet"}},
			SpecialSuggestion: "It's Friday! How about something festive?",
		}, nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON(t, "/api/assistant/greeting", jsonBody{
			"user_id": userB,
			"context": jsonBody{"time_of_day": "night"},
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "special_suggestion")
		m.chat.AssertExpectations(t)
	})
}
