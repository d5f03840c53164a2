package dto

import "bnin/internal/assistant"

// QueryContextDTO is optional client context for chat and greeting requests
type QueryContextDTO struct {
	Location    string   `json:"location"`
	Weather     string   `json:"weather"`
	Temperature *float64 `json:"temperature"`
	TimeOfDay   string   `json:"time_of_day" binding:"omitempty,oneof=morning afternoon evening night"`
	DayOfWeek   *int     `json:"day_of_week" binding:"omitempty,min=0,max=6"`
}

func (q *QueryContextDTO) ToQueryContext() assistant.QueryContext {
	if q == nil {
		return assistant.QueryContext{}
	}
	return assistant.QueryContext{
		Location:    q.Location,
		Weather:     q.Weather,
		Temperature: q.Temperature,
		TimeOfDay:   q.TimeOfDay,
		DayOfWeek:   q.DayOfWeek,
	}
}

type ChatRequestDTO struct {
	Query   string           `json:"query" binding:"required"`
	UserID  string           `json:"user_id" binding:"omitempty,uuid"`
	Context *QueryContextDTO `json:"context"`
}

type GreetingRequestDTO struct {
	UserID  string           `json:"user_id" binding:"omitempty,uuid"`
	Context *QueryContextDTO `json:"context"`
}

type ActionResponse struct {
	Type        string            `json:"type"`
	Destination string            `json:"destination,omitempty"`
	Params      map[string]string `json:"params,omitempty"`
	Label       string            `json:"label"`
}

type RecipeCardResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	ImageURL           *string `json:"image_url,omitempty"`
	MissingIngredients *int    `json:"missing_ingredients,omitempty"`
}

// ChatResponse mirrors assistant.Message; empty lists are omitted
type ChatResponse struct {
	Message string               `json:"message"`
	Recipes []RecipeCardResponse `json:"recipes,omitempty"`
	Actions []ActionResponse     `json:"actions,omitempty"`
}

func FromMessageToChatResponse(msg *assistant.Message) *ChatResponse {
	resp := &ChatResponse{Message: msg.Message}
	for _, r := range msg.Recipes {
		resp.Recipes = append(resp.Recipes, RecipeCardResponse{
			ID:                 r.ID,
			Name:               r.Name,
			ImageURL:           r.ImageURL,
			MissingIngredients: r.MissingIngredients,
		})
	}
	for _, a := range msg.Actions {
		resp.Actions = append(resp.Actions, ActionResponse{
			Type:        a.Type,
			Destination: a.Destination,
			Params:      a.Params,
			Label:       a.Label,
		})
	}
	return resp
}

type SuggestionResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Message  string  `json:"message"`
	ImageURL *string `json:"image_url,omitempty"`
}

type GreetingResponse struct {
	Greeting          string               `json:"greeting"`
	Suggestions       []SuggestionResponse `json:"suggestions"`
	SpecialSuggestion string               `json:"special_suggestion,omitempty"`
}

func FromGreetingToResponse(g *assistant.Greeting) *GreetingResponse {
	resp := &GreetingResponse{
		Greeting:          g.Greeting,
		Suggestions:       make([]SuggestionResponse, 0, len(g.Suggestions)),
		SpecialSuggestion: g.SpecialSuggestion,
	}
	for _, s := range g.Suggestions {
		resp.Suggestions = append(resp.Suggestions, SuggestionResponse{
			ID:       s.ID,
			Name:     s.Name,
			Message:  s.Message,
			ImageURL: s.ImageURL,
		})
	}
	return resp
}
