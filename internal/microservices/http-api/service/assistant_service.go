package service

import (
	"context"

	"bnin/internal/assistant"
	"bnin/internal/microservices/http-api/dto"
)

// Conversational is implemented by *assistant.Assistant.
type Conversational interface {
	HandleChatQuery(ctx context.Context, userID, query string, qctx assistant.QueryContext) (*assistant.Message, error)
	Greeting(ctx context.Context, userID string, qctx assistant.QueryContext) (*assistant.Greeting, error)
}

type AssistantService interface {
	Chat(ctx context.Context, userID, query string, qctx assistant.QueryContext) (*dto.ChatResponse, error)
	Greeting(ctx context.Context, userID string, qctx assistant.QueryContext) (*dto.GreetingResponse, error)
}

type assistantService struct {
	assistant Conversational
}

func NewAssistantService(a Conversational) AssistantService {
	return &assistantService{assistant: a}
}

func (s *assistantService) Chat(ctx context.Context, userID, query string, qctx assistant.QueryContext) (*dto.ChatResponse, error) {
	msg, err := s.assistant.HandleChatQuery(ctx, userID, query, qctx)
	if err != nil {
		return nil, err
	}
	return dto.FromMessageToChatResponse(msg), nil
}

func (s *assistantService) Greeting(ctx context.Context, userID string, qctx assistant.QueryContext) (*dto.GreetingResponse, error) {
	g, err := s.assistant.Greeting(ctx, userID, qctx)
	if err != nil {
		return nil, err
	}
	return dto.FromGreetingToResponse(g), nil
}
