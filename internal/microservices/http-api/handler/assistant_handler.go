package handler

import (
	"context"
	"net/http"
	"time"

	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/microservices/http-api/middleware"
	"bnin/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	assistantService service.AssistantService
}

func NewAssistantHandler(assistantService service.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
	}
}

func (h *AssistantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	assistant := rg.Group("/assistant")
	{
		assistant.POST("/chat", h.Chat)
		assistant.POST("/greeting", h.Greeting)
	}
}

// Chat answers a free-text query
// POST /api/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req dto.ChatRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.ValidationMessage(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), scoringTimeout)
	defer cancel()

	resp, err := h.assistantService.Chat(ctx, middleware.UserID(c, req.UserID), req.Query, req.Context.ToQueryContext())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Greeting builds the welcome message and suggestions
// POST /api/assistant/greeting
func (h *AssistantHandler) Greeting(c *gin.Context) {
	var req dto.GreetingRequestDTO
	// an empty body is a valid anonymous greeting
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": dto.ValidationMessage(err)})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	resp, err := h.assistantService.Greeting(ctx, middleware.UserID(c, req.UserID), req.Context.ToQueryContext())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
