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

// scoring may train the first model, so it gets more time than catalog reads
const scoringTimeout = 30 * time.Second

type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
	}
}

// RegisterRoutes registers recommendation routes
func (h *RecommendationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recs := rg.Group("/recommendations")
	{
		recs.POST("/by-ingredients", h.ByIngredients)
		recs.POST("/by-mood", h.ByMood)
	}
	rg.POST("/recommendation-feedback", h.Feedback)
}

// ByIngredients ranks recipes using any of the given ingredients
// POST /api/recommendations/by-ingredients
func (h *RecommendationHandler) ByIngredients(c *gin.Context) {
	var req dto.RecommendByIngredientsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.ValidationMessage(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), scoringTimeout)
	defer cancel()

	resp, err := h.recommendationService.RecommendByIngredients(ctx, req.IngredientIDs, middleware.UserID(c, req.UserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ByMood ranks recipes tagged with the mood
// POST /api/recommendations/by-mood
func (h *RecommendationHandler) ByMood(c *gin.Context) {
	var req dto.RecommendByMoodDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.ValidationMessage(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), scoringTimeout)
	defer cancel()

	resp, err := h.recommendationService.RecommendByMood(ctx, req.MoodID, middleware.UserID(c, req.UserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Feedback resolves a recommendation as accepted or rejected
// POST /api/recommendation-feedback
func (h *RecommendationHandler) Feedback(c *gin.Context) {
	var req dto.RecommendationFeedbackDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.ValidationMessage(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), scoringTimeout)
	defer cancel()

	resp, err := h.recommendationService.SubmitFeedback(ctx, req.RecommendationID, *req.Accepted, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
