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

type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("", h.Toggle)
	}
}

// List returns the user's favorite recipes, newest first
// GET /api/favorites?user_id=...
func (h *FavoriteHandler) List(c *gin.Context) {
	userID := middleware.UserID(c, "")
	if userID == "" {
		userID = c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		if !requireID(c, "user_id", userID) {
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.favoriteService.List(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Toggle adds or removes a favorite
// POST /api/favorites
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	var req dto.ToggleFavoriteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.ValidationMessage(err)})
		return
	}
	userID := middleware.UserID(c, req.UserID)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.favoriteService.Toggle(ctx, userID, req.RecipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
