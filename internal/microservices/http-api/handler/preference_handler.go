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

type PreferenceHandler struct {
	preferenceService service.PreferenceService
}

func NewPreferenceHandler(preferenceService service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
	}
}

func (h *PreferenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prefs := rg.Group("/users/:user_id/preferences")
	{
		prefs.GET("", h.Get)
		prefs.PUT("", h.Replace)
	}
}

// Get returns the user's preference sets
// GET /api/users/:user_id/preferences
func (h *PreferenceHandler) Get(c *gin.Context) {
	userID, ok := h.targetUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.preferenceService.Get(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Replace overwrites every preference set
// PUT /api/users/:user_id/preferences
func (h *PreferenceHandler) Replace(c *gin.Context) {
	userID, ok := h.targetUser(c)
	if !ok {
		return
	}

	var req dto.UpdatePreferencesDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.ValidationMessage(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.preferenceService.Replace(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// targetUser returns the path user, refusing when a token names someone else.
func (h *PreferenceHandler) targetUser(c *gin.Context) (string, bool) {
	pathUser := c.Param("user_id")
	if tokenUser := middleware.UserID(c, ""); tokenUser != "" && tokenUser != pathUser {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot access another user's preferences"})
		return "", false
	}
	if !requireID(c, "user_id", pathUser) {
		return "", false
	}
	return pathUser, true
}
