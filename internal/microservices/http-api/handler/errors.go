package handler

import (
	"errors"
	"net/http"

	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/microservices/http-api/service"
	"bnin/internal/recommendation"

	"github.com/gin-gonic/gin"
)

// respondError writes {"error": msg} with the status matching err.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, recommendation.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidCategory):
		status = http.StatusBadRequest
	case errors.Is(err, recommendation.ErrRecommendationNotFound),
		errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrMoodNotFound),
		errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrCompatibilityExists):
		status = http.StatusConflict
	case errors.Is(err, recommendation.ErrModelUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		// keep internals out of the response, the request logger has them
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireID writes 400 unless id has the shape of a stored key.
func requireID(c *gin.Context, field, id string) bool {
	if dto.IsID(id) {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": field + " must be a valid id"})
	return false
}
