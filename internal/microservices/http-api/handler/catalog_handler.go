package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/microservices/http-api/repository"
	"bnin/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// RegisterRoutes registers ingredient, mood and recipe routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ingredients := rg.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.POST("", h.CreateIngredient)
		ingredients.GET("/compatibility", h.ListCompatibility)
		ingredients.POST("/compatibility", h.CreateCompatibility)
		ingredients.GET("/:id/compatibility", h.ListCompatibility)
	}

	rg.GET("/moods", h.ListMoods)

	recipes := rg.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
	}
}

// ListIngredients lists ingredients by name, optionally within one category
// GET /api/ingredients?category=protein
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.catalogService.ListIngredients(ctx, c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateIngredient adds an ingredient
// POST /api/ingredients
func (h *CatalogHandler) CreateIngredient(c *gin.Context) {
	var req dto.CreateIngredientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.ValidationMessage(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.catalogService.CreateIngredient(ctx, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListCompatibility lists an ingredient's pairings
// GET /api/ingredients/:id/compatibility
// GET /api/ingredients/compatibility?ingredient_id=...
func (h *CatalogHandler) ListCompatibility(c *gin.Context) {
	ingredientID := c.Param("id")
	if ingredientID == "" {
		ingredientID = c.Query("ingredient_id")
	}
	if ingredientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient_id is required"})
		return
	}
	if !requireID(c, "ingredient_id", ingredientID) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.catalogService.ListCompatibility(ctx, ingredientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateCompatibility pairs two ingredients in both directions
// POST /api/ingredients/compatibility
func (h *CatalogHandler) CreateCompatibility(c *gin.Context) {
	var req dto.CreateCompatibilityDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.ValidationMessage(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.catalogService.CreateCompatibility(ctx, &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Compatibility created successfully"})
}

// ListMoods lists every mood
// GET /api/moods
func (h *CatalogHandler) ListMoods(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.catalogService.ListMoods(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListRecipes lists recipes by name
// GET /api/recipes?search=&ingredients=id1,id2&mood=&difficulty=
func (h *CatalogHandler) ListRecipes(c *gin.Context) {
	filter := repository.RecipeFilter{
		Search:     c.Query("search"),
		MoodID:     c.Query("mood"),
		Difficulty: c.Query("difficulty"),
	}
	if filter.MoodID != "" && !requireID(c, "mood", filter.MoodID) {
		return
	}
	if raw := c.Query("ingredients"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id == "" {
				continue
			}
			if !requireID(c, "ingredients", id) {
				return
			}
			filter.IngredientIDs = append(filter.IngredientIDs, id)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.catalogService.ListRecipes(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetRecipe returns one recipe with ingredients and moods
// GET /api/recipes/:id
func (h *CatalogHandler) GetRecipe(c *gin.Context) {
	recipeID := c.Param("id")
	if !requireID(c, "id", recipeID) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.catalogService.GetRecipe(ctx, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe stores a recipe together with its ingredients and moods
// POST /api/recipes
func (h *CatalogHandler) CreateRecipe(c *gin.Context) {
	var req dto.CreateRecipeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.ValidationMessage(err)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.catalogService.CreateRecipe(ctx, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}
