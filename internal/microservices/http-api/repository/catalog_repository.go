package repository

import (
	"context"
	"fmt"
	"strings"

	"bnin/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// RecipeFilter narrows ListRecipes. Zero values mean "no filter".
type RecipeFilter struct {
	Search        string
	IngredientIDs []string
	MoodID        string
	Difficulty    string
}

type CatalogRepository interface {
	ListIngredients(ctx context.Context, category string) ([]models.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error
	FindIngredientByID(ctx context.Context, id string) (*models.Ingredient, error)
	FindIngredientsByNames(ctx context.Context, names []string) ([]models.Ingredient, error)

	ListMoods(ctx context.Context) ([]models.Mood, error)
	FindMoodByID(ctx context.Context, id string) (*models.Mood, error)
	FindMoodByName(ctx context.Context, name string) (*models.Mood, error)
	FindMoodsByNames(ctx context.Context, names []string) ([]models.Mood, error)

	ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	FindRecipeByID(ctx context.Context, id string) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	FindRecipesContainingAnyIngredient(ctx context.Context, ingredientIDs []string) ([]models.Recipe, error)
	FindRecipesByMood(ctx context.Context, moodID string) ([]models.Recipe, error)
	FindRecentRecipesByMoods(ctx context.Context, moodIDs []string, minRelevance, limit int) ([]models.Recipe, error)

	CreateCompatibility(ctx context.Context, ingredientID, compatibleWithID string, score int) error
	ListCompatibility(ctx context.Context, ingredientID string) ([]models.IngredientCompatibility, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListIngredients(ctx context.Context, category string) ([]models.Ingredient, error) {
	var list []models.Ingredient
	q := r.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return list, nil
}

func (r *catalogRepository) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}

func (r *catalogRepository) FindIngredientByID(ctx context.Context, id string) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &ing, nil
}

// FindIngredientsByNames matches names case-insensitively.
func (r *catalogRepository) FindIngredientsByNames(ctx context.Context, names []string) ([]models.Ingredient, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var list []models.Ingredient
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) IN ?", lowerAll(names)).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find ingredients by names: %w", err)
	}
	return list, nil
}

func (r *catalogRepository) ListMoods(ctx context.Context) ([]models.Mood, error) {
	var list []models.Mood
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	return list, nil
}

func (r *catalogRepository) FindMoodByID(ctx context.Context, id string) (*models.Mood, error) {
	var mood models.Mood
	if err := r.db.WithContext(ctx).First(&mood, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &mood, nil
}

func (r *catalogRepository) FindMoodByName(ctx context.Context, name string) (*models.Mood, error) {
	var mood models.Mood
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&mood).Error; err != nil {
		return nil, translate(err)
	}
	return &mood, nil
}

// FindMoodsByNames returns matching moods in the order the names were given.
func (r *catalogRepository) FindMoodsByNames(ctx context.Context, names []string) ([]models.Mood, error) {
	if len(names) == 0 {
		return nil, nil
	}
	lowered := lowerAll(names)
	var found []models.Mood
	if err := r.db.WithContext(ctx).Where("LOWER(name) IN ?", lowered).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("find moods by names: %w", err)
	}

	byName := make(map[string]models.Mood, len(found))
	for _, m := range found {
		byName[strings.ToLower(m.Name)] = m
	}
	ordered := make([]models.Mood, 0, len(found))
	seen := make(map[string]bool, len(found))
	for _, n := range lowered {
		if m, ok := byName[n]; ok && !seen[m.ID] {
			seen[m.ID] = true
			ordered = append(ordered, m)
		}
	}
	return ordered, nil
}

func (r *catalogRepository) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	q := r.withRecipeRelations(ctx)

	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Where("id IN (?)", r.db.Model(&models.RecipeIngredient{}).
			Select("recipe_id").
			Where("ingredient_id IN ?", filter.IngredientIDs))
	}
	if filter.MoodID != "" {
		q = q.Where("id IN (?)", r.db.Model(&models.RecipeMood{}).
			Select("recipe_id").
			Where("mood_id = ?", filter.MoodID))
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}

	var list []models.Recipe
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return list, nil
}

func (r *catalogRepository) FindRecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.withRecipeRelations(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// CreateRecipe inserts the recipe together with its ingredient and mood rows.
func (r *catalogRepository) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

// FindRecipesContainingAnyIngredient returns recipes using at least one of the
// ingredients, oldest first so repeated calls see a stable discovery order.
func (r *catalogRepository) FindRecipesContainingAnyIngredient(ctx context.Context, ingredientIDs []string) ([]models.Recipe, error) {
	if len(ingredientIDs) == 0 {
		return nil, nil
	}
	var list []models.Recipe
	if err := r.withRecipeRelations(ctx).
		Where("id IN (?)", r.db.Model(&models.RecipeIngredient{}).
			Select("recipe_id").
			Where("ingredient_id IN ?", ingredientIDs)).
		Order("created_at ASC").Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find recipes by ingredients: %w", err)
	}
	return list, nil
}

func (r *catalogRepository) FindRecipesByMood(ctx context.Context, moodID string) ([]models.Recipe, error) {
	var list []models.Recipe
	if err := r.withRecipeRelations(ctx).
		Where("id IN (?)", r.db.Model(&models.RecipeMood{}).
			Select("recipe_id").
			Where("mood_id = ?", moodID)).
		Order("created_at ASC").Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find recipes by mood: %w", err)
	}
	return list, nil
}

// FindRecentRecipesByMoods returns the newest recipes tagged with any of the
// moods at or above minRelevance.
func (r *catalogRepository) FindRecentRecipesByMoods(ctx context.Context, moodIDs []string, minRelevance, limit int) ([]models.Recipe, error) {
	if len(moodIDs) == 0 {
		return nil, nil
	}
	q := r.withRecipeRelations(ctx).
		Where("id IN (?)", r.db.Model(&models.RecipeMood{}).
			Select("recipe_id").
			Where("mood_id IN ? AND relevance_score >= ?", moodIDs, minRelevance)).
		Order("created_at DESC").Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.Recipe
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find recent recipes by moods: %w", err)
	}
	return list, nil
}

// CreateCompatibility stores the pairing in both directions atomically.
func (r *catalogRepository) CreateCompatibility(ctx context.Context, ingredientID, compatibleWithID string, score int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.IngredientCompatibility{}).
			Where("(ingredient_id = ? AND compatible_with_id = ?) OR (ingredient_id = ? AND compatible_with_id = ?)",
				ingredientID, compatibleWithID, compatibleWithID, ingredientID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check compatibility: %w", err)
		}
		if count > 0 {
			return ErrAlreadyExists
		}

		pair := []models.IngredientCompatibility{
			{IngredientID: ingredientID, CompatibleWithID: compatibleWithID, CompatibilityScore: score},
			{IngredientID: compatibleWithID, CompatibleWithID: ingredientID, CompatibilityScore: score},
		}
		if err := tx.Create(&pair).Error; err != nil {
			return fmt.Errorf("create compatibility: %w", err)
		}
		return nil
	})
}

func (r *catalogRepository) ListCompatibility(ctx context.Context, ingredientID string) ([]models.IngredientCompatibility, error) {
	var list []models.IngredientCompatibility
	if err := r.db.WithContext(ctx).
		Preload("CompatibleWith").
		Where("ingredient_id = ?", ingredientID).
		Order("compatibility_score DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list compatibility: %w", err)
	}
	return list, nil
}

func (r *catalogRepository) withRecipeRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Preload("Moods.Mood")
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
