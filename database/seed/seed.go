package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"bnin/internal/logger"
	"bnin/internal/microservices/http-api/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:embed catalog.json
var defaultCatalog []byte

// Catalog mirrors the JSON seed file. Relations refer to ingredients and
// moods by name so the file stays readable.
type Catalog struct {
	Moods         []MoodEntry          `json:"moods"`
	Ingredients   []IngredientEntry    `json:"ingredients"`
	Compatibility []CompatibilityEntry `json:"compatibility"`
	Recipes       []RecipeEntry        `json:"recipes"`
	Users         []UserEntry          `json:"users"`
}

type MoodEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type IngredientEntry struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url"`
	Description *string `json:"description"`
}

type CompatibilityEntry struct {
	Ingredient     string `json:"ingredient"`
	CompatibleWith string `json:"compatible_with"`
	Score          int    `json:"score"`
}

type RecipeEntry struct {
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	Instructions []string                `json:"instructions"`
	PrepTime     int                     `json:"prep_time"`
	CookTime     int                     `json:"cook_time"`
	Difficulty   string                  `json:"difficulty"`
	Servings     int                     `json:"servings"`
	ImageURL     *string                 `json:"image_url"`
	VideoURL     *string                 `json:"video_url"`
	Ingredients  []RecipeIngredientEntry `json:"ingredients"`
	Moods        []string                `json:"moods"`
}

type RecipeIngredientEntry struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type UserEntry struct {
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	Preferences *PreferenceEntry `json:"preferences"`
}

type PreferenceEntry struct {
	PreferredIngredients []string `json:"preferred_ingredients"`
	DislikedIngredients  []string `json:"disliked_ingredients"`
	Allergies            []string `json:"allergies"`
	DietaryRestrictions  []string `json:"dietary_restrictions"`
	PreferredMoods       []string `json:"preferred_moods"`
}

// Result counts the rows the seeder inserted. Rows that already existed are
// not counted.
type Result struct {
	Moods         int
	Ingredients   int
	Compatibility int
	Recipes       int
	Users         int
}

// relevance given to every recipe/mood tag in the seed file
const defaultRelevance = 8

// Default returns the bundled sample catalog.
func Default() (*Catalog, error) {
	return parse(defaultCatalog)
}

// Load reads a catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &c, nil
}

// Seed inserts the catalog inside one transaction. Entries are matched by
// name, so running it twice leaves the database unchanged.
func Seed(ctx context.Context, db *gorm.DB, c *Catalog, log *logger.Logger) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s := &seeder{tx: tx, log: log, moods: map[string]string{}, ingredients: map[string]string{}}

		var err error
		if res.Moods, err = s.moodsFrom(c.Moods); err != nil {
			return err
		}
		if res.Ingredients, err = s.ingredientsFrom(c.Ingredients); err != nil {
			return err
		}
		if res.Compatibility, err = s.compatibilityFrom(c.Compatibility); err != nil {
			return err
		}
		if res.Recipes, err = s.recipesFrom(c.Recipes); err != nil {
			return err
		}
		if res.Users, err = s.usersFrom(c.Users); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	log.Info("Catalog seeded",
		"moods", res.Moods,
		"ingredients", res.Ingredients,
		"compatibility", res.Compatibility,
		"recipes", res.Recipes,
		"users", res.Users,
	)
	return res, nil
}

type seeder struct {
	tx  *gorm.DB
	log *logger.Logger

	// lowercased name -> id
	moods       map[string]string
	ingredients map[string]string
}

func (s *seeder) moodsFrom(entries []MoodEntry) (int, error) {
	created := 0
	for _, e := range entries {
		mood := models.Mood{Name: e.Name, Description: e.Description}
		inserted, err := s.firstOrCreate(&mood, "LOWER(name) = ?", strings.ToLower(e.Name))
		if err != nil {
			return 0, fmt.Errorf("mood %q: %w", e.Name, err)
		}
		if inserted {
			created++
		}
		s.moods[strings.ToLower(e.Name)] = mood.ID
	}
	return created, nil
}

func (s *seeder) ingredientsFrom(entries []IngredientEntry) (int, error) {
	created := 0
	for _, e := range entries {
		ingredient := models.Ingredient{
			Name:        e.Name,
			Category:    strings.ToLower(e.Category),
			ImageURL:    e.ImageURL,
			Description: e.Description,
		}
		inserted, err := s.firstOrCreate(&ingredient, "LOWER(name) = ?", strings.ToLower(e.Name))
		if err != nil {
			return 0, fmt.Errorf("ingredient %q: %w", e.Name, err)
		}
		if inserted {
			created++
		}
		s.ingredients[strings.ToLower(e.Name)] = ingredient.ID
	}
	return created, nil
}

// compatibilityFrom writes both directions of every pair.
func (s *seeder) compatibilityFrom(entries []CompatibilityEntry) (int, error) {
	created := 0
	for _, e := range entries {
		a, okA := s.ingredients[strings.ToLower(e.Ingredient)]
		b, okB := s.ingredients[strings.ToLower(e.CompatibleWith)]
		if !okA || !okB {
			s.log.Warn("Skipping compatibility with unknown ingredient", "ingredient", e.Ingredient, "compatible_with", e.CompatibleWith)
			continue
		}
		for _, pair := range [][2]string{{a, b}, {b, a}} {
			row := models.IngredientCompatibility{
				IngredientID:       pair[0],
				CompatibleWithID:   pair[1],
				CompatibilityScore: e.Score,
			}
			inserted, err := s.firstOrCreate(&row, "ingredient_id = ? AND compatible_with_id = ?", pair[0], pair[1])
			if err != nil {
				return 0, fmt.Errorf("compatibility %s/%s: %w", e.Ingredient, e.CompatibleWith, err)
			}
			if inserted {
				created++
			}
		}
	}
	return created, nil
}

func (s *seeder) recipesFrom(entries []RecipeEntry) (int, error) {
	created := 0
	for _, e := range entries {
		var count int64
		if err := s.tx.Model(&models.Recipe{}).Where("LOWER(name) = ?", strings.ToLower(e.Name)).Count(&count).Error; err != nil {
			return 0, err
		}
		if count > 0 {
			continue
		}

		servings := e.Servings
		if servings < 1 {
			servings = 1
		}
		recipe := models.Recipe{
			Name:         e.Name,
			Description:  e.Description,
			Instructions: datatypes.JSONSlice[string](e.Instructions),
			PrepTime:     e.PrepTime,
			CookTime:     e.CookTime,
			Difficulty:   e.Difficulty,
			Servings:     servings,
			ImageURL:     e.ImageURL,
			VideoURL:     e.VideoURL,
		}
		for _, ri := range e.Ingredients {
			id, ok := s.ingredients[strings.ToLower(ri.Name)]
			if !ok {
				s.log.Warn("Ingredient not found for recipe", "recipe", e.Name, "ingredient", ri.Name)
				continue
			}
			recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
				IngredientID: id,
				Quantity:     ri.Quantity,
				Unit:         ri.Unit,
			})
		}
		for _, name := range e.Moods {
			id, ok := s.moods[strings.ToLower(name)]
			if !ok {
				s.log.Warn("Mood not found for recipe", "recipe", e.Name, "mood", name)
				continue
			}
			recipe.Moods = append(recipe.Moods, models.RecipeMood{MoodID: id, RelevanceScore: defaultRelevance})
		}

		if err := s.tx.Create(&recipe).Error; err != nil {
			return 0, fmt.Errorf("recipe %q: %w", e.Name, err)
		}
		s.log.Debug("Created recipe", "name", e.Name, "ingredients", len(recipe.Ingredients), "moods", len(recipe.Moods))
		created++
	}
	return created, nil
}

func (s *seeder) usersFrom(entries []UserEntry) (int, error) {
	created := 0
	for _, e := range entries {
		user := models.User{Username: e.Username, Email: e.Email}
		inserted, err := s.firstOrCreate(&user, "username = ?", e.Username)
		if err != nil {
			return 0, fmt.Errorf("user %q: %w", e.Username, err)
		}
		if inserted {
			created++
		}
		if e.Preferences == nil {
			continue
		}

		pref := models.UserPreference{
			UserID:               user.ID,
			PreferredIngredients: s.idsFor(s.ingredients, e.Preferences.PreferredIngredients),
			DislikedIngredients:  s.idsFor(s.ingredients, e.Preferences.DislikedIngredients),
			Allergies:            s.idsFor(s.ingredients, e.Preferences.Allergies),
			DietaryRestrictions:  datatypes.JSONSlice[string](nonNil(e.Preferences.DietaryRestrictions)),
			PreferredMoods:       s.idsFor(s.moods, e.Preferences.PreferredMoods),
		}
		if _, err := s.firstOrCreate(&pref, "user_id = ?", user.ID); err != nil {
			return 0, fmt.Errorf("preferences for %q: %w", e.Username, err)
		}
	}
	return created, nil
}

// firstOrCreate loads the row matching the condition into dest, or inserts
// dest when none exists. It reports whether a row was inserted.
func (s *seeder) firstOrCreate(dest interface{}, query string, args ...interface{}) (bool, error) {
	err := s.tx.Where(query, args...).First(dest).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := s.tx.Create(dest).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *seeder) idsFor(index map[string]string, names []string) datatypes.JSONSlice[string] {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		if id, ok := index[strings.ToLower(name)]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
