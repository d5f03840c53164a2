package repository_test

import (
	"context"
	"testing"
	"time"

	"bnin/internal/microservices/http-api/models"
	"bnin/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type RepositorySuite struct {
	suite.Suite
	db       *gorm.DB
	ctx      context.Context
	catalog  repository.CatalogRepository
	feedback repository.FeedbackRepository
	users    repository.UserRepository
	favs     repository.FavoriteRepository

	chicken, garlic, rice, tomato models.Ingredient
	comfort, spicy                models.Mood
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(db.AutoMigrate(models.AllModels()...))

	s.db = db
	s.ctx = context.Background()
	s.catalog = repository.NewCatalogRepository(db)
	s.feedback = repository.NewFeedbackRepository(db)
	s.users = repository.NewUserRepository(db)
	s.favs = repository.NewFavoriteRepository(db)

	s.chicken = s.ingredient("Chicken", models.CategoryProtein)
	s.garlic = s.ingredient("Garlic", models.CategoryVegetable)
	s.rice = s.ingredient("Rice", models.CategoryGrain)
	s.tomato = s.ingredient("Tomato", models.CategoryVegetable)
	s.comfort = s.mood("Comfort")
	s.spicy = s.mood("Spicy")
}

func (s *RepositorySuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *RepositorySuite) ingredient(name, category string) models.Ingredient {
	ing := models.Ingredient{Name: name, Category: category}
	s.Require().NoError(s.catalog.CreateIngredient(s.ctx, &ing))
	return ing
}

func (s *RepositorySuite) mood(name string) models.Mood {
	m := models.Mood{Name: name}
	s.Require().NoError(s.db.Create(&m).Error)
	return m
}

func (s *RepositorySuite) recipe(name string, createdAt time.Time, ings []models.Ingredient, moods map[string]int) models.Recipe {
	r := models.Recipe{Name: name, Difficulty: models.DifficultyEasy, CreatedAt: createdAt}
	for _, ing := range ings {
		r.Ingredients = append(r.Ingredients, models.RecipeIngredient{IngredientID: ing.ID, Quantity: "1"})
	}
	for moodID, rel := range moods {
		r.Moods = append(r.Moods, models.RecipeMood{MoodID: moodID, RelevanceScore: rel})
	}
	s.Require().NoError(s.catalog.CreateRecipe(s.ctx, &r))
	return r
}

func (s *RepositorySuite) TestListIngredientsFiltersByCategory() {
	veg, err := s.catalog.ListIngredients(s.ctx, models.CategoryVegetable)
	s.Require().NoError(err)
	s.Require().Len(veg, 2)
	s.Equal("Garlic", veg[0].Name)
	s.Equal("Tomato", veg[1].Name)

	all, err := s.catalog.ListIngredients(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 4)
}

func (s *RepositorySuite) TestFindByNamesIsCaseInsensitive() {
	ings, err := s.catalog.FindIngredientsByNames(s.ctx, []string{"chicken", "GARLIC", "kale"})
	s.Require().NoError(err)
	s.Len(ings, 2)

	mood, err := s.catalog.FindMoodByName(s.ctx, "comfort")
	s.Require().NoError(err)
	s.Equal(s.comfort.ID, mood.ID)

	_, err = s.catalog.FindMoodByName(s.ctx, "Sleepy")
	s.ErrorIs(err, repository.ErrNotFound)

	moods, err := s.catalog.FindMoodsByNames(s.ctx, []string{"spicy", "unknown", "comfort"})
	s.Require().NoError(err)
	s.Require().Len(moods, 2)
	s.Equal("Spicy", moods[0].Name)
	s.Equal("Comfort", moods[1].Name)
}

func (s *RepositorySuite) TestFindRecipesContainingAnyIngredient() {
	base := time.Now().Add(-time.Hour)
	first := s.recipe("Garlic Chicken", base, []models.Ingredient{s.chicken, s.garlic, s.rice}, nil)
	second := s.recipe("Tomato Rice", base.Add(time.Minute), []models.Ingredient{s.tomato, s.rice}, nil)
	s.recipe("Plain Tomato", base.Add(2*time.Minute), []models.Ingredient{s.tomato}, nil)

	list, err := s.catalog.FindRecipesContainingAnyIngredient(s.ctx, []string{s.chicken.ID, s.rice.ID})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(first.ID, list[0].ID)
	s.Equal(second.ID, list[1].ID)
	s.Len(list[0].Ingredients, 3)
	s.NotNil(list[0].Ingredients[0].Ingredient)

	none, err := s.catalog.FindRecipesContainingAnyIngredient(s.ctx, nil)
	s.NoError(err)
	s.Empty(none)
}

func (s *RepositorySuite) TestRecipesByMood() {
	base := time.Now().Add(-time.Hour)
	older := s.recipe("Stew", base, nil, map[string]int{s.comfort.ID: 9})
	newer := s.recipe("Soup", base.Add(time.Minute), nil, map[string]int{s.comfort.ID: 6, s.spicy.ID: 8})

	list, err := s.catalog.FindRecipesByMood(s.ctx, s.comfort.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(older.ID, list[0].ID)

	rel, ok := list[1].MoodRelevance(s.comfort.ID)
	s.True(ok)
	s.Equal(6, rel)

	recent, err := s.catalog.FindRecentRecipesByMoods(s.ctx, []string{s.comfort.ID, s.spicy.ID}, 7, 3)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal(newer.ID, recent[0].ID)

	highOnly, err := s.catalog.FindRecentRecipesByMoods(s.ctx, []string{s.comfort.ID}, 7, 3)
	s.Require().NoError(err)
	s.Require().Len(highOnly, 1)
	s.Equal(older.ID, highOnly[0].ID)
}

func (s *RepositorySuite) TestListRecipesFilters() {
	now := time.Now()
	s.recipe("Spicy Chicken", now, []models.Ingredient{s.chicken}, map[string]int{s.spicy.ID: 9})
	s.recipe("Garlic Bread", now, []models.Ingredient{s.garlic}, nil)

	bySearch, err := s.catalog.ListRecipes(s.ctx, repository.RecipeFilter{Search: "chick"})
	s.Require().NoError(err)
	s.Require().Len(bySearch, 1)
	s.Equal("Spicy Chicken", bySearch[0].Name)

	byIngredient, err := s.catalog.ListRecipes(s.ctx, repository.RecipeFilter{IngredientIDs: []string{s.garlic.ID}})
	s.Require().NoError(err)
	s.Require().Len(byIngredient, 1)
	s.Equal("Garlic Bread", byIngredient[0].Name)

	byMood, err := s.catalog.ListRecipes(s.ctx, repository.RecipeFilter{MoodID: s.spicy.ID})
	s.Require().NoError(err)
	s.Len(byMood, 1)

	all, err := s.catalog.ListRecipes(s.ctx, repository.RecipeFilter{Difficulty: models.DifficultyEasy})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Garlic Bread", all[0].Name)
}

func (s *RepositorySuite) TestCompatibilityIsSymmetric() {
	s.Require().NoError(s.catalog.CreateCompatibility(s.ctx, s.chicken.ID, s.garlic.ID, 10))

	forward, err := s.catalog.ListCompatibility(s.ctx, s.chicken.ID)
	s.Require().NoError(err)
	s.Require().Len(forward, 1)
	s.Equal(s.garlic.ID, forward[0].CompatibleWithID)
	s.Equal(10, forward[0].CompatibilityScore)

	backward, err := s.catalog.ListCompatibility(s.ctx, s.garlic.ID)
	s.Require().NoError(err)
	s.Require().Len(backward, 1)
	s.Equal(s.chicken.ID, backward[0].CompatibleWithID)

	err = s.catalog.CreateCompatibility(s.ctx, s.garlic.ID, s.chicken.ID, 1)
	s.ErrorIs(err, repository.ErrAlreadyExists)
}

func (s *RepositorySuite) TestRecommendationLogLifecycle() {
	r := s.recipe("Garlic Chicken", time.Now(), []models.Ingredient{s.chicken}, nil)
	log := &models.RecommendationLog{RecipeID: r.ID, InputIngredients: []string{s.chicken.ID}, ConfidenceScore: 0.8}
	s.Require().NoError(s.feedback.CreateRecommendationLog(s.ctx, log))
	s.NotEmpty(log.ID)

	count, err := s.feedback.CountRecentResolvedFeedback(s.ctx, time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	s.Zero(count)

	updated, err := s.feedback.UpdateRecommendationLog(s.ctx, log.ID, true)
	s.Require().NoError(err)
	s.Require().NotNil(updated.UserAccepted)
	s.True(*updated.UserAccepted)
	s.Equal([]string{s.chicken.ID}, []string(updated.InputIngredients))

	count, err = s.feedback.CountRecentResolvedFeedback(s.ctx, time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	s.EqualValues(1, count)

	count, err = s.feedback.CountRecentResolvedFeedback(s.ctx, time.Now().Add(time.Hour))
	s.Require().NoError(err)
	s.Zero(count)

	resolved, err := s.feedback.ListResolvedLogs(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(resolved, 1)
	s.Require().NotNil(resolved[0].Recipe)
	s.Len(resolved[0].Recipe.Ingredients, 1)

	_, err = s.feedback.UpdateRecommendationLog(s.ctx, "missing", false)
	s.ErrorIs(err, repository.ErrNotFound)
	_, err = s.feedback.FindRecommendationLog(s.ctx, "missing")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *RepositorySuite) TestUserHistoryNewestFirst() {
	user := &models.User{Username: "cook", Email: "cook@example.com", Password: "x"}
	s.Require().NoError(s.users.Create(s.ctx, user))
	r := s.recipe("Stew", time.Now(), []models.Ingredient{s.rice}, map[string]int{s.comfort.ID: 8})

	rating := 5
	old := &models.UserRecipeHistory{UserID: user.ID, RecipeID: r.ID, ViewedAt: time.Now().Add(-time.Hour)}
	recent := &models.UserRecipeHistory{UserID: user.ID, RecipeID: r.ID, Rating: &rating, Completed: true}
	s.Require().NoError(s.feedback.CreateUserHistoryEntry(s.ctx, old))
	s.Require().NoError(s.feedback.CreateUserHistoryEntry(s.ctx, recent))

	history, err := s.feedback.FindUserHistory(s.ctx, user.ID, 10)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(recent.ID, history[0].ID)
	s.Require().NotNil(history[0].Recipe)
	s.Len(history[0].Recipe.Moods, 1)

	rated, err := s.feedback.ListRatedHistory(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rated, 1)
	s.Equal(5, *rated[0].Rating)
}

func (s *RepositorySuite) TestPreferencesUpsert() {
	user := &models.User{Username: "cook", Email: "cook@example.com", Password: "x"}
	s.Require().NoError(s.users.Create(s.ctx, user))

	_, err := s.users.GetPreferences(s.ctx, user.ID)
	s.ErrorIs(err, repository.ErrNotFound)

	s.Require().NoError(s.users.UpsertPreferences(s.ctx, &models.UserPreference{
		UserID:               user.ID,
		PreferredIngredients: []string{s.chicken.ID},
	}))
	s.Require().NoError(s.users.UpsertPreferences(s.ctx, &models.UserPreference{
		UserID:         user.ID,
		PreferredMoods: []string{s.comfort.ID},
		Allergies:      []string{s.garlic.ID},
	}))

	loaded, err := s.users.FindWithPreferences(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(loaded.Preferences)
	s.Empty(loaded.Preferences.PreferredIngredients)
	s.Equal([]string{s.comfort.ID}, []string(loaded.Preferences.PreferredMoods))
	s.Equal([]string{s.garlic.ID}, []string(loaded.Preferences.Allergies))

	_, err = s.users.FindWithPreferences(s.ctx, "missing")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *RepositorySuite) TestFavoriteToggleMaintainsCount() {
	user := &models.User{Username: "cook", Email: "cook@example.com", Password: "x"}
	s.Require().NoError(s.users.Create(s.ctx, user))
	r := s.recipe("Stew", time.Now(), nil, nil)

	on, err := s.favs.Toggle(s.ctx, user.ID, r.ID)
	s.Require().NoError(err)
	s.True(on)

	loaded, err := s.catalog.FindRecipeByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(1, loaded.FavoriteCount)

	list, err := s.favs.List(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(r.ID, list[0].RecipeID)

	off, err := s.favs.Toggle(s.ctx, user.ID, r.ID)
	s.Require().NoError(err)
	s.False(off)

	loaded, err = s.catalog.FindRecipeByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(0, loaded.FavoriteCount)

	exists, err := s.favs.Exists(s.ctx, user.ID, r.ID)
	s.Require().NoError(err)
	s.False(exists)
}
