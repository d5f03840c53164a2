package service_test

import (
	"context"
	"testing"

	"bnin/internal/microservices/http-api/models"
	"bnin/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type repos struct {
	catalog repository.CatalogRepository
	favs    repository.FavoriteRepository
	users   repository.UserRepository
	db      *gorm.DB
}

func newRepos(t *testing.T) *repos {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	return &repos{
		catalog: repository.NewCatalogRepository(db),
		favs:    repository.NewFavoriteRepository(db),
		users:   repository.NewUserRepository(db),
		db:      db,
	}
}

func (r *repos) ingredient(t *testing.T, name, category string) models.Ingredient {
	t.Helper()
	ing := models.Ingredient{Name: name, Category: category}
	require.NoError(t, r.catalog.CreateIngredient(context.Background(), &ing))
	return ing
}

func (r *repos) mood(t *testing.T, name string) models.Mood {
	t.Helper()
	m := models.Mood{Name: name}
	require.NoError(t, r.db.Create(&m).Error)
	return m
}

func (r *repos) user(t *testing.T, username string) models.User {
	t.Helper()
	u := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, r.users.Create(context.Background(), &u))
	return u
}

func (r *repos) recipe(t *testing.T, name string, ings ...models.Ingredient) models.Recipe {
	t.Helper()
	rec := models.Recipe{Name: name, Difficulty: models.DifficultyEasy, Servings: 2}
	for _, ing := range ings {
		rec.Ingredients = append(rec.Ingredients, models.RecipeIngredient{IngredientID: ing.ID, Quantity: "1"})
	}
	require.NoError(t, r.catalog.CreateRecipe(context.Background(), &rec))
	return rec
}
