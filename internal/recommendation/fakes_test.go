package recommendation

import (
	"context"
	"sync"
	"time"

	"bnin/internal/microservices/http-api/models"
	"bnin/internal/microservices/http-api/repository"

	"github.com/google/uuid"
)

type fakeCatalog struct {
	recipes []models.Recipe
}

func (f *fakeCatalog) FindRecipesContainingAnyIngredient(ctx context.Context, ids []string) ([]models.Recipe, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Recipe
	for _, r := range f.recipes {
		for _, ri := range r.Ingredients {
			if want[ri.IngredientID] {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindRecipesByMood(ctx context.Context, moodID string) ([]models.Recipe, error) {
	var out []models.Recipe
	for _, r := range f.recipes {
		if _, ok := r.MoodRelevance(moodID); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCatalog) recipe(id string) *models.Recipe {
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			return &f.recipes[i]
		}
	}
	return nil
}

type fakeFeedback struct {
	mu      sync.Mutex
	catalog *fakeCatalog
	logs    []*models.RecommendationLog
	history []models.UserRecipeHistory
}

func (f *fakeFeedback) CreateRecommendationLog(ctx context.Context, log *models.RecommendationLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	now := time.Now()
	log.CreatedAt, log.UpdatedAt = now, now
	cp := *log
	f.logs = append(f.logs, &cp)
	return nil
}

func (f *fakeFeedback) FindRecommendationLog(ctx context.Context, id string) (*models.RecommendationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.logs {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeFeedback) UpdateRecommendationLog(ctx context.Context, id string, accepted bool) (*models.RecommendationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.logs {
		if l.ID == id {
			a := accepted
			l.UserAccepted = &a
			l.UpdatedAt = time.Now()
			cp := *l
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeFeedback) CreateUserHistoryEntry(ctx context.Context, entry *models.UserRecipeHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, *entry)
	return nil
}

func (f *fakeFeedback) CountRecentResolvedFeedback(ctx context.Context, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, l := range f.logs {
		if l.UserAccepted != nil && !l.UpdatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeFeedback) ListResolvedLogs(ctx context.Context) ([]models.RecommendationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.RecommendationLog
	for _, l := range f.logs {
		if l.UserAccepted == nil {
			continue
		}
		cp := *l
		cp.Recipe = f.catalog.recipe(l.RecipeID)
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeFeedback) ListRatedHistory(ctx context.Context) ([]models.UserRecipeHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UserRecipeHistory
	for _, h := range f.history {
		if h.Rating == nil {
			continue
		}
		cp := h
		cp.Recipe = f.catalog.recipe(h.RecipeID)
		out = append(out, cp)
	}
	return out, nil
}

// addResolved stores a log that already carries an outcome.
func (f *fakeFeedback) addResolved(recipeID string, accepted bool, updatedAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := accepted
	f.logs = append(f.logs, &models.RecommendationLog{
		ID:           uuid.New().String(),
		RecipeID:     recipeID,
		UserAccepted: &a,
		CreatedAt:    updatedAt,
		UpdatedAt:    updatedAt,
	})
}

func (f *fakeFeedback) historyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.history)
}

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) FindWithPreferences(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func recipeWith(id, difficulty string, ingredientIDs []string, moods map[string]int) models.Recipe {
	r := models.Recipe{ID: id, Name: id, Difficulty: difficulty}
	for _, ing := range ingredientIDs {
		r.Ingredients = append(r.Ingredients, models.RecipeIngredient{RecipeID: id, IngredientID: ing})
	}
	for moodID, rel := range moods {
		r.Moods = append(r.Moods, models.RecipeMood{RecipeID: id, MoodID: moodID, RelevanceScore: rel})
	}
	return r
}

// constantModel scores every recipe 0.5.
func constantModel(version int64) *Model {
	return &Model{
		Version: version,
		Layers: []Layer{
			{In: FeatureCount, Out: 1, Weights: make([]float64, FeatureCount), Biases: []float64{0}},
			{In: 1, Out: 1, Weights: []float64{0}, Biases: []float64{0}},
		},
	}
}

// featureModel scores sigmoid(weight * feature[idx]).
func featureModel(idx int, weight float64) *Model {
	w := make([]float64, FeatureCount)
	w[idx] = weight
	return &Model{
		Version: 1,
		Layers: []Layer{
			{In: FeatureCount, Out: 1, Weights: w, Biases: []float64{0}},
			{In: 1, Out: 1, Weights: []float64{1}, Biases: []float64{0}},
		},
	}
}

func smallTrainConfig() TrainConfig {
	return TrainConfig{
		Hidden:          []int{8, 4},
		Epochs:          5,
		BatchSize:       8,
		ValidationSplit: 0.2,
		LearningRate:    0.01,
		Seed:            7,
	}
}
