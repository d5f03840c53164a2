package recommendation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"bnin/internal/logger"
	"bnin/internal/microservices/http-api/models"
	"bnin/internal/microservices/http-api/repository"
)

var (
	ErrModelUnavailable       = errors.New("recommendation model unavailable")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrInvalidInput           = errors.New("invalid recommendation input")
)

const (
	pathIngredients = "ingredients"
	pathMood        = "mood"
)

// CatalogStore is the read side of the recipe catalog the engine scores against.
type CatalogStore interface {
	FindRecipesContainingAnyIngredient(ctx context.Context, ingredientIDs []string) ([]models.Recipe, error)
	FindRecipesByMood(ctx context.Context, moodID string) ([]models.Recipe, error)
}

// FeedbackStore records scoring outcomes and supplies training rows.
type FeedbackStore interface {
	CreateRecommendationLog(ctx context.Context, log *models.RecommendationLog) error
	FindRecommendationLog(ctx context.Context, id string) (*models.RecommendationLog, error)
	UpdateRecommendationLog(ctx context.Context, id string, accepted bool) (*models.RecommendationLog, error)
	CreateUserHistoryEntry(ctx context.Context, entry *models.UserRecipeHistory) error
	CountRecentResolvedFeedback(ctx context.Context, since time.Time) (int64, error)
	ListResolvedLogs(ctx context.Context) ([]models.RecommendationLog, error)
	ListRatedHistory(ctx context.Context) ([]models.UserRecipeHistory, error)
}

type UserStore interface {
	FindWithPreferences(ctx context.Context, id string) (*models.User, error)
}

// Config tunes retraining. Zero values fall back to DefaultConfig.
type Config struct {
	RetrainThreshold int
	RetrainWindow    time.Duration
	AsyncRetrain     bool
	Train            TrainConfig
}

func DefaultConfig() Config {
	return Config{
		RetrainThreshold: 50,
		RetrainWindow:    7 * 24 * time.Hour,
		AsyncRetrain:     true,
		Train:            DefaultTrainConfig(),
	}
}

// ScoredRecipe is one ranked candidate.
type ScoredRecipe struct {
	Recipe             models.Recipe
	Score              float64
	CoveragePercentage float64
	MatchedIngredients int
	MissingIngredients int
	MoodRelevance      int
}

// Result is a ranked list plus the id of the log row written for its top entry.
// RecommendationID is empty when Recipes is empty.
type Result struct {
	Recipes          []ScoredRecipe
	RecommendationID string
}

// Engine ranks recipes with the current model and retrains it from feedback.
// All methods are safe for concurrent use.
type Engine struct {
	catalog  CatalogStore
	feedback FeedbackStore
	users    UserStore
	store    ModelStore
	cfg      Config
	log      *logger.Logger

	current   atomic.Pointer[Model]
	initMu    sync.Mutex
	retrainMu sync.Mutex
	retrainer *Retrainer
	now       func() time.Time
}

// NewEngine wires the engine. store may be nil, in which case snapshots are
// neither loaded nor saved. With cfg.AsyncRetrain a background retrainer is started;
// call Close to stop it.
func NewEngine(catalog CatalogStore, feedback FeedbackStore, users UserStore, store ModelStore, cfg Config, log *logger.Logger) *Engine {
	def := DefaultConfig()
	if cfg.RetrainThreshold < 1 {
		cfg.RetrainThreshold = def.RetrainThreshold
	}
	if cfg.RetrainWindow <= 0 {
		cfg.RetrainWindow = def.RetrainWindow
	}

	e := &Engine{
		catalog:  catalog,
		feedback: feedback,
		users:    users,
		store:    store,
		cfg:      cfg,
		log:      log.With("component", "recommendation_engine"),
		now:      time.Now,
	}
	if cfg.AsyncRetrain {
		e.retrainer = NewRetrainer(func(ctx context.Context) error {
			_, err := e.Retrain(ctx)
			return err
		}, log)
		e.retrainer.Start()
	}
	return e
}

// Close stops the background retrainer, finishing any queued run.
func (e *Engine) Close() {
	if e.retrainer != nil {
		e.retrainer.Shutdown()
	}
}

// ModelVersion returns the version of the serving model, 0 when none is loaded.
func (e *Engine) ModelVersion() int64 {
	if m := e.current.Load(); m != nil {
		return m.Version
	}
	return 0
}

// SetModel validates m and makes it the serving model.
func (e *Engine) SetModel(m *Model) error {
	if err := m.Validate(); err != nil {
		return err
	}
	e.publish(m)
	return nil
}

// RecommendByIngredients ranks recipes that use at least one of the given ingredients.
func (e *Engine) RecommendByIngredients(ctx context.Context, ingredientIDs []string, userID string) (*Result, error) {
	started := time.Now()
	ids := uniqueNonEmpty(ingredientIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one ingredient id is required", ErrInvalidInput)
	}

	recipes, err := e.catalog.FindRecipesContainingAnyIngredient(ctx, ids)
	if err != nil {
		recordRecommendation(pathIngredients, "error", started)
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if len(recipes) == 0 {
		recordRecommendation(pathIngredients, "empty", started)
		return &Result{Recipes: []ScoredRecipe{}}, nil
	}

	model, err := e.currentModel(ctx)
	if err != nil {
		recordRecommendation(pathIngredients, "unavailable", started)
		return nil, err
	}
	user, err := e.lookupUser(ctx, userID)
	if err != nil {
		recordRecommendation(pathIngredients, "error", started)
		return nil, err
	}

	scored := make([]ScoredRecipe, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		coverage, matched := IngredientCoverage(r, ids)
		scored = append(scored, ScoredRecipe{
			Recipe:             *r,
			Score:              model.Predict(BuildFeatures(user, r, ids, "")),
			CoveragePercentage: coverage,
			MatchedIngredients: matched,
			MissingIngredients: len(r.Ingredients) - matched,
		})
	}
	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].Score != scored[b].Score {
			return scored[a].Score > scored[b].Score
		}
		return scored[a].CoveragePercentage > scored[b].CoveragePercentage
	})

	logID, err := e.logTop(ctx, user, scored[0], ids, "")
	if err != nil {
		recordRecommendation(pathIngredients, "error", started)
		return nil, err
	}
	recordRecommendation(pathIngredients, "ok", started)
	return &Result{Recipes: scored, RecommendationID: logID}, nil
}

// RecommendByMood ranks recipes tagged with the mood.
func (e *Engine) RecommendByMood(ctx context.Context, moodID, userID string) (*Result, error) {
	started := time.Now()
	if moodID == "" {
		return nil, fmt.Errorf("%w: mood id is required", ErrInvalidInput)
	}

	recipes, err := e.catalog.FindRecipesByMood(ctx, moodID)
	if err != nil {
		recordRecommendation(pathMood, "error", started)
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if len(recipes) == 0 {
		recordRecommendation(pathMood, "empty", started)
		return &Result{Recipes: []ScoredRecipe{}}, nil
	}

	model, err := e.currentModel(ctx)
	if err != nil {
		recordRecommendation(pathMood, "unavailable", started)
		return nil, err
	}
	user, err := e.lookupUser(ctx, userID)
	if err != nil {
		recordRecommendation(pathMood, "error", started)
		return nil, err
	}

	scored := make([]ScoredRecipe, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		relevance, _ := r.MoodRelevance(moodID)
		scored = append(scored, ScoredRecipe{
			Recipe:        *r,
			Score:         model.Predict(BuildFeatures(user, r, nil, moodID)),
			MoodRelevance: relevance,
		})
	}
	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].Score != scored[b].Score {
			return scored[a].Score > scored[b].Score
		}
		return scored[a].MoodRelevance > scored[b].MoodRelevance
	})

	logID, err := e.logTop(ctx, user, scored[0], nil, moodID)
	if err != nil {
		recordRecommendation(pathMood, "error", started)
		return nil, err
	}
	recordRecommendation(pathMood, "ok", started)
	return &Result{Recipes: scored, RecommendationID: logID}, nil
}

// UpdateModel records the user's verdict on a logged recommendation. An
// accepted recommendation with a rating also lands in the user's history, once.
// When enough feedback has accumulated inside the retrain window a retrain runs.
func (e *Engine) UpdateModel(ctx context.Context, recommendationID string, accepted bool, rating *int) (*models.RecommendationLog, error) {
	if recommendationID == "" {
		return nil, fmt.Errorf("%w: recommendation id is required", ErrInvalidInput)
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	existing, err := e.feedback.FindRecommendationLog(ctx, recommendationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, fmt.Errorf("load recommendation: %w", err)
	}
	wasAccepted := existing.UserAccepted != nil && *existing.UserAccepted

	updated, err := e.feedback.UpdateRecommendationLog(ctx, recommendationID, accepted)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, fmt.Errorf("update recommendation: %w", err)
	}
	FeedbackTotal.WithLabelValues(strconv.FormatBool(accepted)).Inc()

	if accepted && rating != nil && existing.UserID != nil && !wasAccepted {
		r := *rating
		entry := &models.UserRecipeHistory{
			UserID:    *existing.UserID,
			RecipeID:  existing.RecipeID,
			Rating:    &r,
			Completed: true,
		}
		if err := e.feedback.CreateUserHistoryEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("record history: %w", err)
		}
	}

	if err := e.checkRetrain(ctx); err != nil {
		e.log.Warn("retrain check failed", "error", err)
	}
	return updated, nil
}

// Retrain builds a new model from all stored feedback and swaps it in.
func (e *Engine) Retrain(ctx context.Context) (*Model, error) {
	e.retrainMu.Lock()
	defer e.retrainMu.Unlock()
	// held through publish so a first-use snapshot load cannot replace the new model
	e.initMu.Lock()
	defer e.initMu.Unlock()

	started := time.Now()
	m, err := e.train(ctx, e.latestVersion(ctx)+1)
	if err != nil {
		ModelRetrainsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	e.publish(m)
	e.persist(ctx, m)

	ModelRetrainsTotal.WithLabelValues("ok").Inc()
	ModelRetrainDuration.Observe(time.Since(started).Seconds())
	e.log.Info("model retrained", "version", m.Version, "samples", m.Samples, "validation_loss", m.ValidationLoss)
	return m, nil
}

// TrainingSamples turns resolved logs and rated history into labelled samples.
func (e *Engine) TrainingSamples(ctx context.Context) ([]Sample, error) {
	logs, err := e.feedback.ListResolvedLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load resolved logs: %w", err)
	}
	history, err := e.feedback.ListRatedHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rated history: %w", err)
	}

	users := make(map[string]*models.User)
	userFor := func(id *string) (*models.User, error) {
		if id == nil || *id == "" {
			return nil, nil
		}
		if u, ok := users[*id]; ok {
			return u, nil
		}
		u, err := e.lookupUser(ctx, *id)
		if err != nil {
			return nil, err
		}
		users[*id] = u
		return u, nil
	}

	samples := make([]Sample, 0, len(logs)+len(history))
	for i := range logs {
		l := &logs[i]
		if l.Recipe == nil || l.UserAccepted == nil {
			continue
		}
		u, err := userFor(l.UserID)
		if err != nil {
			return nil, err
		}
		mood := ""
		if l.InputMoodID != nil {
			mood = *l.InputMoodID
		}
		samples = append(samples, Sample{
			Features: BuildFeatures(u, l.Recipe, l.InputIngredients, mood),
			Label:    boolValue(*l.UserAccepted),
		})
	}
	for i := range history {
		h := &history[i]
		if h.Recipe == nil || h.Rating == nil {
			continue
		}
		u, err := userFor(&h.UserID)
		if err != nil {
			return nil, err
		}
		samples = append(samples, Sample{
			Features: BuildFeatures(u, h.Recipe, nil, ""),
			Label:    float64(*h.Rating) / 5,
		})
	}
	return samples, nil
}

// currentModel returns the serving model, loading or training one on first use.
// A failed initialization is retried on the next call.
func (e *Engine) currentModel(ctx context.Context) (*Model, error) {
	if m := e.current.Load(); m != nil {
		return m, nil
	}

	e.initMu.Lock()
	defer e.initMu.Unlock()
	if m := e.current.Load(); m != nil {
		return m, nil
	}

	if e.store != nil {
		m, err := e.store.Load(ctx)
		switch {
		case err == nil:
			e.publish(m)
			e.log.Info("model snapshot loaded", "version", m.Version)
			return m, nil
		case errors.Is(err, ErrSnapshotNotFound):
			e.log.Info("no model snapshot, training from feedback")
		default:
			e.log.Warn("model snapshot unusable, training from feedback", "error", err)
		}
	}

	m, err := e.train(ctx, 1)
	if err != nil {
		return nil, err
	}
	e.publish(m)
	e.persist(ctx, m)
	return m, nil
}

// latestVersion is the newer of the serving and the persisted model versions.
// Caller holds initMu.
func (e *Engine) latestVersion(ctx context.Context) int64 {
	version := e.ModelVersion()
	if e.store == nil {
		return version
	}
	stored, err := e.store.Load(ctx)
	switch {
	case err == nil:
		if stored.Version > version {
			version = stored.Version
		}
	case !errors.Is(err, ErrSnapshotNotFound):
		e.log.Warn("model snapshot unusable, versioning from serving model", "error", err)
	}
	return version
}

func (e *Engine) train(ctx context.Context, version int64) (*Model, error) {
	samples, err := e.TrainingSamples(ctx)
	if err != nil {
		return nil, err
	}
	cfg := e.cfg.Train
	if cfg.OnEpoch == nil {
		cfg.OnEpoch = func(epoch int, trainLoss, validationLoss float64) {
			e.log.Debug("training epoch", "epoch", epoch, "loss", trainLoss, "val_loss", validationLoss)
		}
	}
	m, err := Train(samples, cfg)
	if err != nil {
		if errors.Is(err, ErrNoTrainingData) {
			return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		return nil, fmt.Errorf("train model: %w", err)
	}
	m.Version = version
	return m, nil
}

func (e *Engine) publish(m *Model) {
	e.current.Store(m)
	ModelVersionGauge.Set(float64(m.Version))
}

// persist saves the snapshot; a failed save keeps the in-memory model serving.
func (e *Engine) persist(ctx context.Context, m *Model) {
	if e.store == nil {
		return
	}
	if err := e.store.Save(ctx, m); err != nil {
		e.log.Warn("failed to save model snapshot", "version", m.Version, "error", err)
	}
}

func (e *Engine) checkRetrain(ctx context.Context) error {
	count, err := e.feedback.CountRecentResolvedFeedback(ctx, e.now().Add(-e.cfg.RetrainWindow))
	if err != nil {
		return err
	}
	if count < int64(e.cfg.RetrainThreshold) {
		return nil
	}

	e.log.Info("retrain threshold reached", "resolved_feedback", count, "threshold", e.cfg.RetrainThreshold)
	if e.retrainer != nil {
		e.retrainer.Trigger()
		return nil
	}
	_, err = e.Retrain(ctx)
	return err
}

func (e *Engine) lookupUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" || e.users == nil {
		return nil, nil
	}
	u, err := e.users.FindWithPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func (e *Engine) logTop(ctx context.Context, user *models.User, top ScoredRecipe, ingredientIDs []string, moodID string) (string, error) {
	entry := &models.RecommendationLog{
		RecipeID:         top.Recipe.ID,
		InputIngredients: append([]string{}, ingredientIDs...),
		ConfidenceScore:  top.Score,
	}
	if user != nil {
		id := user.ID
		entry.UserID = &id
	}
	if moodID != "" {
		entry.InputMoodID = &moodID
	}
	if err := e.feedback.CreateRecommendationLog(ctx, entry); err != nil {
		return "", fmt.Errorf("log recommendation: %w", err)
	}
	return entry.ID, nil
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
