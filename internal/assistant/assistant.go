package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bnin/internal/logger"
	"bnin/internal/microservices/http-api/models"
	"bnin/internal/microservices/http-api/repository"
	"bnin/internal/recommendation"
	"bnin/internal/weather"
)

// Navigation targets understood by the client app.
const (
	DestinationMyFridge     = "myFridge"
	DestinationMoodBite     = "moodBite"
	DestinationRecipeDetail = "recipeDetail"

	ActionNavigate   = "navigate"
	ActionSuggestion = "suggestion"
)

const (
	maxChatRecipes = 3
	historyWindow  = 10
)

type Recommender interface {
	RecommendByIngredients(ctx context.Context, ingredientIDs []string, userID string) (*recommendation.Result, error)
	RecommendByMood(ctx context.Context, moodID, userID string) (*recommendation.Result, error)
}

// Catalog is the catalog lookup surface the assistant needs.
type Catalog interface {
	FindIngredientsByNames(ctx context.Context, names []string) ([]models.Ingredient, error)
	FindMoodByName(ctx context.Context, name string) (*models.Mood, error)
	FindMoodsByNames(ctx context.Context, names []string) ([]models.Mood, error)
	FindRecentRecipesByMoods(ctx context.Context, moodIDs []string, minRelevance, limit int) ([]models.Recipe, error)
}

type Users interface {
	FindWithPreferences(ctx context.Context, id string) (*models.User, error)
}

type History interface {
	FindUserHistory(ctx context.Context, userID string, limit int) ([]models.UserRecipeHistory, error)
}

type WeatherProvider interface {
	Current(ctx context.Context, location string) (*weather.Reading, error)
}

// QueryContext is optional client-supplied context for a chat or greeting.
type QueryContext struct {
	Location    string
	Weather     string
	Temperature *float64
	TimeOfDay   string
	DayOfWeek   *int
}

type Action struct {
	Type        string
	Destination string
	Params      map[string]string
	Label       string
}

// RecipeCard is a recipe as shown inside a chat reply.
type RecipeCard struct {
	ID                 string
	Name               string
	ImageURL           *string
	MissingIngredients *int
}

type Message struct {
	Message string
	Recipes []RecipeCard
	Actions []Action
}

// Assistant answers chat queries and builds greetings. It keeps no
// per-conversation state.
type Assistant struct {
	recommender Recommender
	catalog     Catalog
	users       Users
	history     History
	weather     WeatherProvider
	log         *logger.Logger
	now         func() time.Time
}

// New builds an assistant. weatherProvider may be nil, in which case lookups by
// location are skipped.
func New(recommender Recommender, catalog Catalog, users Users, history History, weatherProvider WeatherProvider, log *logger.Logger) *Assistant {
	return &Assistant{
		recommender: recommender,
		catalog:     catalog,
		users:       users,
		history:     history,
		weather:     weatherProvider,
		log:         log.With("component", "assistant"),
		now:         time.Now,
	}
}

// HandleChatQuery routes the query to an intent handler and returns the reply.
func (a *Assistant) HandleChatQuery(ctx context.Context, userID, query string, qctx QueryContext) (*Message, error) {
	intent := Classify(query)
	a.log.Debug("chat query classified", "intent", intent.String(), "user_id", userID)

	var (
		msg *Message
		err error
	)
	switch intent {
	case IntentIngredient:
		msg, err = a.handleIngredientQuery(ctx, userID, query)
	case IntentMood:
		msg, err = a.handleMoodQuery(ctx, userID, query)
	case IntentTime:
		msg, err = a.handleTimeQuery(ctx, userID, query)
	case IntentWeather:
		msg, err = a.handleWeatherQuery(ctx, userID, query, qctx)
	default:
		msg = unknownReply()
	}
	if errors.Is(err, recommendation.ErrModelUnavailable) {
		a.log.Warn("recommendation model unavailable, degrading reply", "intent", intent.String())
		return degradedReply(), nil
	}
	return msg, err
}

func (a *Assistant) handleIngredientQuery(ctx context.Context, userID, query string) (*Message, error) {
	names := ExtractIngredients(query)
	if len(names) == 0 {
		return &Message{
			Message: "I'd be happy to help you find recipes based on ingredients you have. What ingredients would you like to use?",
			Actions: []Action{navigate(DestinationMyFridge, "Select Ingredients")},
		}, nil
	}

	notFound := &Message{
		Message: fmt.Sprintf("I couldn't find any recipes with %s. Would you like to browse all available ingredients?", strings.Join(names, ", ")),
		Actions: []Action{navigate(DestinationMyFridge, "Browse Ingredients")},
	}

	ingredients, err := a.catalog.FindIngredientsByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("resolve ingredients: %w", err)
	}
	if len(ingredients) == 0 {
		return notFound, nil
	}
	ids := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		ids = append(ids, ing.ID)
	}

	res, err := a.recommender.RecommendByIngredients(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	if len(res.Recipes) == 0 {
		return notFound, nil
	}

	top := topRecipes(res)
	cards := make([]RecipeCard, 0, len(top))
	for _, sr := range top {
		missing := sr.MissingIngredients
		cards = append(cards, RecipeCard{
			ID:                 sr.Recipe.ID,
			Name:               sr.Recipe.Name,
			ImageURL:           sr.Recipe.ImageURL,
			MissingIngredients: &missing,
		})
	}
	return &Message{
		Message: fmt.Sprintf("Great! Here are some recipes you can make with %s:", strings.Join(names, ", ")),
		Recipes: cards,
		Actions: []Action{
			viewRecipe(top[0].Recipe),
			navigate(DestinationMyFridge, "Select Different Ingredients"),
		},
	}, nil
}

func (a *Assistant) handleMoodQuery(ctx context.Context, userID, query string) (*Message, error) {
	mood := ExtractMood(query)
	if mood == "" {
		return &Message{
			Message: "I'd be happy to suggest recipes based on your mood. What are you craving?",
			Actions: []Action{navigate(DestinationMoodBite, "Select Mood")},
		}, nil
	}

	dbMood, err := a.findMood(ctx, mood)
	if err != nil {
		return nil, err
	}
	if dbMood == nil {
		return &Message{
			Message: fmt.Sprintf("I don't have any recipes categorized as %q. Would you like to browse all mood categories?", mood),
			Actions: []Action{navigate(DestinationMoodBite, "Browse Moods")},
		}, nil
	}

	res, err := a.recommender.RecommendByMood(ctx, dbMood.ID, userID)
	if err != nil {
		return nil, err
	}
	if len(res.Recipes) == 0 {
		return &Message{
			Message: fmt.Sprintf("I couldn't find any %s recipes right now. Would you like to browse all mood categories?", mood),
			Actions: []Action{navigate(DestinationMoodBite, "Browse Moods")},
		}, nil
	}

	top := topRecipes(res)
	return &Message{
		Message: fmt.Sprintf("Here are some %s recipes you might enjoy:", mood),
		Recipes: cardsFor(top),
		Actions: []Action{
			viewRecipe(top[0].Recipe),
			navigate(DestinationMoodBite, "Select Different Mood"),
		},
	}, nil
}

func (a *Assistant) handleTimeQuery(ctx context.Context, userID, query string) (*Message, error) {
	meal := MealType(query)

	dbMood, err := a.findMood(ctx, meal)
	if err != nil {
		return nil, err
	}
	if dbMood == nil {
		return &Message{
			Message: fmt.Sprintf("I don't have any recipes categorized as %q. Would you like to browse all recipe categories?", meal),
			Actions: []Action{navigate(DestinationMoodBite, "Browse Categories")},
		}, nil
	}

	res, err := a.recommender.RecommendByMood(ctx, dbMood.ID, userID)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(meal)
	if len(res.Recipes) == 0 {
		return &Message{
			Message: fmt.Sprintf("I couldn't find any %s recipes right now. Would you like to browse all categories?", lower),
			Actions: []Action{navigate(DestinationMoodBite, "Browse Categories")},
		}, nil
	}

	top := topRecipes(res)
	return &Message{
		Message: fmt.Sprintf("Here are some %s ideas for you:", lower),
		Recipes: cardsFor(top),
		Actions: []Action{viewRecipe(top[0].Recipe)},
	}, nil
}

func (a *Assistant) handleWeatherQuery(ctx context.Context, userID, query string, qctx QueryContext) (*Message, error) {
	condition, temperature := a.resolveWeather(ctx, query, qctx)
	label := condition
	if label == "" {
		label = "any"
	}
	moodName := MoodForWeather(condition, temperature)

	dbMood, err := a.findMood(ctx, moodName)
	if err != nil {
		return nil, err
	}
	if dbMood == nil {
		return &Message{
			Message: fmt.Sprintf("I don't have any recipes specifically for %s weather. Would you like to browse all categories?", label),
			Actions: []Action{navigate(DestinationMoodBite, "Browse Categories")},
		}, nil
	}

	res, err := a.recommender.RecommendByMood(ctx, dbMood.ID, userID)
	if err != nil {
		return nil, err
	}
	if len(res.Recipes) == 0 {
		return &Message{
			Message: fmt.Sprintf("I couldn't find any recipes for %s weather right now. Would you like to browse all categories?", label),
			Actions: []Action{navigate(DestinationMoodBite, "Browse Categories")},
		}, nil
	}

	var message string
	switch moodName {
	case "Hot":
		message = "For this cold weather, I recommend these warming recipes:"
	case "Cold":
		message = "To beat the heat, try these refreshing recipes:"
	case "Comfort":
		message = "Perfect comfort food for a rainy day:"
	default:
		message = "Based on the weather, you might enjoy these recipes:"
	}

	top := topRecipes(res)
	return &Message{
		Message: message,
		Recipes: cardsFor(top),
		Actions: []Action{viewRecipe(top[0].Recipe)},
	}, nil
}

// resolveWeather prefers a condition named in the query, then the request
// context, then a live reading for the query's or context's location.
// An empty condition means the weather is unknown.
func (a *Assistant) resolveWeather(ctx context.Context, query string, qctx QueryContext) (string, *float64) {
	if c := ExtractWeatherCondition(query); c != "" {
		return c, nil
	}
	if qctx.Weather != "" || qctx.Temperature != nil {
		return strings.ToLower(qctx.Weather), qctx.Temperature
	}

	location := ExtractLocation(query)
	if location == "" {
		location = qctx.Location
	}
	if reading := a.lookupWeather(ctx, location); reading != nil {
		temp := reading.Temperature
		return reading.Condition, &temp
	}
	return "", nil
}

// lookupWeather returns nil when no provider is set or the lookup fails.
func (a *Assistant) lookupWeather(ctx context.Context, location string) *weather.Reading {
	if a.weather == nil || location == "" {
		return nil
	}
	reading, err := a.weather.Current(ctx, location)
	if err != nil {
		if !errors.Is(err, weather.ErrNotConfigured) {
			a.log.Warn("weather lookup failed", "location", location, "error", err)
		}
		return nil
	}
	return reading
}

// findMood returns nil, nil when no mood has that name.
func (a *Assistant) findMood(ctx context.Context, name string) (*models.Mood, error) {
	mood, err := a.catalog.FindMoodByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find mood %q: %w", name, err)
	}
	return mood, nil
}

func (a *Assistant) findUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" || a.users == nil {
		return nil, nil
	}
	user, err := a.users.FindWithPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func topRecipes(res *recommendation.Result) []recommendation.ScoredRecipe {
	if len(res.Recipes) > maxChatRecipes {
		return res.Recipes[:maxChatRecipes]
	}
	return res.Recipes
}

func cardsFor(recipes []recommendation.ScoredRecipe) []RecipeCard {
	cards := make([]RecipeCard, 0, len(recipes))
	for _, sr := range recipes {
		cards = append(cards, RecipeCard{ID: sr.Recipe.ID, Name: sr.Recipe.Name, ImageURL: sr.Recipe.ImageURL})
	}
	return cards
}

func navigate(destination, label string) Action {
	return Action{Type: ActionNavigate, Destination: destination, Label: label}
}

func viewRecipe(r models.Recipe) Action {
	return Action{
		Type:        ActionNavigate,
		Destination: DestinationRecipeDetail,
		Params:      map[string]string{"recipeId": r.ID},
		Label:       "View " + r.Name,
	}
}

func unknownReply() *Message {
	return &Message{
		Message: "I'm not quite sure what you're looking for. Would you like to browse recipes by ingredients, mood, or get a recommendation?",
		Actions: []Action{
			navigate(DestinationMyFridge, "Browse by Ingredients"),
			navigate(DestinationMoodBite, "Browse by Mood"),
			{Type: ActionSuggestion, Label: "Recommend something for dinner"},
		},
	}
}

func degradedReply() *Message {
	return &Message{
		Message: "I'm still learning your tastes and can't rank recipes just yet. In the meantime, you can browse by ingredients or mood.",
		Actions: []Action{
			navigate(DestinationMyFridge, "Browse by Ingredients"),
			navigate(DestinationMoodBite, "Browse by Mood"),
		},
	}
}
