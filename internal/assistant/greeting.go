package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bnin/internal/microservices/http-api/models"
	"bnin/internal/recommendation"
)

const (
	maxSuggestions        = 3
	weatherRecipesPerMood = 2
	weatherMinRelevance   = 7
)

// Suggestion is one recipe offered alongside a greeting.
type Suggestion struct {
	ID       string
	Name     string
	Message  string
	ImageURL *string
}

type Greeting struct {
	Greeting          string
	Suggestions       []Suggestion
	SpecialSuggestion string
}

var weatherMoods = map[string][]string{
	"sunny":  {"refreshing", "light", "cold"},
	"rainy":  {"comfort", "hot", "savory"},
	"cloudy": {"comfort", "savory"},
	"snowy":  {"hot", "comfort", "sweet"},
	"stormy": {"comfort", "savory", "hot"},
	"windy":  {"hot", "savory"},
	"foggy":  {"hot", "spicy", "comfort"},
}

var timeCategories = map[string][]string{
	"morning":   {"breakfast", "brunch", "quick"},
	"afternoon": {"lunch", "salad", "sandwich", "quick"},
	"evening":   {"dinner", "main course", "family meal"},
	"night":     {"snack", "dessert", "light"},
}

var personalPhrases = []string{
	"Based on your favorites, you might love this %s!",
	"You've enjoyed similar recipes, try this %s!",
	"This %s matches your taste preferences!",
	"We think you'll really enjoy this %s!",
	"Specially selected for you: %s",
}

// Greeting builds the contextual welcome message with up to three suggestions.
func (a *Assistant) Greeting(ctx context.Context, userID string, qctx QueryContext) (*Greeting, error) {
	now := a.now()

	user, err := a.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	name := "there"
	if user != nil && user.Username != "" {
		name = user.Username
	}

	timeOfDay := qctx.TimeOfDay
	if timeOfDay == "" {
		timeOfDay = TimeOfDay(now)
	}
	day := int(now.Weekday())
	if qctx.DayOfWeek != nil {
		day = *qctx.DayOfWeek
	}

	condition, temperature := strings.ToLower(qctx.Weather), qctx.Temperature
	if condition == "" && temperature == nil {
		if reading := a.lookupWeather(ctx, qctx.Location); reading != nil {
			t := reading.Temperature
			condition, temperature = reading.Condition, &t
		}
	}

	var suggestions []Suggestion
	if condition != "" && temperature != nil {
		suggestions, err = a.suggestByWeather(ctx, condition, *temperature)
	} else {
		suggestions, err = a.suggestByTimeOfDay(ctx, timeOfDay)
	}
	if err != nil {
		return nil, err
	}

	if userID != "" {
		personal, err := a.personalizedSuggestions(ctx, userID, user)
		switch {
		case errors.Is(err, recommendation.ErrModelUnavailable):
			a.log.Warn("skipping personalized suggestions, model unavailable", "user_id", userID)
		case err != nil:
			return nil, err
		case len(personal) > 0:
			suggestions = mergeSuggestions(personal, suggestions)
		}
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	if suggestions == nil {
		suggestions = []Suggestion{}
	}

	g := &Greeting{
		Greeting:    greetingLine(timeOfDay, name),
		Suggestions: suggestions,
	}
	switch day {
	case int(time.Friday):
		g.SpecialSuggestion = "It's Friday! How about something festive?"
	case int(time.Saturday), int(time.Sunday):
		g.SpecialSuggestion = "Weekend cooking time! Try something new?"
	}
	return g, nil
}

// TimeOfDay buckets a clock reading: morning 5-12, afternoon 12-17,
// evening 17-22, night otherwise.
func TimeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 22:
		return "evening"
	default:
		return "night"
	}
}

func greetingLine(timeOfDay, name string) string {
	switch timeOfDay {
	case "morning":
		return fmt.Sprintf("Good morning, %s! Ready for breakfast?", name)
	case "afternoon":
		return fmt.Sprintf("Good afternoon, %s! Need some lunch ideas?", name)
	case "evening":
		return fmt.Sprintf("Good evening, %s! Thinking about dinner?", name)
	case "night":
		return fmt.Sprintf("Hello %s! Looking for a late night snack?", name)
	default:
		return fmt.Sprintf("Hello %s! What are you craving today?", name)
	}
}

// WeatherMoodNames lists the capitalized mood names suited to the weather,
// condition moods first, without duplicates.
func WeatherMoodNames(condition string, temperature float64) []string {
	var tempMoods []string
	switch {
	case temperature < 5:
		tempMoods = []string{"hot", "comfort", "soup"}
	case temperature < 15:
		tempMoods = []string{"warm", "comfort"}
	case temperature < 25:
		tempMoods = []string{"balanced", "refreshing"}
	case temperature < 32:
		tempMoods = []string{"cold", "refreshing", "light"}
	default:
		tempMoods = []string{"cold", "hydrating", "light"}
	}

	combined := append(append([]string{}, weatherMoods[strings.ToLower(condition)]...), tempMoods...)
	seen := make(map[string]bool, len(combined))
	names := make([]string, 0, len(combined))
	for _, m := range combined {
		if seen[m] {
			continue
		}
		seen[m] = true
		names = append(names, capitalize(m))
	}
	return names
}

func (a *Assistant) suggestByWeather(ctx context.Context, condition string, temperature float64) ([]Suggestion, error) {
	moods, err := a.catalog.FindMoodsByNames(ctx, WeatherMoodNames(condition, temperature))
	if err != nil {
		return nil, fmt.Errorf("find weather moods: %w", err)
	}

	suggestions := make([]Suggestion, 0, maxSuggestions)
	seen := make(map[string]bool)
	for _, mood := range moods {
		if len(suggestions) >= maxSuggestions {
			break
		}
		recipes, err := a.catalog.FindRecentRecipesByMoods(ctx, []string{mood.ID}, weatherMinRelevance, weatherRecipesPerMood)
		if err != nil {
			return nil, fmt.Errorf("find recipes for mood %s: %w", mood.Name, err)
		}
		for _, r := range recipes {
			if len(suggestions) >= maxSuggestions {
				break
			}
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			suggestions = append(suggestions, suggestionFor(r, weatherMessage(condition, temperature, r.Name)))
		}
	}
	return suggestions, nil
}

func weatherMessage(condition string, temperature float64, recipe string) string {
	switch {
	case temperature < 10:
		switch condition {
		case "snowy":
			return fmt.Sprintf("It's snowing outside! How about warming up with this %s?", recipe)
		case "rainy":
			return fmt.Sprintf("Cold and rainy today! This %s will warm you right up.", recipe)
		default:
			return fmt.Sprintf("It's cold out there! Try this %s to stay warm.", recipe)
		}
	case temperature > 25:
		if condition == "sunny" {
			return fmt.Sprintf("Hot and sunny today! Cool down with this refreshing %s.", recipe)
		}
		return fmt.Sprintf("It's pretty warm today. This %s won't overheat you.", recipe)
	default:
		switch condition {
		case "rainy":
			return fmt.Sprintf("Rainy day comfort food alert! Try this %s.", recipe)
		case "cloudy":
			return fmt.Sprintf("Cloudy day? Brighten it up with this %s.", recipe)
		default:
			return fmt.Sprintf("Perfect weather for this %s!", recipe)
		}
	}
}

func (a *Assistant) suggestByTimeOfDay(ctx context.Context, timeOfDay string) ([]Suggestion, error) {
	categories, ok := timeCategories[timeOfDay]
	if !ok {
		categories = []string{"quick", "any"}
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, capitalize(c))
	}

	moods, err := a.catalog.FindMoodsByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("find time of day moods: %w", err)
	}
	if len(moods) == 0 {
		return []Suggestion{}, nil
	}
	ids := make([]string, 0, len(moods))
	for _, m := range moods {
		ids = append(ids, m.ID)
	}

	recipes, err := a.catalog.FindRecentRecipesByMoods(ctx, ids, 0, maxSuggestions)
	if err != nil {
		return nil, fmt.Errorf("find time of day recipes: %w", err)
	}
	suggestions := make([]Suggestion, 0, len(recipes))
	for _, r := range recipes {
		suggestions = append(suggestions, suggestionFor(r, timeMessage(timeOfDay, r.Name)))
	}
	return suggestions, nil
}

func timeMessage(timeOfDay, recipe string) string {
	switch timeOfDay {
	case "morning":
		return fmt.Sprintf("Jump start your day with this %s!", recipe)
	case "afternoon":
		return fmt.Sprintf("Perfect lunch option: %s", recipe)
	case "evening":
		return fmt.Sprintf("For a delicious dinner tonight: %s", recipe)
	case "night":
		return fmt.Sprintf("Late night craving? Try this %s", recipe)
	default:
		return fmt.Sprintf("How about trying this %s?", recipe)
	}
}

// personalizedSuggestions ranks recipes for the user's preferred and highly
// rated ingredients, topped up from their first preferred mood.
func (a *Assistant) personalizedSuggestions(ctx context.Context, userID string, user *models.User) ([]Suggestion, error) {
	var history []models.UserRecipeHistory
	if a.history != nil {
		var err error
		history, err = a.history.FindUserHistory(ctx, userID, historyWindow)
		if err != nil {
			return nil, fmt.Errorf("find user history: %w", err)
		}
	}
	var prefs *models.UserPreference
	if user != nil {
		prefs = user.Preferences
	}
	if prefs == nil && len(history) == 0 {
		return nil, nil
	}

	var ingredients, moods orderedSet
	if prefs != nil {
		ingredients.add(prefs.PreferredIngredients...)
		moods.add(prefs.PreferredMoods...)
	}
	for _, h := range history {
		if h.Rating == nil || *h.Rating < 4 || h.Recipe == nil {
			continue
		}
		ingredients.add(h.Recipe.IngredientIDs()...)
		for _, rm := range h.Recipe.Moods {
			moods.add(rm.MoodID)
		}
	}

	var picked []models.Recipe
	seen := make(map[string]bool)
	if len(ingredients.items) > 0 {
		res, err := a.recommender.RecommendByIngredients(ctx, ingredients.items, userID)
		if err != nil {
			return nil, err
		}
		for _, sr := range res.Recipes {
			if !seen[sr.Recipe.ID] {
				seen[sr.Recipe.ID] = true
				picked = append(picked, sr.Recipe)
			}
		}
	}
	if len(picked) < maxSuggestions && len(moods.items) > 0 {
		res, err := a.recommender.RecommendByMood(ctx, moods.items[0], userID)
		if err != nil {
			return nil, err
		}
		for _, sr := range res.Recipes {
			if len(picked) >= maxSuggestions {
				break
			}
			if !seen[sr.Recipe.ID] {
				seen[sr.Recipe.ID] = true
				picked = append(picked, sr.Recipe)
			}
		}
	}
	if len(picked) > maxSuggestions {
		picked = picked[:maxSuggestions]
	}

	suggestions := make([]Suggestion, 0, len(picked))
	for i, r := range picked {
		phrase := personalPhrases[i%len(personalPhrases)]
		suggestions = append(suggestions, suggestionFor(r, fmt.Sprintf(phrase, r.Name)))
	}
	return suggestions, nil
}

// mergeSuggestions puts personal picks first and drops generic ones naming the same recipe.
func mergeSuggestions(personal, generic []Suggestion) []Suggestion {
	merged := make([]Suggestion, 0, len(personal)+len(generic))
	seen := make(map[string]bool, len(personal))
	for _, s := range personal {
		seen[s.ID] = true
		merged = append(merged, s)
	}
	for _, s := range generic {
		if !seen[s.ID] {
			merged = append(merged, s)
		}
	}
	return merged
}

func suggestionFor(r models.Recipe, message string) Suggestion {
	return Suggestion{ID: r.ID, Name: r.Name, Message: message, ImageURL: r.ImageURL}
}

type orderedSet struct {
	items []string
	seen  map[string]bool
}

func (s *orderedSet) add(values ...string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, v := range values {
		if v == "" || s.seen[v] {
			continue
		}
		s.seen[v] = true
		s.items = append(s.items, v)
	}
}
