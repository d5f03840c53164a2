package assistant

import (
	"regexp"
	"strings"
)

// Intent is what a chat query is asking for.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentIngredient
	IntentMood
	IntentTime
	IntentWeather
)

func (i Intent) String() string {
	switch i {
	case IntentIngredient:
		return "ingredient"
	case IntentMood:
		return "mood"
	case IntentTime:
		return "time"
	case IntentWeather:
		return "weather"
	default:
		return "unknown"
	}
}

// intent keyword groups, checked in this order; the first group with a hit wins
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentIngredient, []string{"what can i make with", "recipes with", "have these ingredients"}},
	{IntentMood, []string{"feeling", "in the mood for", "craving"}},
	{IntentTime, []string{"breakfast", "lunch", "dinner", "snack", "dessert"}},
	{IntentWeather, []string{"cold", "hot", "rainy", "snowy", "weather"}},
}

// Classify maps a free-text query to an intent by keyword.
func Classify(query string) Intent {
	q := strings.ToLower(query)
	for _, group := range intentKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(q, kw) {
				return group.intent
			}
		}
	}
	return IntentUnknown
}

var (
	ingredientPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)what can i make with\s+(.+)`),
		regexp.MustCompile(`(?i)recipes with\s+(.+)`),
		regexp.MustCompile(`(?i)have\s+(.+)`),
		regexp.MustCompile(`(?i)using\s+(.+)`),
	}
	ingredientSeparator = regexp.MustCompile(`,|\sand\s`)

	moodPhrases = []*regexp.Regexp{
		regexp.MustCompile(`(?i)in the mood for\s+(.+)`),
		regexp.MustCompile(`(?i)craving\s+(.+)`),
		regexp.MustCompile(`(?i)feeling like\s+(.+)`),
		regexp.MustCompile(`(?i)want\s+(.+)`),
	}

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bin\s+(.+)`),
		regexp.MustCompile(`(?i)\bat\s+(.+)`),
		regexp.MustCompile(`(?i)\bfor\s+(.+)\s+weather`),
	}
)

var moodKeywords = []string{
	"sweet", "savory", "spicy", "comfort", "healthy",
	"quick", "hot", "cold", "refreshing", "light",
	"hearty", "decadent", "simple", "fancy", "festive",
}

// ExtractIngredients pulls lower-cased ingredient names out of a query.
func ExtractIngredients(query string) []string {
	for _, p := range ingredientPatterns {
		m := p.FindStringSubmatch(query)
		if len(m) < 2 || m[1] == "" {
			continue
		}
		var out []string
		for _, part := range ingredientSeparator.Split(m[1], -1) {
			part = strings.ToLower(strings.Trim(strings.TrimSpace(part), ".?!"))
			if part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}

// ExtractMood finds a mood keyword in the query, falling back to the first
// word after a craving phrase. Empty when nothing usable is found.
func ExtractMood(query string) string {
	q := strings.ToLower(query)
	for _, mood := range moodKeywords {
		if strings.Contains(q, mood) {
			return mood
		}
	}

	for _, p := range moodPhrases {
		m := p.FindStringSubmatch(query)
		if len(m) < 2 || m[1] == "" {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(m[1]))
		for _, mood := range moodKeywords {
			if strings.Contains(text, mood) {
				return mood
			}
		}
		if first := strings.Trim(strings.SplitN(text, " ", 2)[0], ".?!,"); len(first) > 2 {
			return first
		}
	}
	return ""
}

// MealType returns the mood name a time-of-meal query maps to.
func MealType(query string) string {
	q := strings.ToLower(query)
	for _, meal := range []string{"breakfast", "lunch", "dinner", "snack", "dessert"} {
		if strings.Contains(q, meal) {
			return capitalize(meal)
		}
	}
	return "Quick"
}

// ExtractWeatherCondition returns a condition named literally in the query.
func ExtractWeatherCondition(query string) string {
	q := strings.ToLower(query)
	for _, c := range []string{"cold", "hot", "rainy", "snowy"} {
		if strings.Contains(q, c) {
			return c
		}
	}
	return ""
}

// ExtractLocation returns the place named after "in", "at" or "for ... weather".
func ExtractLocation(query string) string {
	for _, p := range locationPatterns {
		if m := p.FindStringSubmatch(query); len(m) > 1 {
			if loc := strings.Trim(strings.TrimSpace(m[1]), ".?!"); loc != "" {
				return loc
			}
		}
	}
	return ""
}

// MoodForWeather picks the mood to browse for a weather condition. Cold
// weather asks for hot food and hot weather for cold food. temperature may be
// nil when unknown.
func MoodForWeather(condition string, temperature *float64) string {
	switch strings.ToLower(condition) {
	case "cold", "snowy":
		return "Hot"
	case "hot":
		return "Cold"
	case "rainy":
		return "Comfort"
	}
	if temperature != nil {
		switch {
		case *temperature < 10:
			return "Hot"
		case *temperature > 25:
			return "Cold"
		}
	}
	return "Any"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
