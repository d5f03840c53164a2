package command

import (
	"context"
	"fmt"
	"strings"

	"bnin/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Ask the cooking assistant",
	Example: `  bnin chat what can I make with chicken and rice
  bnin chat "something for a rainy day" --location London`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &dto.ChatRequestDTO{
			Query:   strings.Join(args, " "),
			UserID:  userID,
			Context: queryContextFromFlags(cmd),
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		res, err := GetAuthenticatedClient().Chat(ctx, req)
		if err != nil {
			return fmt.Errorf("assistant request failed: %w", err)
		}

		fmt.Println(res.Message)
		if len(res.Recipes) > 0 {
			fmt.Println()
			for _, r := range res.Recipes {
				line := fmt.Sprintf("  • %s (%s)", r.Name, r.ID)
				if r.MissingIngredients != nil && *r.MissingIngredients > 0 {
					line += fmt.Sprintf(", missing %d", *r.MissingIngredients)
				}
				fmt.Println(line)
			}
		}
		for _, a := range res.Actions {
			fmt.Printf("  → %s\n", a.Label)
		}
		return nil
	},
}

var greetingCmd = &cobra.Command{
	Use:   "greeting",
	Short: "Get a greeting with suggestions for right now",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &dto.GreetingRequestDTO{
			UserID:  userID,
			Context: queryContextFromFlags(cmd),
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		res, err := GetAuthenticatedClient().Greeting(ctx, req)
		if err != nil {
			return fmt.Errorf("greeting request failed: %w", err)
		}

		fmt.Println(res.Greeting)
		for _, s := range res.Suggestions {
			fmt.Printf("  • %s: %s\n", s.Name, s.Message)
		}
		if res.SpecialSuggestion != "" {
			fmt.Println()
			fmt.Println(res.SpecialSuggestion)
		}
		return nil
	},
}

// queryContextFromFlags returns nil when no context flag was given.
func queryContextFromFlags(cmd *cobra.Command) *dto.QueryContextDTO {
	flags := cmd.Flags()
	if !flags.Changed("location") && !flags.Changed("weather") && !flags.Changed("temperature") && !flags.Changed("time-of-day") {
		return nil
	}

	qctx := &dto.QueryContextDTO{}
	qctx.Location, _ = flags.GetString("location")
	qctx.Weather, _ = flags.GetString("weather")
	qctx.TimeOfDay, _ = flags.GetString("time-of-day")
	if flags.Changed("temperature") {
		temp, _ := flags.GetFloat64("temperature")
		qctx.Temperature = &temp
	}
	return qctx
}

func addContextFlags(cmd *cobra.Command) {
	cmd.Flags().String("location", "", "city used for live weather")
	cmd.Flags().String("weather", "", "current conditions, e.g. rain or sunny")
	cmd.Flags().Float64("temperature", 0, "temperature in °C")
	cmd.Flags().String("time-of-day", "", "morning, afternoon, evening or night")
}

func init() {
	rootCmd.AddCommand(chatCmd, greetingCmd)
	addContextFlags(chatCmd)
	addContextFlags(greetingCmd)
}
