package command

import (
	"context"
	"fmt"
	"time"

	"bnin/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

const requestTimeout = 60 * time.Second

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recipe recommendations",
	Long:  `Get ranked recipe recommendations and tell the model how they went.`,
}

var byIngredientsCmd = &cobra.Command{
	Use:   "ingredients [ingredient-id...]",
	Short: "Recommend recipes for the ingredients you have",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		res, err := GetAuthenticatedClient().RecommendByIngredients(ctx, args, userID)
		if err != nil {
			return fmt.Errorf("failed to get recommendations: %w", err)
		}
		printRecommendations(res)
		return nil
	},
}

var byMoodCmd = &cobra.Command{
	Use:   "mood [mood-id]",
	Short: "Recommend recipes for a mood",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		res, err := GetAuthenticatedClient().RecommendByMood(ctx, args[0], userID)
		if err != nil {
			return fmt.Errorf("failed to get recommendations: %w", err)
		}
		printRecommendations(res)
		return nil
	},
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback [recommendation-id]",
	Short: "Accept or reject a recommendation, optionally with a rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accepted, _ := cmd.Flags().GetBool("accepted")
		var rating *int
		if cmd.Flags().Changed("rating") {
			r, _ := cmd.Flags().GetInt("rating")
			if r < 1 || r > 5 {
				return fmt.Errorf("rating must be between 1 and 5")
			}
			rating = &r
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		res, err := GetAuthenticatedClient().SendFeedback(ctx, args[0], accepted, rating)
		if err != nil {
			return fmt.Errorf("failed to send feedback: %w", err)
		}

		fmt.Println("✓ Feedback recorded")
		fmt.Printf("Recipe: %s | Accepted: %t\n", res.RecipeID, res.Accepted)
		return nil
	},
}

func printRecommendations(res *dto.RecommendationResponse) {
	if len(res.Recipes) == 0 {
		fmt.Println("No matching recipes found.")
		return
	}

	fmt.Printf("Recommendation ID: %s\n\n", res.RecommendationID)
	for i, r := range res.Recipes {
		fmt.Printf("%d. %s (score %.2f)\n", i+1, r.Name, r.Score)
		fmt.Printf("   ID: %s | %s | %d min\n", r.ID, r.Difficulty, r.PrepTime+r.CookTime)
		if r.MatchedIngredients > 0 || r.MissingIngredients > 0 {
			fmt.Printf("   Have %d, missing %d (%.0f%% coverage)\n", r.MatchedIngredients, r.MissingIngredients, r.CoveragePercentage)
		}
		if r.MoodRelevance > 0 {
			fmt.Printf("   Mood relevance: %d/10\n", r.MoodRelevance)
		}
	}
	fmt.Println("\nUse 'bnin recommend feedback <recommendation-id> --accepted' to pick the top recipe.")
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.AddCommand(byIngredientsCmd, byMoodCmd, feedbackCmd)

	feedbackCmd.Flags().Bool("accepted", false, "accept the top recipe")
	feedbackCmd.Flags().Int("rating", 0, "rating from 1 to 5")
}
