package command

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "List ingredients",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		list, err := GetAuthenticatedClient().ListIngredients(ctx, category)
		if err != nil {
			return fmt.Errorf("failed to get ingredients: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No ingredients found.")
			return nil
		}

		fmt.Printf("Ingredients (%d total):\n\n", len(list))
		for _, i := range list {
			fmt.Printf("ID: %s | %s | %s\n", i.ID, i.Name, i.Category)
		}
		return nil
	},
}

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "List moods",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		list, err := GetAuthenticatedClient().ListMoods(ctx)
		if err != nil {
			return fmt.Errorf("failed to get moods: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No moods found.")
			return nil
		}

		fmt.Printf("Moods (%d total):\n\n", len(list))
		for _, m := range list {
			fmt.Printf("ID: %s | %s - %s\n", m.ID, m.Name, m.Description)
		}
		return nil
	},
}

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Browse recipes",
}

var listRecipesCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		for _, name := range []string{"search", "mood", "difficulty"} {
			if v, _ := cmd.Flags().GetString(name); v != "" {
				query.Set(name, v)
			}
		}
		if ids, _ := cmd.Flags().GetStringSlice("ingredients"); len(ids) > 0 {
			query.Set("ingredients", strings.Join(ids, ","))
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		list, err := GetAuthenticatedClient().ListRecipes(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to get recipes: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No recipes found.")
			return nil
		}

		fmt.Printf("Recipes (%d total):\n\n", len(list))
		for _, r := range list {
			fmt.Printf("ID: %s | %s | %s | %d min | ♥ %d\n", r.ID, r.Name, r.Difficulty, r.PrepTime+r.CookTime, r.FavoriteCount)
		}
		return nil
	},
}

var getRecipeCmd = &cobra.Command{
	Use:   "get [recipe-id]",
	Short: "Show a recipe with ingredients and steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		r, err := GetAuthenticatedClient().GetRecipe(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get recipe: %w", err)
		}

		fmt.Printf("%s\n%s\n\n", r.Name, r.Description)
		fmt.Printf("Difficulty: %s | Prep: %d min | Cook: %d min | Serves: %d\n", r.Difficulty, r.PrepTime, r.CookTime, r.Servings)

		if len(r.Moods) > 0 {
			names := make([]string, 0, len(r.Moods))
			for _, m := range r.Moods {
				names = append(names, m.Name)
			}
			fmt.Printf("Moods: %s\n", strings.Join(names, ", "))
		}

		fmt.Println("\nIngredients:")
		for _, i := range r.Ingredients {
			fmt.Printf("  - %s %s %s\n", i.Quantity, i.Unit, i.Name)
		}

		fmt.Println("\nSteps:")
		for n, step := range r.Instructions {
			fmt.Printf("  %d. %s\n", n+1, step)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingredientsCmd, moodsCmd, recipesCmd)
	recipesCmd.AddCommand(listRecipesCmd, getRecipeCmd)

	ingredientsCmd.Flags().String("category", "", "only this category, e.g. protein")

	listRecipesCmd.Flags().String("search", "", "name contains")
	listRecipesCmd.Flags().String("mood", "", "mood id")
	listRecipesCmd.Flags().String("difficulty", "", "Easy, Medium or Hard")
	listRecipesCmd.Flags().StringSlice("ingredients", nil, "ingredient ids, comma separated")
}
