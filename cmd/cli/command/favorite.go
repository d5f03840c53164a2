package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List or toggle favorite recipes",
}

var listFavoritesCmd = &cobra.Command{
	Use:   "list",
	Short: "List your favorite recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		list, err := GetAuthenticatedClient().ListFavorites(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get favorites: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}

		for _, r := range list {
			fmt.Printf("ID: %s | %s | %s\n", r.ID, r.Name, r.Difficulty)
		}
		return nil
	},
}

var toggleFavoriteCmd = &cobra.Command{
	Use:   "toggle [recipe-id]",
	Short: "Add or remove a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		res, err := GetAuthenticatedClient().ToggleFavorite(ctx, args[0], userID)
		if err != nil {
			return fmt.Errorf("failed to toggle favorite: %w", err)
		}

		if res.IsFavorite {
			fmt.Println("✓ Added to favorites")
		} else {
			fmt.Println("✓ Removed from favorites")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(listFavoritesCmd, toggleFavoriteCmd)
}
