package command

import (
	"errors"
	"fmt"
	"time"

	"bnin/cmd/cli/authentication"
	"bnin/internal/config"
	"bnin/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
)

// token.go manages the bearer token the CLI sends. The API has no sign-in,
// so tokens are minted locally with the server's JWT_SECRET.

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the stored API token",
}

var issueTokenCmd = &cobra.Command{
	Use:   "issue [user-id]",
	Short: "Sign a token for a user with JWT_SECRET and store it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		ttl, _ := cmd.Flags().GetDuration("ttl")

		tokens := service.NewTokenService(cfg.JWTSecret)
		signed, err := tokens.Issue(args[0], ttl)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}

		creds := &authentication.StoredCredentials{
			AccessToken: signed,
			UserID:      args[0],
			ExpiresAt:   time.Now().Add(ttl).Unix(),
		}
		if err := authentication.StoreTokens(creds); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}

		fmt.Println("✓ Token stored")
		fmt.Printf("UserID: %s\n", args[0])
		fmt.Printf("Expires: %s\n", time.Unix(creds.ExpiresAt, 0).Format(time.RFC1123))
		return nil
	},
}

var setTokenCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store a token obtained elsewhere",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user-id")
		if err := authentication.StoreTokens(&authentication.StoredCredentials{AccessToken: args[0], UserID: user}); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		fmt.Println("✓ Token stored")
		return nil
	},
}

var showTokenCmd = &cobra.Command{
	Use:   "show",
	Short: "Show who the stored token belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if errors.Is(err, authentication.ErrNoCredentials) {
			fmt.Println("No token stored.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("UserID: %s\n", creds.UserID)
		if creds.ExpiresAt > 0 {
			fmt.Printf("Expires: %s\n", time.Unix(creds.ExpiresAt, 0).Format(time.RFC1123))
		}
		if creds.Expired(time.Now()) {
			fmt.Println("Status: expired")
		}
		return nil
	},
}

var clearTokenCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		fmt.Println("✓ Token removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(issueTokenCmd, setTokenCmd, showTokenCmd, clearTokenCmd)

	issueTokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	setTokenCmd.Flags().String("user-id", "", "user the token belongs to")
}
