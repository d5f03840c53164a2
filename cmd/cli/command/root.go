package command

// root.go defines the root command for the bnin CLI and its global flags.

import (
	"errors"
	"fmt"
	"os"
	"time"

	"bnin/cmd/cli/authentication"
	"bnin/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var (
	apiURL string // Global flag for API server URL
	userID string // acts as this user when no token is stored
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bnin",
	Short: "bnin - recipe recommendations from the command line",
	Long: `bnin talks to the bnin recipe API. Use it to:
- Get recipe recommendations from ingredients or a mood
- Rate recommendations so the model keeps learning
- Chat with the cooking assistant
- Browse ingredients, moods, recipes and favorites

Use "bnin [command] --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultAPI := os.Getenv("BNIN_API_URL")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}

	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "user id to act as when no token is stored")
}

// GetAuthenticatedClient returns an HTTP client carrying the stored token,
// if one exists and has not expired.
func GetAuthenticatedClient() *client.HTTPClient {
	httpClient := client.NewHTTPClient(apiURL)

	creds, err := authentication.GetTokens()
	switch {
	case errors.Is(err, authentication.ErrNoCredentials):
		return httpClient
	case err != nil:
		fmt.Fprintln(os.Stderr, "Warning: could not read stored token:", err)
		return httpClient
	case creds.Expired(time.Now()):
		fmt.Fprintln(os.Stderr, "Warning: stored token has expired, run 'bnin token issue' to get a new one")
		return httpClient
	}

	httpClient.SetToken(creds.AccessToken)
	return httpClient
}
