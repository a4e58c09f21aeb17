package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect the GitHub credential",
}

var authCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the token and show who it belongs to",
	Args:  cobra.NoArgs,
	RunE:  runAuthCheck,
}

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show the remaining REST API quota",
	Long: `Shows the core REST API rate limit of the configured token.
Querying the quota does not count against it.`,
	Args: cobra.NoArgs,
	RunE: runQuota,
}

func init() {
	authCmd.AddCommand(authCheckCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(quotaCmd)
}

func runAuthCheck(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newAccountClient(ctx, settings)
	if err != nil {
		return err
	}

	login, err := client.ValidateCredentials(ctx)
	if err != nil {
		return fmt.Errorf("token from %s was rejected: %w", settings.TokenEnv, err)
	}

	cmd.Printf("Authenticated as %s (token from %s).\n", login, settings.TokenEnv)
	return nil
}

func runQuota(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newAccountClient(ctx, settings)
	if err != nil {
		return err
	}

	quota, err := client.Quota(ctx)
	if err != nil {
		return fmt.Errorf("fetching quota: %w", err)
	}

	cmd.Println(quota.Status())
	return nil
}
