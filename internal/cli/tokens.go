package cli

import (
	"fmt"

	"github.com/glorpus-work/podaac-subset/internal/logger"
	"github.com/spf13/cobra"
)

// NewTokensCmd creates the tokens command with subcommands.
func NewTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage CMR tokens",
		Long:  "List or delete the CMR tokens held by the Earthdata Login user from netrc",
	}

	cmd.AddCommand(
		newTokensListCmd(),
		newTokensDeleteCmd(),
	)

	return cmd
}

func newTokensListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List existing tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			tm, err := loadTokenManager(cfg)
			if err != nil {
				return err
			}

			tokens, err := tm.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list tokens: %w", err)
			}
			if len(tokens) == 0 {
				logger.Info("No tokens found")
				return nil
			}
			for _, t := range tokens {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func newTokensDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TOKEN",
		Short: "Delete a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			tm, err := loadTokenManager(cfg)
			if err != nil {
				return err
			}

			if err := tm.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete token: %w", err)
			}
			logger.Success("CMR token successfully deleted")
			return nil
		},
	}
}
