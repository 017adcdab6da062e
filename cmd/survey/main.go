// Package main provides the survey CLI.
//
//	survey        interactive menu (insert, extract, view)
//	survey serve  HTTP statistics API over the same store
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type rootOptions struct {
	envFile         string
	credentialsFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "survey",
		Short: "Apple Vision Pro product survey",
		Long: `survey records purchase-likelihood responses in a spreadsheet and
reports the likelihood of purchase for any combination of gender, age group
and income bracket.

Run without a subcommand to start the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&opts.credentialsFile, "creds", "", "Google service-account credentials file (overrides GOOGLE_CREDENTIALS_FILE)")

	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}
