package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type options struct {
	baseURL string
	actor   string
	timeout time.Duration
	json    bool
	confirm confirmFunc
}

func (o *options) client() *apiClient {
	return newAPIClient(o.baseURL, o.actor, o.timeout)
}

func main() {
	if err := newRootCmd(&options{confirm: promptConfirm}).Execute(); err != nil {
		printFailure(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fxledger",
		Short:         "fxledger CLI tool",
		Long:          `A command line interface for the fxledger multi-currency ledger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("FXLEDGER_URL", "http://localhost:8080"), "Base URL of the fxledger API")
	rootCmd.PersistentFlags().StringVar(&opts.actor, "actor", envOr("FXLEDGER_ACTOR", ""), "Actor recorded on mutations")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print raw JSON instead of tables")

	rootCmd.AddCommand(
		periodsCmd(opts),
		ratesCmd(opts),
		journalsCmd(opts),
		reportsCmd(opts),
		ledgerCmd(opts),
		accountsCmd(opts),
	)

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireFlag(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("unknown flag %q", name))
		}
	}
}
