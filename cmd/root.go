package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig      string
	flagDebug       bool
	flagMetricsAddr string
	flagQuery       string
)

var rootCmd = &cobra.Command{
	Use:   "newsdesk",
	Short: "Terminal reader for a news aggregation service",
	Long: `newsdesk browses the articles, categories and sources of a news aggregation API
and shows its analytics: category counts, top keywords and keyword trends.

Without a subcommand it starts the interactive reader.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g., 127.0.0.1:9464)")
	rootCmd.Flags().StringVar(&flagQuery, "query", "", `initial list query (e.g., "page=2&category=3")`)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(articlesCmd)
	rootCmd.AddCommand(articleCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(themeCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newsdesk %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
