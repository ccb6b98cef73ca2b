// Command newsclust clusters per-article likes counts of news sources.
//
//	newsclust run --config newsclust.yaml
//	newsclust run --k 4 --format text --source bbc.csv --source cnn.csv.zst
//	newsclust config --format toml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "newsclust",
		Short: "Cluster news articles by engagement",
		Long: `newsclust reads per-article likes counts of news sources and groups them
with k-means into engagement tiers.

Sources are delimited files ("source,likes") in a local directory, S3 or an
S3-compatible store, optionally compressed with zstd, gzip or lz4.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (yaml, toml or json)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "newsclust version %s\n", version)
		},
	}
}
