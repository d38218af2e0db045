// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-prospector CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-prospector/internal/secrets"
	"github.com/pdiddy/paper-prospector/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the paper-prospector CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-prospector",
	Short: "Find undervalued papers before the citation crowd does",
	Long: `paper-prospector searches bibliographic APIs (Crossref, Semantic Scholar)
and evaluates every result twice: once for raw popularity and once with
the popularity stripped back out, so that a five-citation preprint with
real experimental evidence can outrank a ten-thousand-citation review.

Each workflow step is a subcommand: search ranks candidates, collect
files them into the local library, library manages and exports the
collection, and profile tracks discovery progress.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-prospector.yaml or ~/.config/paper-prospector/config.yaml)")
	rootCmd.PersistentFlags().String("library-dir", "", "base directory for the library (default: ./library)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-prospector")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-prospector"))
		}
	}

	viper.SetDefault("library.dir", "library")
	viper.SetDefault("search.max_results", 20)
	viper.SetDefault("search.enable_crossref", true)
	viper.SetDefault("search.enable_semantic_scholar", true)

	viper.SetEnvPrefix("PAPER_PROSPECTOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// libraryConfig resolves the library directory from the flag, then the
// config file, then the default.
func libraryConfig(cmd *cobra.Command) types.LibraryConfig {
	dir, _ := cmd.Flags().GetString("library-dir")
	if dir == "" {
		dir = viper.GetString("library.dir")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.LibraryConfig{
		LibraryDir: dir,
		MaxResults: maxResults,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
