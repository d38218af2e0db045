// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-prospector/internal/evaluate"
	"github.com/pdiddy/paper-prospector/internal/library"
	"github.com/pdiddy/paper-prospector/internal/search"
	"github.com/pdiddy/paper-prospector/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "paper-prospector/0.1"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search bibliographic APIs and rank candidates by potential",
	Long: `Search queries the enabled backends (Crossref, Semantic Scholar) for
papers matching a topic, deduplicates across sources, and scores every
result with the dual impact/potential evaluation. The ranked batch is
saved so that 'collect' can file results by rank.

The --w-* flags reweigh the potential components for a custom ranking;
the stored scores themselves never change.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum number of results to return (default 20)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Float64("w-evidence", 1, "weight for the evidence component")
	searchCmd.Flags().Float64("w-recency", 1, "weight for the recency component")
	searchCmd.Flags().Float64("w-team", 1, "weight for the team component")
	searchCmd.Flags().Float64("w-scarcity", 1, "weight for the citation-scarcity component")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		return fmt.Errorf("provide a search query")
	}

	weights, err := weightsFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := searchConfigFromFlags(cmd)
	client := &http.Client{Timeout: cfg.Timeout}

	var backends []search.Backend
	var exposure search.ExposureSource
	if cfg.EnableCrossref {
		cb := &search.CrossrefBackend{
			Client:    client,
			Mailto:    cfg.CrossrefMailto,
			PlusToken: cfg.CrossrefPlusToken,
		}
		backends = append(backends, cb)
		exposure = cb
	}
	if cfg.EnableSemanticScholar {
		backends = append(backends, &search.SemanticScholarBackend{
			Client: client,
			APIKey: cfg.SemanticScholarAPIKey,
		})
	}

	out, err := search.Search(context.Background(), query, backends, exposure,
		cfg, types.DefaultScoringConfig(), os.Stderr)
	if err != nil {
		return err
	}
	if !weights.IsDefault() {
		search.Rerank(&out, weights)
	}

	// Persist the batch so collect can reference results by rank.
	batch := library.SavedSearch{
		Query:           out.Query,
		TotalHits:       out.TotalHits,
		TopicMultiplier: out.TopicMultiplier,
		Papers:          out.Papers,
	}
	if err := library.SaveSearch(libraryConfig(cmd).LibraryDir, batch); err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(out, os.Stdout)
	}
	search.FormatTable(out, os.Stdout)
	return nil
}

func weightsFromFlags(cmd *cobra.Command) (evaluate.Weights, error) {
	w := evaluate.Weights{}
	w.Evidence, _ = cmd.Flags().GetFloat64("w-evidence")
	w.Recency, _ = cmd.Flags().GetFloat64("w-recency")
	w.Team, _ = cmd.Flags().GetFloat64("w-team")
	w.Scarcity, _ = cmd.Flags().GetFloat64("w-scarcity")
	if err := w.Validate(); err != nil {
		return evaluate.Weights{}, err
	}
	return w, nil
}

func searchConfigFromFlags(cmd *cobra.Command) types.SearchConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("search.max_results")
	}

	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxResults:            maxResults,
		EnableCrossref:        viper.GetBool("search.enable_crossref"),
		EnableSemanticScholar: viper.GetBool("search.enable_semantic_scholar"),
		SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", viper.GetString("search.semantic_scholar_api_key")),
		CrossrefMailto:        secretDefault("crossref-mailto", viper.GetString("search.crossref_mailto")),
		CrossrefPlusToken:     secretDefault("crossref-plus-token", viper.GetString("search.crossref_plus_token")),
	}
}
