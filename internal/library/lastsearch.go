// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/paper-prospector/pkg/types"
)

const lastSearchFile = "last-search.json"

// SavedSearch is the evaluated batch of the most recent search, written
// to disk so `collect` can reference results by rank. Serializing and
// reloading preserves every scoring field exactly; the evaluator is not
// re-run on load.
type SavedSearch struct {
	Query           string                 `json:"query"`
	TotalHits       int                    `json:"total_hits"`
	TopicMultiplier float64                `json:"topic_multiplier"`
	Papers          []types.EvaluatedPaper `json:"papers"`
}

// SaveSearch writes the batch to libraryDir/last-search.json.
func SaveSearch(libraryDir string, batch SavedSearch) error {
	if err := os.MkdirAll(libraryDir, 0o755); err != nil {
		return fmt.Errorf("creating library directory: %w", err)
	}
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling search batch: %w", err)
	}
	return os.WriteFile(filepath.Join(libraryDir, lastSearchFile), data, 0o644)
}

// LoadSearch reads the most recent batch back.
func LoadSearch(libraryDir string) (SavedSearch, error) {
	data, err := os.ReadFile(filepath.Join(libraryDir, lastSearchFile))
	if err != nil {
		if os.IsNotExist(err) {
			return SavedSearch{}, fmt.Errorf("no saved search: run a search first")
		}
		return SavedSearch{}, fmt.Errorf("reading saved search: %w", err)
	}
	var batch SavedSearch
	if err := json.Unmarshal(data, &batch); err != nil {
		return SavedSearch{}, fmt.Errorf("parsing saved search: %w", err)
	}
	return batch, nil
}
