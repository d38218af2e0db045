// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries bibliographic APIs, scores every result with the
// evaluation engine, and returns a ranked, deduplicated batch.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/pdiddy/paper-prospector/internal/evaluate"
	"github.com/pdiddy/paper-prospector/pkg/types"
)

// Backend fetches raw metadata records from a single bibliographic API.
// Each backend (Crossref, Semantic Scholar) implements this interface per
// the Strategy pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.PaperMeta, error)
}

// ExposureSource returns the total number of documents matching the topic,
// used to derive the over-exposure multiplier. Implementations should use
// a count-only query.
type ExposureSource interface {
	TotalHits(ctx context.Context, query string, cfg types.SearchConfig) (int, error)
}

// Output holds the evaluated batch and search statistics.
type Output struct {
	// Papers is the evaluated batch, sorted by potential score descending.
	Papers []types.EvaluatedPaper `json:"papers"`

	// TotalHits is the topic hit count, -1 when the exposure source was
	// unavailable.
	TotalHits int `json:"total_hits"`

	// TopicMultiplier is the over-exposure factor applied to the batch.
	TopicMultiplier float64 `json:"topic_multiplier"`

	// Query is the topic the batch was produced for.
	Query string `json:"query"`

	DupsRemoved   int      `json:"dups_removed"`
	Dropped       int      `json:"dropped"`
	BackendErrors []string `json:"backend_errors,omitempty"`
}

// Search fans the query out to all backends, drops records without a
// usable title, deduplicates, evaluates each surviving record once with
// the shared topic multiplier, and returns the top results by potential
// score. An unavailable exposure source degrades to multiplier 1.0 with a
// notice on w; it never fails the search.
func Search(ctx context.Context, query string, backends []Backend, exposure ExposureSource, cfg types.SearchConfig, scoring types.ScoringConfig, w io.Writer) (Output, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Output{}, fmt.Errorf("query is empty: provide a search topic")
	}
	if len(backends) == 0 {
		return Output{}, fmt.Errorf("no search backends configured")
	}

	totalHits := -1
	if exposure != nil {
		if hits, err := exposure.TotalHits(ctx, query, cfg); err != nil {
			fmt.Fprintf(w, "warning: topic exposure unavailable: %v\n", err)
		} else {
			totalHits = hits
		}
	}
	multiplier := evaluate.TopicMultiplier(totalHits)

	type backendResult struct {
		records []types.PaperMeta
		err     error
		name    string
	}

	ch := make(chan backendResult, len(backends))
	var wg sync.WaitGroup

	for i, b := range backends {
		if i > 0 && cfg.InterBackendDelay > 0 {
			time.Sleep(cfg.InterBackendDelay)
		}
		wg.Add(1)
		go func(b Backend) {
			defer wg.Done()
			records, err := b.Search(ctx, query, cfg)
			ch <- backendResult{records: records, err: err, name: b.Name()}
		}(b)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var all []types.PaperMeta
	var backendErrors []string
	dropped := 0
	for br := range ch {
		if br.err != nil {
			msg := fmt.Sprintf("%s: %v", br.name, br.err)
			backendErrors = append(backendErrors, msg)
			fmt.Fprintf(w, "warning: backend %s failed: %v\n", br.name, br.err)
			continue
		}
		for _, rec := range br.records {
			// A record with no usable title cannot be evaluated.
			if strings.TrimSpace(rec.Title) == "" {
				dropped++
				continue
			}
			all = append(all, rec)
		}
	}

	deduped, removed := deduplicate(all)

	currentYear := time.Now().Year()
	papers := make([]types.EvaluatedPaper, 0, len(deduped))
	for _, rec := range deduped {
		papers = append(papers, evaluate.EvaluateRecord(rec, multiplier, scoring, currentYear))
	}

	sort.SliceStable(papers, func(i, j int) bool {
		if papers[i].PotentialScore != papers[j].PotentialScore {
			return papers[i].PotentialScore > papers[j].PotentialScore
		}
		return papers[i].ImpactScore > papers[j].ImpactScore
	})

	if cfg.MaxResults > 0 && len(papers) > cfg.MaxResults {
		papers = papers[:cfg.MaxResults]
	}

	return Output{
		Papers:          papers,
		TotalHits:       totalHits,
		TopicMultiplier: multiplier,
		Query:           query,
		DupsRemoved:     removed,
		Dropped:         dropped,
		BackendErrors:   backendErrors,
	}, nil
}

// Rerank sorts the batch by custom score under the supplied weight
// vector. The custom score is a view-only ranking key; the papers
// themselves are unchanged.
func Rerank(out *Output, weights evaluate.Weights) {
	currentYear := time.Now().Year()
	sort.SliceStable(out.Papers, func(i, j int) bool {
		return evaluate.CustomScore(out.Papers[i], weights, currentYear) >
			evaluate.CustomScore(out.Papers[j], weights, currentYear)
	})
}

// deduplicate merges records that share a DOI or normalized title.
func deduplicate(records []types.PaperMeta) ([]types.PaperMeta, int) {
	seen := make(map[string]int) // dedup key → index in deduped
	var deduped []types.PaperMeta
	removed := 0

	for _, r := range records {
		key := ""
		if r.DOI != "" {
			key = "doi:" + strings.ToLower(r.DOI)
		}
		titleKey := "title:" + normalizeTitle(r.Title)

		if idx, ok := seen[key]; key != "" && ok {
			mergeInto(&deduped[idx], r)
			removed++
			continue
		}
		if idx, ok := seen[titleKey]; titleKey != "title:" && ok {
			mergeInto(&deduped[idx], r)
			removed++
			continue
		}

		idx := len(deduped)
		deduped = append(deduped, r)
		if key != "" {
			seen[key] = idx
		}
		if titleKey != "title:" {
			seen[titleKey] = idx
		}
	}
	return deduped, removed
}

// mergeInto fills empty fields of dst from src and keeps the higher
// citation count. A known reference count beats an unknown one.
func mergeInto(dst *types.PaperMeta, src types.PaperMeta) {
	if dst.DOI == "" && src.DOI != "" {
		dst.DOI = src.DOI
	}
	if len(dst.Authors) == 0 && len(src.Authors) > 0 {
		dst.Authors = src.Authors
	}
	if dst.Journal == "" && src.Journal != "" {
		dst.Journal = src.Journal
	}
	if dst.Year == 0 && src.Year != 0 {
		dst.Year = src.Year
	}
	if src.CitationCount > dst.CitationCount {
		dst.CitationCount = src.CitationCount
	}
	if dst.ReferenceCount == nil && src.ReferenceCount != nil {
		dst.ReferenceCount = src.ReferenceCount
	}
	if dst.Source != src.Source && !strings.Contains(dst.Source, src.Source) {
		dst.Source = dst.Source + "," + src.Source
	}
}

// normalizeTitle returns a lowercased, punctuation-stripped version of the title.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FormatTable writes the evaluated batch as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	if out.TotalHits >= 0 {
		fmt.Fprintf(w, "Topic exposure: %d hits (multiplier %.1fx)\n\n", out.TotalHits, out.TopicMultiplier)
	} else {
		fmt.Fprintln(w, "Topic exposure: unknown (multiplier 1.0x)")
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%-4s  %-52s  %-4s  %-3s  %-3s  %-5s  %-13s  %s\n",
		"Rank", "Title", "Year", "Pot", "Imp", "Bias", "Type", "Cites")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for i, p := range out.Papers {
		title := p.Title
		if len(title) > 52 {
			title = title[:49] + "..."
		}
		year := ""
		if p.Year > 0 {
			year = fmt.Sprintf("%d", p.Year)
		}
		fmt.Fprintf(w, "%-4d  %-52s  %-4s  %-3d  %-3d  %+-5d  %-13s  %d\n",
			i+1, title, year, p.PotentialScore, p.ImpactScore, p.BiasPenalty,
			p.Classification, p.CitationCount)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Papers))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	if out.Dropped > 0 {
		fmt.Fprintf(w, " (%d untitled records dropped)", out.Dropped)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes the evaluated batch as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Papers)
}
