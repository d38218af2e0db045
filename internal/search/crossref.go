// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/paper-prospector/internal/httputil"
	"github.com/pdiddy/paper-prospector/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

const crossrefSelect = "DOI,title,author,container-title,issued,is-referenced-by-count,reference-count"

// CrossrefBackend queries the Crossref REST API. It doubles as the
// ExposureSource: a rows=0 query yields the topic's total hit count.
type CrossrefBackend struct {
	Client *http.Client
	// Mailto is sent for polite pool access.
	Mailto string
	// PlusToken is an optional Crossref Plus subscription token.
	PlusToken string
}

// Name returns the backend identifier.
func (b *CrossrefBackend) Name() string { return "crossref" }

// Search queries the Crossref works endpoint and returns raw records.
func (b *CrossrefBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.PaperMeta, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	msg, err := b.fetch(ctx, query, maxResults, cfg)
	if err != nil {
		return nil, err
	}

	var records []types.PaperMeta
	for _, item := range msg.Items {
		rec := types.PaperMeta{
			DOI:            item.DOI,
			Title:          firstOf(item.Title),
			Journal:        firstOf(item.ContainerTitle),
			CitationCount:  item.IsReferencedByCount,
			ReferenceCount: item.ReferenceCount,
			Source:         "crossref",
		}

		for _, a := range item.Author {
			name := strings.TrimSpace(a.Given + " " + a.Family)
			if name != "" {
				rec.Authors = append(rec.Authors, name)
			}
		}

		if len(item.Issued.DateParts) > 0 && len(item.Issued.DateParts[0]) > 0 {
			rec.Year = item.Issued.DateParts[0][0]
		}

		records = append(records, rec)
	}
	return records, nil
}

// TotalHits runs a count-only query (rows=0) and returns the number of
// works matching the topic.
func (b *CrossrefBackend) TotalHits(ctx context.Context, query string, cfg types.SearchConfig) (int, error) {
	msg, err := b.fetch(ctx, query, 0, cfg)
	if err != nil {
		return 0, err
	}
	return msg.TotalResults, nil
}

func (b *CrossrefBackend) fetch(ctx context.Context, query string, rows int, cfg types.SearchConfig) (*crossrefMessage, error) {
	params := url.Values{
		"query": {query},
		"rows":  {fmt.Sprintf("%d", rows)},
	}
	if rows > 0 {
		params.Set("select", crossrefSelect)
	}
	if b.Mailto != "" {
		params.Set("mailto", b.Mailto)
	}

	reqURL := crossrefAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if b.PlusToken != "" {
		req.Header.Set("Crossref-Plus-API-Token", "Bearer "+b.PlusToken)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing Crossref response: %w", err)
	}
	return &cr.Message, nil
}

func firstOf(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Status  string          `json:"status"`
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	TotalResults int            `json:"total-results"`
	Items        []crossrefWork `json:"items"`
}

type crossrefWork struct {
	DOI                 string           `json:"DOI"`
	Title               []string         `json:"title"`
	Author              []crossrefAuthor `json:"author"`
	ContainerTitle      []string         `json:"container-title"`
	Issued              crossrefDate     `json:"issued"`
	IsReferencedByCount int              `json:"is-referenced-by-count"`
	// ReferenceCount stays nil when Crossref omits the field, which the
	// integrity check treats as "unknown", not zero.
	ReferenceCount *int `json:"reference-count"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}
