// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const exportLimit = 100000

// ExportBibTeX writes the library (or a filtered subset) as BibTeX
// entries to w. Scoring output goes into note fields so the de-biased
// ranking survives the trip into a reference manager.
func (s *Store) ExportBibTeX(ctx context.Context, opts ListOptions, w io.Writer) error {
	opts.MaxResults = exportLimit
	entries, err := s.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	for _, e := range entries {
		fmt.Fprintf(w, "@article{%s,\n", bibKey(e))
		fmt.Fprintf(w, "  title = {%s},\n", bibEscape(e.Title))
		if len(e.Authors) > 0 {
			fmt.Fprintf(w, "  author = {%s},\n", bibEscape(strings.Join(e.Authors, " and ")))
		}
		if e.Journal != "" {
			fmt.Fprintf(w, "  journal = {%s},\n", bibEscape(e.Journal))
		}
		if e.Year > 0 {
			fmt.Fprintf(w, "  year = {%d},\n", e.Year)
		}
		if e.DOI != "" {
			fmt.Fprintf(w, "  doi = {%s},\n", e.DOI)
		}
		fmt.Fprintf(w, "  note = {potential=%d, impact=%d, classification=%s}\n",
			e.PotentialScore, e.ImpactScore, e.Classification)
		fmt.Fprintln(w, "}")
		fmt.Fprintln(w)
	}
	return nil
}

// ExportCSV writes the library (or a filtered subset) as CSV to w.
func (s *Store) ExportCSV(ctx context.Context, opts ListOptions, w io.Writer) error {
	opts.MaxResults = exportLimit
	entries, err := s.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{
		"id", "doi", "title", "authors", "journal", "year",
		"citation_count", "reference_count", "source",
		"impact_score", "potential_score", "bias_penalty",
		"classification", "integrity_status", "risk_reason",
		"is_reviewed", "final_score",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, e := range entries {
		refCount := ""
		if e.ReferenceCount != nil {
			refCount = strconv.Itoa(*e.ReferenceCount)
		}
		finalScore := ""
		if e.IsReviewed {
			finalScore = strconv.Itoa(e.FinalScore)
		}
		record := []string{
			e.ID, e.DOI, e.Title, strings.Join(e.Authors, "; "), e.Journal,
			strconv.Itoa(e.Year), strconv.Itoa(e.CitationCount), refCount,
			e.Source, strconv.Itoa(e.ImpactScore),
			strconv.Itoa(e.PotentialScore), strconv.Itoa(e.BiasPenalty),
			string(e.Classification), string(e.Integrity), e.RiskReason,
			strconv.FormatBool(e.IsReviewed), finalScore,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// bibKey derives a citation key from the first author's family name and
// the year, falling back to the library ID.
func bibKey(e Entry) string {
	if len(e.Authors) == 0 || e.Year == 0 {
		return sanitizeKey(e.ID)
	}
	parts := strings.Fields(e.Authors[0])
	family := parts[len(parts)-1]
	return sanitizeKey(strings.ToLower(family) + strconv.Itoa(e.Year))
}

func sanitizeKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "paper"
	}
	return b.String()
}

func bibEscape(s string) string {
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	return s
}
