// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
)

func TestExportBibTeX(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := evaluatedFixture(t, "10.1000/bib.1", "Efficacy of widget therapy", intPtr(55), 42)
	if err := s.Collect(ctx, p); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var buf bytes.Buffer
	if err := s.ExportBibTeX(ctx, ListOptions{}, &buf); err != nil {
		t.Fatalf("ExportBibTeX: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"@article{", "lovelace",
		"title = {Efficacy of widget therapy}",
		"author = {Ada Lovelace and Charles Babbage}",
		"doi = {10.1000/bib.1}",
		"note = {potential=",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("BibTeX output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	known := evaluatedFixture(t, "10.1/csv.known", "Widget study", intPtr(30), 9)
	unknown := evaluatedFixture(t, "10.1/csv.unknown", "Fragment", nil, 0)
	if err := s.Collect(ctx, known); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if err := s.Collect(ctx, unknown); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var buf bytes.Buffer
	if err := s.ExportCSV(ctx, ListOptions{}, &buf); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing CSV: %v", err)
	}
	if len(records) != 3 { // header + 2 papers
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	header := records[0]
	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("missing column %q", name)
		return -1
	}

	byDOI := map[string][]string{}
	for _, rec := range records[1:] {
		byDOI[rec[col("doi")]] = rec
	}

	if got := byDOI["10.1/csv.known"][col("reference_count")]; got != "30" {
		t.Errorf("known reference count = %q, want 30", got)
	}
	// Unknown reference counts export as empty, not zero.
	if got := byDOI["10.1/csv.unknown"][col("reference_count")]; got != "" {
		t.Errorf("unknown reference count = %q, want empty", got)
	}
	if got := byDOI["10.1/csv.unknown"][col("integrity_status")]; got != "uncertain" {
		t.Errorf("integrity = %q, want uncertain", got)
	}
}
