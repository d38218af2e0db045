// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"testing"

	"github.com/pdiddy/paper-prospector/pkg/types"
)

func TestHasEvidenceKeywords(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"plain keyword", "A randomized trial of X", true},
		{"case insensitive", "CLINICAL outcomes in Y", true},
		{"substring inside larger word", "Photosynthesis pathways", true},
		{"no keyword", "On the nature of things", false},
		{"empty title", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasEvidence(tt.title, nil); got != tt.want {
				t.Errorf("hasEvidence(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestHasEvidenceCustomKeywords(t *testing.T) {
	if !hasEvidence("Quantum widgets", []string{"widget"}) {
		t.Error("custom keyword list should override the default")
	}
	if hasEvidence("A randomized trial", []string{"widget"}) {
		t.Error("default keywords should not apply when a custom list is set")
	}
}

func TestBigTeamBoundary(t *testing.T) {
	cfg := types.DefaultScoringConfig()

	meta := types.PaperMeta{Title: "T", Authors: make([]string, 4), ReferenceCount: intPtr(20), CitationCount: 10}
	if ExtractFeatures(meta, cfg, testYear).IsBigTeam {
		t.Error("4 authors should not be a big team")
	}
	meta.Authors = make([]string, 5)
	if !ExtractFeatures(meta, cfg, testYear).IsBigTeam {
		t.Error("5 authors should be a big team")
	}
}

func TestAgeDefaults(t *testing.T) {
	tests := []struct {
		name string
		year int
		want int
	}{
		{"known year", testYear - 3, 3},
		{"missing year treated as five years old", 0, 5},
		{"future year clamps to zero", testYear + 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := types.PaperMeta{Title: "T", Year: tt.year, CitationCount: 10, ReferenceCount: intPtr(20)}
			fs := ExtractFeatures(meta, types.DefaultScoringConfig(), testYear)
			if fs.Age != tt.want {
				t.Errorf("age = %d, want %d", fs.Age, tt.want)
			}
		})
	}
}

func TestIntegrityDetermination(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	tests := []struct {
		name       string
		refs       *int
		citations  int
		wantStatus types.IntegrityStatus
		wantReason string
	}{
		{"unknown refs, low citations", nil, 2, types.IntegrityUncertain, "missing metadata"},
		{"unknown refs, vetted by citations", nil, 40, types.IntegrityValid, ""},
		{"few refs, low citations", intPtr(2), 1, types.IntegritySuspected, "insufficient references"},
		{"few refs, vetted by citations", intPtr(2), 100, types.IntegrityValid, ""},
		{"zero refs is not unknown", intPtr(0), 1, types.IntegritySuspected, "insufficient references"},
		{"plenty of refs", intPtr(35), 0, types.IntegrityValid, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := types.PaperMeta{Title: "T", Year: testYear - 1, CitationCount: tt.citations, ReferenceCount: tt.refs}
			fs := ExtractFeatures(meta, cfg, testYear)
			if fs.Integrity != tt.wantStatus {
				t.Errorf("integrity = %s, want %s", fs.Integrity, tt.wantStatus)
			}
			if fs.RiskReason != tt.wantReason {
				t.Errorf("reason = %q, want %q", fs.RiskReason, tt.wantReason)
			}
		})
	}
}
