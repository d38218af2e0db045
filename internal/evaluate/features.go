// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evaluate implements the paper scoring engine: feature
// extraction, the dual Impact/Potential score computation, topic-exposure
// scaling, classification, custom re-weighting, and the one-time review
// override. Every function here is pure; data-quality problems are
// encoded in the output rather than returned as errors.
package evaluate

import (
	"strings"

	"github.com/pdiddy/paper-prospector/pkg/types"
)

// defaultEvidenceKeywords are matched case-insensitively as substrings of
// the title. Substring matching is deliberately loose ("synthesis" matches
// "photosynthesis"); override via ScoringConfig.EvidenceKeywords.
var defaultEvidenceKeywords = []string{
	"in vivo",
	"in vitro",
	"clinical",
	"trial",
	"randomized",
	"efficacy",
	"synthesis",
	"characterization",
	"experiment",
	"empirical",
	"cohort",
	"assay",
	"biomarker",
	"crystal",
	"fabrication",
	"measurement",
	"validation",
}

const (
	reasonMissingMetadata = "missing metadata"
	reasonFewReferences   = "insufficient references"
)

// FeatureSet holds the signals the evaluator derives from a raw record.
type FeatureSet struct {
	// HasEvidence is true when the title carries an evidentiary keyword.
	HasEvidence bool

	// IsBigTeam is true when the author count reaches the big-team size.
	IsBigTeam bool

	// Age is currentYear - publicationYear. A record without a year is
	// treated as five years old.
	Age int

	Integrity  types.IntegrityStatus
	RiskReason string
}

// ExtractFeatures derives a FeatureSet from a raw record. currentYear is
// passed in rather than read from the clock so evaluation stays a pure
// function of its inputs.
func ExtractFeatures(meta types.PaperMeta, cfg types.ScoringConfig, currentYear int) FeatureSet {
	bigTeam := cfg.BigTeamSize
	if bigTeam <= 0 {
		bigTeam = 5
	}

	fs := FeatureSet{
		HasEvidence: hasEvidence(meta.Title, cfg.EvidenceKeywords),
		IsBigTeam:   meta.AuthorCount() >= bigTeam,
		Age:         ageOf(meta.Year, currentYear),
		Integrity:   types.IntegrityValid,
	}

	// A paper with few or unknown references is likely an abstract,
	// retraction notice, or other non-substantive entry. Once it has
	// accumulated citations the community has vetted it, so the check
	// only fires below the low-citation threshold.
	citations := meta.CitationCount
	if citations < 0 {
		citations = 0
	}
	switch {
	case meta.ReferenceCount == nil && citations < cfg.LowCitationThreshold:
		fs.Integrity = types.IntegrityUncertain
		fs.RiskReason = reasonMissingMetadata
	case meta.ReferenceCount != nil &&
		*meta.ReferenceCount < cfg.LowReferenceThreshold &&
		citations < cfg.LowCitationThreshold:
		fs.Integrity = types.IntegritySuspected
		fs.RiskReason = reasonFewReferences
	}

	return fs
}

// ageOf returns currentYear - year, treating a missing year (0) as five
// years old and clamping the result at zero for future-dated records.
func ageOf(year, currentYear int) int {
	if year == 0 {
		year = currentYear - 5
	}
	age := currentYear - year
	if age < 0 {
		age = 0
	}
	return age
}

// hasEvidence reports whether the lower-cased title contains any keyword.
func hasEvidence(title string, keywords []string) bool {
	if len(keywords) == 0 {
		keywords = defaultEvidenceKeywords
	}
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
