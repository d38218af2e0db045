// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-prospector
// pipeline: raw bibliographic records, evaluated papers, and stage
// configuration.
package types

// PaperMeta is a raw bibliographic record as returned by a metadata
// backend. It is immutable input to the evaluator. Absent numeric fields
// keep their zero value except ReferenceCount, where nil means "unknown"
// and is handled as a state distinct from zero.
type PaperMeta struct {
	// DOI is the canonical identifier when the source provides one.
	DOI string `json:"doi" yaml:"doi"`

	// Title is the paper title. Records without a usable title are
	// filtered out before evaluation.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Journal is the container or venue title, possibly empty.
	Journal string `json:"journal" yaml:"journal"`

	// Year is the publication year, 0 when the source omits it.
	Year int `json:"year" yaml:"year"`

	// CitationCount is the number of citations the source reports.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// ReferenceCount is the number of references the paper itself makes.
	// nil means the source did not report it, which is not the same as 0.
	ReferenceCount *int `json:"reference_count,omitempty" yaml:"reference_count,omitempty"`

	// Source identifies which backend produced the record
	// (e.g. "crossref", "semantic_scholar").
	Source string `json:"source" yaml:"source"`
}

// AuthorCount returns the number of authors, defaulting to 1 when the
// source reported none.
func (m PaperMeta) AuthorCount() int {
	if len(m.Authors) == 0 {
		return 1
	}
	return len(m.Authors)
}

// Classification is the categorical tag summarizing a paper's scoring
// outcome.
type Classification string

const (
	// ClassAmazing marks a hidden gem: high intrinsic value, currently
	// under-recognized.
	ClassAmazing Classification = "amazing"

	// ClassBubble marks an over-hyped paper whose impact far exceeds its
	// intrinsic value.
	ClassBubble Classification = "bubble"

	// ClassBad marks a paper whose metadata failed the integrity check.
	ClassBad Classification = "bad"

	// ClassNormal is the default category.
	ClassNormal Classification = "normal"

	// ClassVerifiedUser marks a paper the user verified by hand. Set only
	// by the review action, never by the evaluator.
	ClassVerifiedUser Classification = "verified_user"
)

// IntegrityStatus is the data-quality flag, an axis independent from
// Classification.
type IntegrityStatus string

const (
	IntegrityValid     IntegrityStatus = "valid"
	IntegrityUncertain IntegrityStatus = "uncertain"
	IntegritySuspected IntegrityStatus = "suspected"
)

// ScoreBreakdown itemizes the signed contributions that make up the
// potential score. Base + Evidence + Team + VolumePenalty +
// IntegrityPenalty equals the potential score before clamping.
type ScoreBreakdown struct {
	Base             int `json:"base" yaml:"base"`
	Evidence         int `json:"evidence" yaml:"evidence"`
	Team             int `json:"team" yaml:"team"`
	VolumePenalty    int `json:"volume_penalty" yaml:"volume_penalty"`
	IntegrityPenalty int `json:"integrity_penalty" yaml:"integrity_penalty"`
}

// Sum returns the pre-clamp potential score the breakdown represents.
func (b ScoreBreakdown) Sum() int {
	return b.Base + b.Evidence + b.Team + b.VolumePenalty + b.IntegrityPenalty
}

// EvaluatedPaper is a PaperMeta extended with scoring output. It is
// created once per search result and treated as immutable afterwards,
// except for the one-time review mutation (IsReviewed, FinalScore,
// possible reclassification to verified_user).
type EvaluatedPaper struct {
	PaperMeta `yaml:",inline"`

	// ImpactScore is the popularity-based score in [0, 99], monotonic
	// non-decreasing in citation count.
	ImpactScore int `json:"impact_score" yaml:"impact_score"`

	// PotentialScore is the de-biased score in [5, 95].
	PotentialScore int `json:"potential_score" yaml:"potential_score"`

	// BiasPenalty is ImpactScore - PotentialScore. Positive means
	// over-exposed, negative means undervalued.
	BiasPenalty int `json:"bias_penalty" yaml:"bias_penalty"`

	Classification Classification  `json:"classification" yaml:"classification"`
	Integrity      IntegrityStatus `json:"integrity_status" yaml:"integrity_status"`

	// RiskReason explains a non-valid integrity status or the obsolete
	// override, empty otherwise.
	RiskReason string `json:"risk_reason" yaml:"risk_reason"`

	Breakdown ScoreBreakdown `json:"score_breakdown" yaml:"score_breakdown"`

	// IsReviewed is set by the one-time review action.
	IsReviewed bool `json:"is_reviewed" yaml:"is_reviewed"`

	// FinalScore is absent (0) until the paper is reviewed.
	FinalScore int `json:"final_score,omitempty" yaml:"final_score,omitempty"`
}

// IsFlagged reports whether the paper carries a non-valid integrity status.
func (p EvaluatedPaper) IsFlagged() bool {
	return p.Integrity != IntegrityValid
}
