package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-prospector/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results to return (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableCrossref controls whether the Crossref backend is used.
	EnableCrossref bool `json:"enable_crossref" yaml:"enable_crossref"`

	// EnableSemanticScholar controls whether the Semantic Scholar backend is used.
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// CrossrefMailto is sent to Crossref for polite pool access.
	CrossrefMailto string `json:"crossref_mailto,omitempty" yaml:"crossref_mailto,omitempty"`

	// CrossrefPlusToken is an optional Crossref Plus subscription token.
	CrossrefPlusToken string `json:"crossref_plus_token,omitempty" yaml:"crossref_plus_token,omitempty"`

	// InterBackendDelay is the delay between API calls to different backends.
	InterBackendDelay time.Duration `json:"inter_backend_delay" yaml:"inter_backend_delay"`
}

// ScoringConfig holds every policy knob of the evaluation engine. The
// historical revisions of the scoring rules drifted on some of these
// values; the defaults below are the canonical set.
type ScoringConfig struct {
	// ImpactBase and ImpactLogFactor shape the logarithmic popularity
	// curve: impact = ImpactBase + ln(citations+1) * ImpactLogFactor,
	// clamped to [0, 99].
	ImpactBase      int `json:"impact_base" yaml:"impact_base"`
	ImpactLogFactor int `json:"impact_log_factor" yaml:"impact_log_factor"`

	// PotentialBase is the starting value of the de-biased score.
	PotentialBase int `json:"potential_base" yaml:"potential_base"`

	// EvidenceBonus is added when the title carries an evidentiary keyword.
	EvidenceBonus int `json:"evidence_bonus" yaml:"evidence_bonus"`

	// TeamBonus is added when the author count reaches BigTeamSize.
	TeamBonus   int `json:"team_bonus" yaml:"team_bonus"`
	BigTeamSize int `json:"big_team_size" yaml:"big_team_size"`

	// VolumeLogFactor and VolumePenaltyMax shape the citation-volume
	// penalty: clamp(0, VolumePenaltyMax, ln(citations+1) * VolumeLogFactor).
	VolumeLogFactor  int `json:"volume_log_factor" yaml:"volume_log_factor"`
	VolumePenaltyMax int `json:"volume_penalty_max" yaml:"volume_penalty_max"`

	// LowCitationThreshold and LowReferenceThreshold drive the integrity
	// check: few or unknown references only matter while citations are
	// below LowCitationThreshold.
	LowCitationThreshold  int `json:"low_citation_threshold" yaml:"low_citation_threshold"`
	LowReferenceThreshold int `json:"low_reference_threshold" yaml:"low_reference_threshold"`

	// ObsoleteAge and ObsoleteCitationMax define the obsolete-research
	// override: older than ObsoleteAge years with fewer than
	// ObsoleteCitationMax citations drops to the score floor.
	ObsoleteAge         int `json:"obsolete_age" yaml:"obsolete_age"`
	ObsoleteCitationMax int `json:"obsolete_citation_max" yaml:"obsolete_citation_max"`

	// AmazingThreshold and BubbleThreshold drive classification.
	AmazingThreshold int `json:"amazing_threshold" yaml:"amazing_threshold"`
	BubbleThreshold  int `json:"bubble_threshold" yaml:"bubble_threshold"`

	// EvidenceKeywords is the list matched (case-insensitive substring)
	// against titles. Empty uses the built-in list.
	EvidenceKeywords []string `json:"evidence_keywords,omitempty" yaml:"evidence_keywords,omitempty"`
}

// DefaultScoringConfig returns the canonical scoring constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		ImpactBase:            5,
		ImpactLogFactor:       15,
		PotentialBase:         40,
		EvidenceBonus:         35,
		TeamBonus:             10,
		BigTeamSize:           5,
		VolumeLogFactor:       4,
		VolumePenaltyMax:      40,
		LowCitationThreshold:  5,
		LowReferenceThreshold: 5,
		ObsoleteAge:           10,
		ObsoleteCitationMax:   5,
		AmazingThreshold:      70,
		BubbleThreshold:       30,
	}
}

// LibraryConfig holds settings for the personal library store.
type LibraryConfig struct {
	// LibraryDir is the base directory for the library (contains index/,
	// profile.yaml, last-search.json).
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// MaxResults is the default maximum number of list results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
	Library LibraryConfig `json:"library" yaml:"library"`
}
