// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"math"

	"github.com/pdiddy/paper-prospector/pkg/types"
)

// Score bounds. The potential floor doubles as the forced score for
// flagged and obsolete papers.
const (
	impactMin    = 0
	impactMax    = 99
	potentialMin = 5
	potentialMax = 95
)

const reasonObsolete = "obsolete research"

// Evaluate computes the dual Impact/Potential scores for a single record
// and classifies it. It is a pure function: the same record, features,
// multiplier, and config always produce the same EvaluatedPaper. It never
// fails on data-quality problems; those surface as integrity status and
// risk reason in the output.
func Evaluate(meta types.PaperMeta, fs FeatureSet, topicMultiplier float64, cfg types.ScoringConfig) types.EvaluatedPaper {
	citations := meta.CitationCount
	if citations < 0 {
		// log() of a negative argument is undefined; the precondition is
		// non-negative counts, so clamp rather than raise.
		citations = 0
	}
	logCitations := math.Log(float64(citations) + 1)

	impact := clamp(impactMin, impactMax,
		int(math.Round(float64(cfg.ImpactBase)+logCitations*float64(cfg.ImpactLogFactor))))

	breakdown := types.ScoreBreakdown{Base: cfg.PotentialBase}
	if fs.HasEvidence {
		breakdown.Evidence = cfg.EvidenceBonus
	}
	if fs.IsBigTeam {
		breakdown.Team = cfg.TeamBonus
	}

	// Volume penalty: a logarithmic citation discount, dampened for
	// recent papers that have not yet been over-mined, then scaled by
	// topic saturation.
	rawPenalty := float64(clamp(0, cfg.VolumePenaltyMax,
		int(math.Round(logCitations*float64(cfg.VolumeLogFactor)))))
	switch {
	case fs.Age <= 2:
		rawPenalty *= 0.1
	case fs.Age <= 5:
		rawPenalty *= 0.5
	}
	if topicMultiplier <= 0 {
		topicMultiplier = 1.0
	}
	breakdown.VolumePenalty = -int(math.Round(rawPenalty * topicMultiplier))

	preClamp := breakdown.Sum()

	riskReason := fs.RiskReason
	switch {
	case fs.Integrity != types.IntegrityValid:
		breakdown.IntegrityPenalty = potentialMin - preClamp
		preClamp = potentialMin
	case fs.Age > cfg.ObsoleteAge && citations < cfg.ObsoleteCitationMax:
		// Obsolete, uncited pattern. Distinct from the integrity check:
		// the status stays valid but the score drops to the floor.
		breakdown.IntegrityPenalty = potentialMin - preClamp
		preClamp = potentialMin
		riskReason = reasonObsolete
	}

	potential := clamp(potentialMin, potentialMax, preClamp)

	p := types.EvaluatedPaper{
		PaperMeta:      meta,
		ImpactScore:    impact,
		PotentialScore: potential,
		BiasPenalty:    impact - potential,
		Integrity:      fs.Integrity,
		RiskReason:     riskReason,
		Breakdown:      breakdown,
	}
	p.Classification = classify(p.PotentialScore, p.BiasPenalty, p.Integrity, cfg)
	return p
}

// EvaluateRecord extracts features and evaluates in one step.
func EvaluateRecord(meta types.PaperMeta, topicMultiplier float64, cfg types.ScoringConfig, currentYear int) types.EvaluatedPaper {
	return Evaluate(meta, ExtractFeatures(meta, cfg, currentYear), topicMultiplier, cfg)
}

// classify maps scoring output to a category. First match wins: the
// hidden-gem check precedes the bubble check, which precedes the
// integrity check.
func classify(potential, biasPenalty int, integrity types.IntegrityStatus, cfg types.ScoringConfig) types.Classification {
	switch {
	case potential > cfg.AmazingThreshold && biasPenalty < 0:
		return types.ClassAmazing
	case biasPenalty > cfg.BubbleThreshold:
		return types.ClassBubble
	case integrity != types.IntegrityValid:
		return types.ClassBad
	default:
		return types.ClassNormal
	}
}

func clamp(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
