// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"fmt"
	"math"

	"github.com/pdiddy/paper-prospector/pkg/types"
)

// Re-weighting constants. Recency is worth up to recencyWindow *
// recencyUnit points at age zero; scarcity rewards papers with fewer than
// scarcityCap citations.
const (
	recencyWindow = 5
	recencyUnit   = 10
	scarcityCap   = 30
)

// Weights is the user-supplied vector for custom re-ranking. Each weight
// is a non-negative real; the CLI exposes them as --w-* flags.
type Weights struct {
	Evidence float64 `json:"evidence" yaml:"evidence"`
	Recency  float64 `json:"recency" yaml:"recency"`
	Team     float64 `json:"team" yaml:"team"`
	Scarcity float64 `json:"scarcity" yaml:"scarcity"`
}

// DefaultWeights weighs every dimension equally.
func DefaultWeights() Weights {
	return Weights{Evidence: 1, Recency: 1, Team: 1, Scarcity: 1}
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"evidence": w.Evidence,
		"recency":  w.Recency,
		"team":     w.Team,
		"scarcity": w.Scarcity,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative: %g", name, v)
		}
	}
	return nil
}

// IsDefault reports whether the vector equals DefaultWeights.
func (w Weights) IsDefault() bool {
	return w == DefaultWeights()
}

// CustomScore recombines a completed evaluation's breakdown under a
// user-supplied weight vector. It is a linear re-combination of the
// contributions already computed once, so a user can express "recency
// matters 3x more" without re-running the evaluator. The result is an
// ephemeral ranking key only; it never mutates the potential score and is
// never persisted. The volume penalty is carried through unweighted as a
// baseline correction.
func CustomScore(p types.EvaluatedPaper, w Weights, currentYear int) int {
	recency := (recencyWindow - ageOf(p.Year, currentYear)) * recencyUnit
	if recency < 0 {
		recency = 0
	}

	citations := p.CitationCount
	if citations < 0 {
		citations = 0
	}
	scarcity := clamp(0, scarcityCap, scarcityCap-citations)

	score := float64(p.Breakdown.Evidence)*w.Evidence +
		float64(p.Breakdown.Team)*w.Team +
		float64(recency)*w.Recency +
		float64(scarcity)*w.Scarcity +
		float64(p.Breakdown.VolumePenalty)
	return int(math.Round(score))
}
