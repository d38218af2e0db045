// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"fmt"
	"math"

	"github.com/pdiddy/paper-prospector/pkg/types"
)

// forceApproveBonus is the fixed bonus for force-approving a paper the
// integrity check flagged, in place of the proportional deep-verification
// bonus.
const forceApproveBonus = 10

// Review applies the one-time user verification to a paper and returns
// the updated copy. Deep verification re-adds a bonus of half the
// potential score; force approval of a flagged (uncertain/suspected)
// paper adds a small fixed bonus instead. Either way the paper is
// reclassified to verified_user.
//
// The transition is idempotent once applied: reviewing an already
// reviewed paper returns it unchanged.
func Review(p types.EvaluatedPaper, force bool) (types.EvaluatedPaper, error) {
	if p.IsReviewed {
		return p, nil
	}
	if p.IsFlagged() && !force {
		return p, fmt.Errorf("paper %s is flagged (%s): use force approval to verify it anyway", p.DOI, p.Integrity)
	}

	bonus := int(math.Round(float64(p.PotentialScore) * 0.5))
	if p.IsFlagged() {
		bonus = forceApproveBonus
	}

	p.IsReviewed = true
	p.FinalScore = p.PotentialScore + bonus
	p.Classification = types.ClassVerifiedUser
	return p, nil
}
