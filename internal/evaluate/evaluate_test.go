// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"reflect"
	"testing"

	"github.com/pdiddy/paper-prospector/pkg/types"
)

const testYear = 2026

func intPtr(n int) *int { return &n }

func testMeta() types.PaperMeta {
	return types.PaperMeta{
		DOI:            "10.1000/test.1",
		Title:          "A Study of Something",
		Authors:        []string{"A. Author"},
		Year:           testYear - 3,
		CitationCount:  50,
		ReferenceCount: intPtr(30),
		Source:         "crossref",
	}
}

// --- Impact score ---

func TestImpactScoreBoundsAndMonotonic(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	prev := -1
	for _, citations := range []int{0, 1, 2, 5, 10, 50, 100, 1000, 5000, 100000} {
		meta := testMeta()
		meta.CitationCount = citations
		p := EvaluateRecord(meta, 1.0, cfg, testYear)

		if p.ImpactScore < 0 || p.ImpactScore > 99 {
			t.Errorf("citations=%d: impact %d out of [0,99]", citations, p.ImpactScore)
		}
		if p.ImpactScore < prev {
			t.Errorf("citations=%d: impact %d decreased from %d", citations, p.ImpactScore, prev)
		}
		prev = p.ImpactScore
	}
}

func TestImpactScoreZeroCitations(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	meta := testMeta()
	meta.CitationCount = 0
	p := EvaluateRecord(meta, 1.0, cfg, testYear)

	// log(0+1) = 0, so impact collapses to the base constant.
	if p.ImpactScore != cfg.ImpactBase {
		t.Errorf("impact = %d, want %d", p.ImpactScore, cfg.ImpactBase)
	}
}

func TestNegativeCitationsClampedToZero(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	meta := testMeta()
	meta.CitationCount = -3
	p := EvaluateRecord(meta, 1.0, cfg, testYear)

	meta.CitationCount = 0
	want := EvaluateRecord(meta, 1.0, cfg, testYear)
	if p.ImpactScore != want.ImpactScore || p.PotentialScore != want.PotentialScore {
		t.Errorf("negative citations not treated as zero: got (%d,%d), want (%d,%d)",
			p.ImpactScore, p.PotentialScore, want.ImpactScore, want.PotentialScore)
	}
}

// --- Potential score and breakdown ---

func TestPotentialScoreBounds(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	metas := []types.PaperMeta{
		testMeta(),
		{Title: "Untitled-ish", CitationCount: 0},
		{Title: "Clinical trial of X", Authors: make([]string, 12), Year: testYear, CitationCount: 99999, ReferenceCount: intPtr(80)},
		{Title: "Old note", Year: testYear - 40, CitationCount: 100000, ReferenceCount: intPtr(2)},
	}
	for i, meta := range metas {
		for _, mult := range []float64{1.0, 1.2, 1.5, 2.0} {
			p := EvaluateRecord(meta, mult, cfg, testYear)
			if p.PotentialScore < 5 || p.PotentialScore > 95 {
				t.Errorf("meta %d mult %.1f: potential %d out of [5,95]", i, mult, p.PotentialScore)
			}
		}
	}
}

func TestBiasPenaltyIdentity(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	for _, citations := range []int{0, 3, 40, 5000} {
		meta := testMeta()
		meta.CitationCount = citations
		p := EvaluateRecord(meta, 1.5, cfg, testYear)
		if p.BiasPenalty != p.ImpactScore-p.PotentialScore {
			t.Errorf("citations=%d: bias %d != impact %d - potential %d",
				citations, p.BiasPenalty, p.ImpactScore, p.PotentialScore)
		}
	}
}

func TestBreakdownSumMatchesPotential(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	metas := []types.PaperMeta{
		testMeta(),
		{Title: "Empirical cohort study", Authors: make([]string, 6), Year: testYear - 1, CitationCount: 0, ReferenceCount: intPtr(45)},
		{Title: "No refs", Year: testYear - 2, CitationCount: 1},                                       // uncertain
		{Title: "Stale", Year: testYear - 20, CitationCount: 2, ReferenceCount: intPtr(25)},            // obsolete
		{Title: "Hyped", Year: testYear - 8, CitationCount: 200000, ReferenceCount: intPtr(60)},        // heavy volume penalty
	}
	for i, meta := range metas {
		p := EvaluateRecord(meta, 2.0, cfg, testYear)
		want := clamp(5, 95, p.Breakdown.Sum())
		if p.PotentialScore != want {
			t.Errorf("meta %d: potential %d, breakdown sums to %d (clamped %d)",
				i, p.PotentialScore, p.Breakdown.Sum(), want)
		}
	}
}

// --- Override paths ---

func TestIntegrityFloorForcesScoreAndReason(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	meta := types.PaperMeta{
		Title:         "Fragment without references",
		Year:          testYear - 1,
		CitationCount: 2,
	}
	p := EvaluateRecord(meta, 1.0, cfg, testYear)

	if p.Integrity != types.IntegrityUncertain {
		t.Fatalf("integrity = %s, want uncertain", p.Integrity)
	}
	if p.PotentialScore != 5 {
		t.Errorf("potential = %d, want floor 5", p.PotentialScore)
	}
	if p.RiskReason == "" {
		t.Error("risk reason should be non-empty for flagged paper")
	}
	if p.Classification != types.ClassBad {
		t.Errorf("classification = %s, want bad (integrity branch precedence)", p.Classification)
	}
}

func TestObsoleteFloorIndependentOfIntegrity(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	meta := types.PaperMeta{
		Title:          "Forgotten result",
		Year:           testYear - 15,
		CitationCount:  1,
		ReferenceCount: intPtr(40),
	}
	p := EvaluateRecord(meta, 1.0, cfg, testYear)

	if p.Integrity != types.IntegrityValid {
		t.Fatalf("integrity = %s, want valid", p.Integrity)
	}
	if p.PotentialScore != 5 {
		t.Errorf("potential = %d, want obsolete floor 5", p.PotentialScore)
	}
	if p.RiskReason != "obsolete research" {
		t.Errorf("risk reason = %q, want \"obsolete research\"", p.RiskReason)
	}
	if p.Classification != types.ClassNormal {
		t.Errorf("classification = %s, want normal", p.Classification)
	}
}

// --- Classification scenarios ---

func TestHiddenGemScenario(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	meta := types.PaperMeta{
		Title:          "Clinical efficacy of a novel compound",
		Authors:        []string{"A", "B"},
		Year:           testYear - 1,
		CitationCount:  0,
		ReferenceCount: intPtr(35),
	}
	p := EvaluateRecord(meta, 1.0, cfg, testYear)

	// Evidence bonus applies, volume penalty is zero, impact collapses to
	// its base: a strongly negative bias penalty.
	if p.PotentialScore <= cfg.AmazingThreshold {
		t.Fatalf("potential = %d, want > %d", p.PotentialScore, cfg.AmazingThreshold)
	}
	if p.BiasPenalty >= 0 {
		t.Fatalf("bias penalty = %d, want negative", p.BiasPenalty)
	}
	if p.Classification != types.ClassAmazing {
		t.Errorf("classification = %s, want amazing", p.Classification)
	}
}

func TestBubbleScenario(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	meta := types.PaperMeta{
		Title:          "A survey",
		Authors:        []string{"A"},
		Year:           testYear - 1,
		CitationCount:  5000,
		ReferenceCount: intPtr(120),
	}
	p := EvaluateRecord(meta, 2.0, cfg, testYear)

	if p.ImpactScore != 99 {
		t.Errorf("impact = %d, want 99 (clamped)", p.ImpactScore)
	}
	if p.BiasPenalty <= cfg.BubbleThreshold {
		t.Fatalf("bias penalty = %d, want > %d", p.BiasPenalty, cfg.BubbleThreshold)
	}
	if p.Classification != types.ClassBubble {
		t.Errorf("classification = %s, want bubble", p.Classification)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	meta := testMeta()
	a := EvaluateRecord(meta, 1.2, cfg, testYear)
	b := EvaluateRecord(meta, 1.2, cfg, testYear)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different evaluations:\n%+v\n%+v", a, b)
	}
}

func TestRecencyDampensVolumePenalty(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	meta := testMeta()
	meta.CitationCount = 5000

	penalties := make(map[string]int)
	for name, year := range map[string]int{
		"recent": testYear - 1,
		"mid":    testYear - 4,
		"old":    testYear - 9,
	} {
		meta.Year = year
		p := EvaluateRecord(meta, 1.0, cfg, testYear)
		penalties[name] = -p.Breakdown.VolumePenalty
	}

	if !(penalties["recent"] < penalties["mid"] && penalties["mid"] < penalties["old"]) {
		t.Errorf("volume penalty should grow with age: %+v", penalties)
	}
}
