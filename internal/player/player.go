// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package player tracks the discovery game state: points, level, and
// mission progress. The profile is plain YAML on disk; all arithmetic
// lives here so the CLI and library stay score-agnostic.
package player

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-prospector/pkg/types"
)

const profileFile = "profile.yaml"

// pointsPerLevel is the flat level curve: level = points/100 + 1.
const pointsPerLevel = 100

// amazingBonus rewards collecting a hidden gem on top of the base points.
const amazingBonus = 15

// reviewPoints is awarded for each completed review.
const reviewPoints = 5

// Profile is the persistent game state for a single user.
type Profile struct {
	Points    int `json:"points" yaml:"points"`
	Collected int `json:"collected" yaml:"collected"`
	GemsFound int `json:"gems_found" yaml:"gems_found"`
	Reviews   int `json:"reviews" yaml:"reviews"`

	// CompletedMissions lists mission IDs whose reward was already paid,
	// so completing a mission is a one-time event.
	CompletedMissions []string `json:"completed_missions,omitempty" yaml:"completed_missions,omitempty"`
}

// Level returns the current level, starting at 1.
func (p Profile) Level() int {
	return p.Points/pointsPerLevel + 1
}

// Completed reports whether the mission reward was already paid.
func (p Profile) Completed(missionID string) bool {
	for _, id := range p.CompletedMissions {
		if id == missionID {
			return true
		}
	}
	return false
}

// AwardCollect updates the profile for a collected paper and returns the
// points awarded: a tenth of the potential score, plus a bonus for
// hidden gems.
func (p *Profile) AwardCollect(paper types.EvaluatedPaper) int {
	points := int(math.Round(float64(paper.PotentialScore) / 10))
	if paper.Classification == types.ClassAmazing {
		points += amazingBonus
		p.GemsFound++
	}
	p.Points += points
	p.Collected++
	return points
}

// AwardReview updates the profile for a completed review and returns the
// points awarded.
func (p *Profile) AwardReview() int {
	p.Points += reviewPoints
	p.Reviews++
	return reviewPoints
}

// Load reads the profile from libraryDir/profile.yaml. A missing file
// yields a fresh profile.
func Load(libraryDir string) (Profile, error) {
	data, err := os.ReadFile(filepath.Join(libraryDir, profileFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, nil
		}
		return Profile{}, fmt.Errorf("reading profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return p, nil
}

// Save writes the profile to libraryDir/profile.yaml.
func Save(libraryDir string, p Profile) error {
	if err := os.MkdirAll(libraryDir, 0o755); err != nil {
		return fmt.Errorf("creating library directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	return os.WriteFile(filepath.Join(libraryDir, profileFile), data, 0o644)
}
