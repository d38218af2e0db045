// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package player

// Mission is a fixed discovery goal with a one-time point reward.
type Mission struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Target      int    `json:"target" yaml:"target"`
	Reward      int    `json:"reward" yaml:"reward"`

	progress func(Profile) int
}

// Progress returns the profile's current count toward the target.
func (m Mission) Progress(p Profile) int {
	n := m.progress(p)
	if n > m.Target {
		return m.Target
	}
	return n
}

// Missions returns the fixed mission list.
func Missions() []Mission {
	return []Mission{
		{
			ID:          "first-gem",
			Description: "Discover your first hidden gem",
			Target:      1,
			Reward:      30,
			progress:    func(p Profile) int { return p.GemsFound },
		},
		{
			ID:          "gem-hunter",
			Description: "Discover 5 hidden gems",
			Target:      5,
			Reward:      75,
			progress:    func(p Profile) int { return p.GemsFound },
		},
		{
			ID:          "collector",
			Description: "Collect 5 papers",
			Target:      5,
			Reward:      20,
			progress:    func(p Profile) int { return p.Collected },
		},
		{
			ID:          "curator",
			Description: "Collect 20 papers",
			Target:      20,
			Reward:      50,
			progress:    func(p Profile) int { return p.Collected },
		},
		{
			ID:          "verifier",
			Description: "Review 3 papers",
			Target:      3,
			Reward:      25,
			progress:    func(p Profile) int { return p.Reviews },
		},
	}
}

// CheckMissions pays out any newly completed missions and returns them.
// Already completed missions are never paid twice.
func CheckMissions(p *Profile) []Mission {
	var completed []Mission
	for _, m := range Missions() {
		if p.Completed(m.ID) {
			continue
		}
		if m.progress(*p) >= m.Target {
			p.Points += m.Reward
			p.CompletedMissions = append(p.CompletedMissions, m.ID)
			completed = append(completed, m)
		}
	}
	return completed
}
