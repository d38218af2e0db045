// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-prospector/pkg/types"
)

func TestAwardCollect(t *testing.T) {
	var p Profile

	normal := types.EvaluatedPaper{PotentialScore: 42, Classification: types.ClassNormal}
	got := p.AwardCollect(normal)
	assert.Equal(t, 4, got)
	assert.Equal(t, 1, p.Collected)
	assert.Equal(t, 0, p.GemsFound)

	gem := types.EvaluatedPaper{PotentialScore: 75, Classification: types.ClassAmazing}
	got = p.AwardCollect(gem)
	assert.Equal(t, 8+amazingBonus, got)
	assert.Equal(t, 1, p.GemsFound)
	assert.Equal(t, 4+8+amazingBonus, p.Points)
}

func TestLevelCurve(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Profile{Points: tt.points}.Level(), "points=%d", tt.points)
	}
}

func TestCheckMissionsPaysOnce(t *testing.T) {
	p := Profile{GemsFound: 1}

	completed := CheckMissions(&p)
	require.Len(t, completed, 1)
	assert.Equal(t, "first-gem", completed[0].ID)
	assert.Equal(t, 30, p.Points)

	// Running the check again must not pay the reward twice.
	completed = CheckMissions(&p)
	assert.Empty(t, completed)
	assert.Equal(t, 30, p.Points)
}

func TestCheckMissionsMultiple(t *testing.T) {
	p := Profile{Collected: 5, GemsFound: 5}

	completed := CheckMissions(&p)
	ids := make([]string, len(completed))
	for i, m := range completed {
		ids[i] = m.ID
	}
	assert.ElementsMatch(t, []string{"first-gem", "gem-hunter", "collector"}, ids)
	assert.Equal(t, 30+75+20, p.Points)
}

func TestMissionProgressCapped(t *testing.T) {
	m := Missions()[0] // first-gem, target 1
	assert.Equal(t, 1, m.Progress(Profile{GemsFound: 7}))
	assert.Equal(t, 0, m.Progress(Profile{}))
}

func TestProfileSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	p := Profile{
		Points:            123,
		Collected:         7,
		GemsFound:         2,
		Reviews:           1,
		CompletedMissions: []string{"first-gem"},
	}
	require.NoError(t, Save(dir, p))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestLoadMissingProfileIsFresh(t *testing.T) {
	got, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Profile{}, got)
}
