package charts

import (
	"fmt"
	"testing"

	"github.com/jonathan/career-pathway/internal/skills"
	"github.com/jonathan/career-pathway/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry() *skills.Registry {
	return skills.Reconcile(
		[]types.FrameworkSkillRecord{
			{Name: "Programming", Framework: "SFIA 9", Level: "Level 4"},
			{Name: "Testing", Framework: "SFIA 9", Level: "Level 3"},
			{Name: "Stakeholder management", Framework: "SFIA 9", Level: "Level 5"},
			{Name: "Data literacy", Framework: "DigComp 2.2", Level: "Level 6"},
		},
		[]types.GapRecord{
			{Skill: "Stakeholder management", Importance: "high", Description: "No exec exposure", Framework: "SFIA 9"},
		},
		[]types.StrengthRecord{
			{Skill: "Programming", Level: "Level 5", Relevance: "very high", Framework: "SFIA 9"},
			{Skill: "Communication", Level: "Proficient", Relevance: "high"},
		},
	)
}

func TestBuild_SFIAScope(t *testing.T) {
	reg := sampleRegistry()

	proj, err := Build(reg.Scope("SFIA 9"), "SFIA 9", DefaultScales())
	require.NoError(t, err)

	assert.Equal(t, "SFIA 9", proj.Framework)
	assert.Equal(t, 7, proj.Scale)
	assert.False(t, proj.Empty)

	require.Len(t, proj.Bar, 3)
	assert.Equal(t, types.LevelBar{Skill: "Programming", RequiredLevel: 4, UserLevel: 5, ValidatedLevel: 5}, proj.Bar[0])
	assert.Equal(t, types.LevelBar{Skill: "Testing", RequiredLevel: 3}, proj.Bar[1])
	assert.Equal(t, types.LevelBar{Skill: "Stakeholder management", RequiredLevel: 5}, proj.Bar[2])

	assert.Equal(t, types.PieCounts{RequiredOnly: 2, Validated: 1}, proj.Pie)
	assert.Equal(t, 3, proj.Pie.Total())

	require.Len(t, proj.Radar, 3)
	assert.Equal(t, "Stakeholder management", proj.Radar[0].Skill)
	assert.Equal(t, "Programming", proj.Radar[1].Skill)
	assert.Equal(t, "Testing", proj.Radar[2].Skill)
}

func TestBuild_GeneralScopeUsesItsOwnScale(t *testing.T) {
	reg := sampleRegistry()

	proj, err := Build(reg.Scope("General"), "General", DefaultScales())
	require.NoError(t, err)

	assert.Equal(t, 5, proj.Scale)
	require.Len(t, proj.Bar, 1)
	assert.Equal(t, types.LevelBar{Skill: "Communication", UserLevel: 4, ValidatedLevel: 4}, proj.Bar[0])
	assert.Equal(t, types.PieCounts{Validated: 1}, proj.Pie)
}

func TestBuild_EmptyScope(t *testing.T) {
	proj, err := Build(nil, "DigComp 2.2", DefaultScales())
	require.NoError(t, err)

	assert.True(t, proj.Empty)
	assert.NotNil(t, proj.Bar)
	assert.Empty(t, proj.Bar)
	assert.Empty(t, proj.Radar)
	assert.Equal(t, 0, proj.Pie.Total())
}

func TestBuild_MissingScaleIsAnError(t *testing.T) {
	_, err := Build(nil, "ESCO", DefaultScales())
	require.Error(t, err)
	assert.IsType(t, &ScaleError{}, err)
}

func TestBuildPie_SumsToScopeSize(t *testing.T) {
	entries := []types.UnifiedSkillEntry{
		{Required: true},
		{Required: true, UserHas: true, Validated: true},
		{UserHas: true},
		{},
		{UserHas: true, Validated: true},
	}

	pie := BuildPie(entries)
	assert.Equal(t, types.PieCounts{RequiredOnly: 2, Validated: 2, UserHasOnly: 1}, pie)
	assert.Equal(t, len(entries), pie.Total())
}

func TestBuildRadar_LimitedToTopEight(t *testing.T) {
	gaps := make([]types.GapRecord, 0, 12)
	for i := 0; i < 12; i++ {
		gaps = append(gaps, types.GapRecord{
			Skill:       fmt.Sprintf("Skill %02d", i),
			Importance:  []string{"low", "medium", "high", "critical"}[i%4],
			Description: "gap",
			Framework:   "SFIA 9",
		})
	}
	reg := skills.Reconcile(nil, gaps, nil)

	proj, err := Build(reg.Scope("SFIA 9"), "SFIA 9", DefaultScales())
	require.NoError(t, err)

	assert.Len(t, proj.Bar, 12)
	require.Len(t, proj.Radar, RadarSize)
	assert.Equal(t, "Skill 03", proj.Radar[0].Skill)
	assert.Equal(t, "Skill 07", proj.Radar[1].Skill)
	assert.Equal(t, "Skill 11", proj.Radar[2].Skill)
	assert.Equal(t, "Skill 02", proj.Radar[3].Skill)
}

func TestBuildForRegistry(t *testing.T) {
	reg := sampleRegistry()

	projs, unscaled, err := BuildForRegistry(reg, DefaultScales(), RadarSize)
	require.NoError(t, err)
	assert.Empty(t, unscaled)
	require.Len(t, projs, 3)
	assert.Equal(t, "SFIA 9", projs[0].Framework)
	assert.Equal(t, "DigComp 2.2", projs[1].Framework)
	assert.Equal(t, "General", projs[2].Framework)

	total := 0
	for _, p := range projs {
		total += p.Pie.Total()
	}
	assert.Equal(t, reg.Len(), total)
}

func TestBuildForRegistry_SkipsUnscaledFrameworks(t *testing.T) {
	reg := skills.Reconcile(
		[]types.FrameworkSkillRecord{{Name: "Programming", Framework: "SFIA 9", Level: "Level 3"}},
		[]types.GapRecord{{Skill: "Data literacy", Importance: "high", Description: "none", Framework: "ESCO"}},
		nil,
	)

	projs, unscaled, err := BuildForRegistry(reg, DefaultScales(), RadarSize)
	require.NoError(t, err)
	require.Len(t, projs, 1)
	assert.Equal(t, "SFIA 9", projs[0].Framework)
	assert.Equal(t, []string{"ESCO"}, unscaled)
}

func TestBuildForRegistry_NonPositiveScaleFails(t *testing.T) {
	reg := skills.Reconcile([]types.FrameworkSkillRecord{{Name: "X", Framework: "ESCO"}}, nil, nil)

	_, _, err := BuildForRegistry(reg, DefaultScales().Merge(Scales{"ESCO": 0}), RadarSize)
	var scaleErr *ScaleError
	require.ErrorAs(t, err, &scaleErr)
	assert.True(t, scaleErr.Configured)
}
