// Package charts derives bar, pie and radar chart inputs from a framework-scoped slice of
// reconciled skills. Nothing here draws; projections only restate registry data numerically.
package charts

import (
	"errors"

	"github.com/jonathan/career-pathway/internal/ranking"
	"github.com/jonathan/career-pathway/internal/skills"
	"github.com/jonathan/career-pathway/internal/types"
)

// RadarSize is the number of top-ranked skills shown on the radar chart.
const RadarSize = 8

// Build derives all three projections for one framework scope. The only error is a
// missing or invalid scale for the framework.
func Build(entries []types.UnifiedSkillEntry, framework string, scales Scales) (types.ChartProjection, error) {
	return BuildWithRadarSize(entries, framework, scales, RadarSize)
}

// BuildWithRadarSize is Build with a configurable radar size.
func BuildWithRadarSize(entries []types.UnifiedSkillEntry, framework string, scales Scales, radarSize int) (types.ChartProjection, error) {
	upper, err := scales.Max(framework)
	if err != nil {
		return types.ChartProjection{}, err
	}

	return types.ChartProjection{
		Framework: framework,
		Scale:     upper,
		Bar:       BuildBar(entries, upper),
		Pie:       BuildPie(entries),
		Radar:     BuildRadar(entries, upper, radarSize),
		Empty:     len(entries) == 0,
	}, nil
}

// BuildForRegistry builds one projection per framework present in the registry, in the
// registry's framework order. Frameworks with no scale at all come from record tags, not
// configuration, so they are skipped and returned as unscaled. A scale that is configured but
// not positive is still an error.
func BuildForRegistry(reg *skills.Registry, scales Scales, radarSize int) ([]types.ChartProjection, []string, error) {
	frameworks := reg.Frameworks()
	out := make([]types.ChartProjection, 0, len(frameworks))
	unscaled := []string{}
	for _, fw := range frameworks {
		proj, err := BuildWithRadarSize(reg.Scope(fw), fw, scales, radarSize)
		if err != nil {
			var scaleErr *ScaleError
			if errors.As(err, &scaleErr) && !scaleErr.Configured {
				unscaled = append(unscaled, fw)
				continue
			}
			return nil, nil, err
		}
		out = append(out, proj)
	}
	return out, unscaled, nil
}

// BuildBar returns the level triple of every entry on [0, upper].
func BuildBar(entries []types.UnifiedSkillEntry, upper int) []types.LevelBar {
	bars := make([]types.LevelBar, 0, len(entries))
	for i := range entries {
		bars = append(bars, levelBar(&entries[i], upper))
	}
	return bars
}

// BuildPie partitions entries into validated, user-has-only and required-only counts.
// Every entry lands in exactly one bucket.
func BuildPie(entries []types.UnifiedSkillEntry) types.PieCounts {
	var pie types.PieCounts
	for _, e := range entries {
		switch {
		case e.Validated:
			pie.Validated++
		case e.UserHas:
			pie.UserHasOnly++
		default:
			pie.RequiredOnly++
		}
	}
	return pie
}

// BuildRadar returns the level triple of the top-ranked entries.
func BuildRadar(entries []types.UnifiedSkillEntry, upper, size int) []types.LevelBar {
	return BuildBar(ranking.RankSkills(entries, size), upper)
}

func levelBar(e *types.UnifiedSkillEntry, upper int) types.LevelBar {
	bar := types.LevelBar{Skill: e.Name}
	if e.Required {
		bar.RequiredLevel = LevelValue(e.Level, upper)
	}
	if e.UserHas {
		label := e.UserLevel
		if label == "" {
			label = e.Level
		}
		bar.UserLevel = LevelValue(label, upper)
	}
	if e.Validated {
		bar.ValidatedLevel = bar.UserLevel
	}
	return bar
}
