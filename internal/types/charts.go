// Package types provides type definitions for structured data used throughout the career-pathway system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ChartProjection holds the framework-scoped inputs for the bar, pie and radar charts.
type ChartProjection struct {
	Framework string     `json:"framework"`
	Scale     int        `json:"scale"`
	Bar       []LevelBar `json:"bar"`
	Pie       PieCounts  `json:"pie"`
	Radar     []LevelBar `json:"radar"`
	// Empty is set when the framework scope holds no skills, so consumers can render a "no items" state.
	Empty bool `json:"empty"`
}

// LevelBar is the required/user/validated level triple for one skill.
type LevelBar struct {
	Skill          string `json:"skill"`
	RequiredLevel  int    `json:"required_level"`
	UserLevel      int    `json:"user_level"`
	ValidatedLevel int    `json:"validated_level"`
}

// PieCounts partitions a framework scope. The three counts sum to the scope size.
type PieCounts struct {
	RequiredOnly int `json:"required_only"`
	Validated    int `json:"validated"`
	UserHasOnly  int `json:"user_has_only"`
}

// Total returns the number of skills counted.
func (p PieCounts) Total() int {
	return p.RequiredOnly + p.Validated + p.UserHasOnly
}
