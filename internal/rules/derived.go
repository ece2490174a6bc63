// Package rules implements the character-sheet arithmetic: derived attribute
// formulas (6th edition flavored) and the skill-growth / sanity-loss rules.
// Everything here is a total function over integer inputs; range validation
// is the caller's job.
package rules

import "investigator-server/internal/models"

// buildBreakpoints maps str+siz to the build step function. Strictly greater
// than the last breakpoint yields 6.
var buildBreakpoints = []struct {
	max   int
	build int
}{
	{64, -2},
	{84, -1},
	{124, 0},
	{164, 1},
	{204, 2},
	{284, 3},
	{364, 4},
	{444, 5},
}

// CalculateDerivedStats computes the pristine derived attributes from ability
// scores: HP = ceil((CON+SIZ)/2), MP = POW, SAN = maxSAN = POW*5 (before any
// mythos reduction), plus movement rate and build.
func CalculateDerivedStats(stats models.AbilityScores) models.DerivedStats {
	hp := (stats.Con + stats.Siz + 1) / 2
	san := stats.Pow * 5
	return models.DerivedStats{
		HP:     hp,
		MaxHP:  hp,
		MP:     stats.Pow,
		MaxMP:  stats.Pow,
		San:    san,
		MaxSan: san,
		Mov:    CalculateMov(stats),
		Build:  CalculateBuild(stats.Str + stats.Siz),
	}
}

// CalculateMov returns the movement rate: 7 when both DEX and STR are below
// SIZ, 9 when both are above, 8 otherwise. Any tie falls back to 8.
func CalculateMov(stats models.AbilityScores) int {
	switch {
	case stats.Dex < stats.Siz && stats.Str < stats.Siz:
		return 7
	case stats.Dex > stats.Siz && stats.Str > stats.Siz:
		return 9
	default:
		return 8
	}
}

// CalculateBuild maps str+siz onto the build step function.
func CalculateBuild(strPlusSiz int) int {
	for _, bp := range buildBreakpoints {
		if strPlusSiz <= bp.max {
			return bp.build
		}
	}
	return 6
}
