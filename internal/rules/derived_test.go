package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"investigator-server/internal/models"
)

func TestCalculateDerivedStats(t *testing.T) {
	stats := models.AbilityScores{Str: 10, Con: 13, Pow: 12, Dex: 10, App: 10, Siz: 12, Int: 14, Edu: 15, Luck: 9}

	derived := CalculateDerivedStats(stats)

	assert.Equal(t, 13, derived.HP, "HP is ceil((CON+SIZ)/2)")
	assert.Equal(t, 13, derived.MaxHP)
	assert.Equal(t, 12, derived.MP, "MP equals POW unscaled")
	assert.Equal(t, 12, derived.MaxMP)
	assert.Equal(t, 60, derived.San, "SAN is POW*5")
	assert.Equal(t, 60, derived.MaxSan)
}

func TestCalculateDerivedStatsDeterministic(t *testing.T) {
	stats := models.AbilityScores{Str: 7, Con: 9, Pow: 11, Dex: 13, App: 5, Siz: 17, Int: 3, Edu: 21, Luck: 50}
	assert.Equal(t, CalculateDerivedStats(stats), CalculateDerivedStats(stats))
}

func TestCalculateDerivedStatsHPRoundsUp(t *testing.T) {
	derived := CalculateDerivedStats(models.AbilityScores{Con: 10, Siz: 11})
	assert.Equal(t, 11, derived.HP)
}

func TestCalculateMov(t *testing.T) {
	tests := []struct {
		name          string
		dex, siz, str int
		want          int
	}{
		{"both below siz", 10, 15, 8, 7},
		{"both above siz", 15, 10, 16, 9},
		{"all tied", 10, 10, 10, 8},
		{"dex above, str below", 15, 10, 5, 8},
		{"dex equal siz", 10, 10, 20, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateMov(models.AbilityScores{Dex: tt.dex, Siz: tt.siz, Str: tt.str})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateBuildBoundaries(t *testing.T) {
	tests := []struct {
		strPlusSiz int
		want       int
	}{
		{0, -2},
		{64, -2},
		{65, -1},
		{84, -1},
		{85, 0},
		{124, 0},
		{125, 1},
		{164, 1},
		{204, 2},
		{284, 3},
		{364, 4},
		{444, 5},
		{445, 6},
		{1000, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateBuild(tt.strPlusSiz), "str+siz=%d", tt.strPlusSiz)
	}
}
