package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

func TestDampeningFactor(t *testing.T) {
	tests := []struct {
		xp   int64
		want float64
	}{
		{0, 1.0},
		{999, 1.0},
		{1000, 1.0},
		{25500, 0.65},
		{50000, 0.3},
		{1_000_000, 0.3},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, DampeningFactor(tt.xp), 1e-12, "xp=%d", tt.xp)
	}

	// exact endpoints
	assert.Equal(t, 1.0, DampeningFactor(1000))
	assert.Equal(t, 0.3, DampeningFactor(50000))
}

func TestDampeningFactor_Linear(t *testing.T) {
	a := DampeningFactor(10000)
	b := DampeningFactor(20000)
	c := DampeningFactor(30000)
	assert.InDelta(t, a-b, b-c, 1e-12)
	assert.Greater(t, a, b)
}

func TestDampen(t *testing.T) {
	raw := RawDeltas(10, 4)
	assert.Equal(t, Deltas{Warrior: 10, Mage: 4, Templar: 4}, raw)

	got := Dampen(50000, raw)
	assert.InDelta(t, 3.0, got.Warrior, 1e-9)
	assert.InDelta(t, 1.2, got.Mage, 1e-9)
	assert.InDelta(t, 1.2, got.Templar, 1e-9)
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name            string
		warrior, mage   int64
		balanced, ideal bool
	}{
		{"zero total", 0, 0, true, true},
		{"even", 50, 50, true, true},
		{"lower bound", 40, 60, true, false},
		{"upper bound", 60, 40, true, false},
		{"perfect lower bound", 45, 55, true, true},
		{"perfect upper bound", 55, 45, true, true},
		{"just outside", 61, 39, false, false},
		{"all warrior", 10, 0, false, false},
		{"all mage", 0, 10, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.balanced, IsBalanced(tt.warrior, tt.mage))
			assert.Equal(t, tt.ideal, IsPerfectlyBalanced(tt.warrior, tt.mage))
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, domain.ArchetypeNone, Label(0, 0))
	assert.Equal(t, domain.ArchetypeTemplar, Label(5, 5))
	assert.Equal(t, domain.ArchetypeWarrior, Label(10, 2))
	assert.Equal(t, domain.ArchetypeMage, Label(2, 10))
}

func TestWarriorShare(t *testing.T) {
	_, ok := WarriorShare(0, 0)
	assert.False(t, ok)

	share, ok := WarriorShare(3, 1)
	assert.True(t, ok)
	assert.InDelta(t, 0.75, share, 1e-12)
}

func TestDominantScore(t *testing.T) {
	assert.Equal(t, domain.ArchetypeNone, DominantScore(nil))
	assert.Equal(t, domain.ArchetypeNone, DominantScore(&domain.UserProgression{}))
	assert.Equal(t, domain.ArchetypeMage, DominantScore(&domain.UserProgression{ArchetypeWarrior: 2, ArchetypeMage: 5, ArchetypeTemplar: 1}))
	assert.Equal(t, domain.ArchetypeTemplar, DominantScore(&domain.UserProgression{ArchetypeWarrior: 3, ArchetypeTemplar: 3}))
}
