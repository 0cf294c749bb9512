// Package archetype classifies users on the warrior/mage axis and dampens
// archetype score deltas as users accumulate XP.
package archetype

import (
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

// Dampening curve
const (
	DampeningStartXP  int64 = 1000
	DampeningFloorXP  int64 = 50000
	DampeningMaxValue       = 1.0
	DampeningMinValue       = 0.3
)

// Balance windows expressed as warrior share percentages, inclusive
const (
	BalanceLowPct  = 40
	BalanceHighPct = 60
	PerfectLowPct  = 45
	PerfectHighPct = 55
)

// Deltas are archetype point changes along the three labels
type Deltas struct {
	Warrior float64 `json:"warrior"`
	Mage    float64 `json:"mage"`
	Templar float64 `json:"templar"`
}

// DampeningFactor is 1.0 at or below 1,000 XP, 0.3 at or above 50,000 XP
// and linear in between.
func DampeningFactor(totalXP int64) float64 {
	if totalXP <= DampeningStartXP {
		return DampeningMaxValue
	}
	if totalXP >= DampeningFloorXP {
		return DampeningMinValue
	}
	span := float64(DampeningFloorXP - DampeningStartXP)
	elapsed := float64(totalXP - DampeningStartXP)
	return DampeningMaxValue - (DampeningMaxValue-DampeningMinValue)*(elapsed/span)
}

// RawDeltas derives archetype point deltas from a submission's affinity deltas.
// Templar points are the balanced overlap of the two.
func RawDeltas(warrior, mage int64) Deltas {
	return Deltas{
		Warrior: float64(warrior),
		Mage:    float64(mage),
		Templar: float64(min(warrior, mage)),
	}
}

// Dampen scales each delta by the factor for totalXP
func Dampen(totalXP int64, d Deltas) Deltas {
	f := DampeningFactor(totalXP)
	return Deltas{
		Warrior: d.Warrior * f,
		Mage:    d.Mage * f,
		Templar: d.Templar * f,
	}
}

// WarriorShare returns warrior/(warrior+mage) and false when the total is zero
func WarriorShare(warrior, mage int64) (float64, bool) {
	total := warrior + mage
	if total <= 0 {
		return 0, false
	}
	return float64(warrior) / float64(total), true
}

func shareWithin(warrior, mage int64, lowPct, highPct int64) bool {
	total := warrior + mage
	if total <= 0 {
		return true
	}
	scaled := warrior * 100
	return scaled >= lowPct*total && scaled <= highPct*total
}

// IsBalanced reports whether the warrior share is within 40%..60%.
// Zero total affinity counts as balanced.
func IsBalanced(warrior, mage int64) bool {
	return shareWithin(warrior, mage, BalanceLowPct, BalanceHighPct)
}

// IsPerfectlyBalanced reports whether the warrior share is within 45%..55%.
// Zero total affinity counts as perfectly balanced.
func IsPerfectlyBalanced(warrior, mage int64) bool {
	return shareWithin(warrior, mage, PerfectLowPct, PerfectHighPct)
}

// Label classifies raw affinities. No affinity yields none, the balance
// window yields templar, otherwise the larger side.
func Label(warrior, mage int64) domain.Archetype {
	if warrior+mage <= 0 {
		return domain.ArchetypeNone
	}
	if IsBalanced(warrior, mage) {
		return domain.ArchetypeTemplar
	}
	if warrior > mage {
		return domain.ArchetypeWarrior
	}
	return domain.ArchetypeMage
}

// DominantScore picks the label with the highest dampened score.
// Ties resolve templar, then warrior, then mage.
func DominantScore(p *domain.UserProgression) domain.Archetype {
	if p == nil {
		return domain.ArchetypeNone
	}
	best := domain.ArchetypeNone
	bestScore := 0.0
	for _, c := range []struct {
		label domain.Archetype
		score float64
	}{
		{domain.ArchetypeTemplar, p.ArchetypeTemplar},
		{domain.ArchetypeWarrior, p.ArchetypeWarrior},
		{domain.ArchetypeMage, p.ArchetypeMage},
	} {
		if c.score > bestScore {
			best, bestScore = c.label, c.score
		}
	}
	return best
}
