package progression

import (
	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/multiplier"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xp"
)

// AppliedBoost records which boost scaled a stat
type AppliedBoost struct {
	Stat       string    `json:"stat"`
	BoostID    uuid.UUID `json:"boost_id"`
	Multiplier float64   `json:"multiplier"`
	BaseXP     int64     `json:"base_xp"`
	BoostedXP  int64     `json:"boosted_xp"`
}

// applyBoosts scales each stat's XP by the largest boost covering it.
// Boosts must already be filtered to the ones live at submission time.
func applyBoosts(breakdown []xp.Contribution, boosts []domain.MultiplierBoost) (int64, []AppliedBoost) {
	var total int64
	var applied []AppliedBoost
	for _, c := range breakdown {
		best := bestBoost(c.Stat, boosts)
		if best == nil || c.XP <= 0 {
			total += c.XP
			continue
		}
		boosted := multiplier.ApplyXP(c.XP, best.Multiplier)
		total += boosted
		applied = append(applied, AppliedBoost{
			Stat:       c.Stat,
			BoostID:    best.ID,
			Multiplier: best.Multiplier,
			BaseXP:     c.XP,
			BoostedXP:  boosted,
		})
	}
	return total, applied
}

func bestBoost(stat string, boosts []domain.MultiplierBoost) *domain.MultiplierBoost {
	var best *domain.MultiplierBoost
	for i := range boosts {
		b := &boosts[i]
		if !b.AppliesTo(stat) {
			continue
		}
		if best == nil || b.Multiplier > best.Multiplier {
			best = b
		}
	}
	return best
}
