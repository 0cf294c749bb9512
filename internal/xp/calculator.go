package xp

import (
	"fmt"
	"math"
	"sort"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

// Contribution is the yield of a single stat entry
type Contribution struct {
	Stat    string `json:"stat"`
	Count   int    `json:"count"`
	XP      int64  `json:"xp"`
	Warrior int64  `json:"warrior"`
	Mage    int64  `json:"mage"`
}

// Result is the base XP and raw affinity deltas of one submission
type Result struct {
	BaseXP       int64          `json:"base_xp"`
	WarriorDelta int64          `json:"warrior_delta"`
	MageDelta    int64          `json:"mage_delta"`
	Breakdown    []Contribution `json:"breakdown"`
}

// Calculator turns stat counts into base XP and affinity deltas
type Calculator struct {
	weights WeightTable
}

// NewCalculator creates a calculator over a weight table
func NewCalculator(weights WeightTable) *Calculator {
	return &Calculator{weights: weights}
}

// Weight returns the weight for stat and whether it is tracked
func (c *Calculator) Weight(stat string) (Weight, bool) {
	w, ok := c.weights[stat]
	return w, ok
}

// Calculate sums weighted yields for every known stat with a positive count.
// Unknown stat names are skipped. Negative counts are rejected, as are counts
// above MaxStatCount and yields that do not fit in an int64.
func (c *Calculator) Calculate(stats map[string]int) (Result, error) {
	names := make([]string, 0, len(stats))
	for name, count := range stats {
		if count < 0 {
			return Result{}, fmt.Errorf("%w: %s=%d", domain.ErrNegativeStat, name, count)
		}
		if count > MaxStatCount {
			return Result{}, fmt.Errorf("%w: %s=%d exceeds %d", domain.ErrStatOverflow, name, count, MaxStatCount)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	res := Result{Breakdown: make([]Contribution, 0, len(names))}
	for _, name := range names {
		count := stats[name]
		w, ok := c.weights[name]
		if !ok || count == 0 {
			continue
		}

		n := int64(count)
		contrib := Contribution{Stat: name, Count: count}
		var ok1, ok2, ok3 bool
		contrib.XP, ok1 = mulNonNegative(w.XP, n)
		contrib.Warrior, ok2 = mulNonNegative(w.Warrior, n)
		contrib.Mage, ok3 = mulNonNegative(w.Mage, n)
		if !ok1 || !ok2 || !ok3 {
			return Result{}, fmt.Errorf("%w: %s=%d", domain.ErrStatOverflow, name, count)
		}

		var sum1, sum2, sum3 bool
		res.BaseXP, sum1 = addNonNegative(res.BaseXP, contrib.XP)
		res.WarriorDelta, sum2 = addNonNegative(res.WarriorDelta, contrib.Warrior)
		res.MageDelta, sum3 = addNonNegative(res.MageDelta, contrib.Mage)
		if !sum1 || !sum2 || !sum3 {
			return Result{}, fmt.Errorf("%w: total after %s", domain.ErrStatOverflow, name)
		}
		res.Breakdown = append(res.Breakdown, contrib)
	}

	return res, nil
}

// mulNonNegative multiplies two non-negative values, reporting false on overflow
func mulNonNegative(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}
	return a * b, true
}

// addNonNegative adds two non-negative values, reporting false on overflow
func addNonNegative(a, b int64) (int64, bool) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}
