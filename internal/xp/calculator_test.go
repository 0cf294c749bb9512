package xp

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

func TestCalculate(t *testing.T) {
	calc := NewCalculator(DefaultWeightTable())

	tests := []struct {
		name        string
		stats       map[string]int
		wantXP      int64
		wantWarrior int64
		wantMage    int64
		wantEntries int
	}{
		{"empty map", map[string]int{}, 0, 0, 0, 0},
		{"nil map", nil, 0, 0, 0, 0},
		{"only zeros", map[string]int{StatApproaches: 0, StatMeditation: 0}, 0, 0, 0, 0},
		{"single stat", map[string]int{StatApproaches: 5}, 50, 10, 0, 1},
		{"mixed", map[string]int{StatApproaches: 2, StatMeditation: 3}, 50, 4, 6, 2},
		{"unknown ignored", map[string]int{"Juggling": 40, StatApproaches: 1}, 10, 2, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Calculate(tt.stats)
			require.NoError(t, err)
			assert.Equal(t, tt.wantXP, res.BaseXP)
			assert.Equal(t, tt.wantWarrior, res.WarriorDelta)
			assert.Equal(t, tt.wantMage, res.MageDelta)
			assert.Len(t, res.Breakdown, tt.wantEntries)
		})
	}
}

func TestCalculate_RejectsNegativeCounts(t *testing.T) {
	calc := NewCalculator(DefaultWeightTable())

	_, err := calc.Calculate(map[string]int{StatApproaches: 3, StatDates: -1})

	assert.ErrorIs(t, err, domain.ErrNegativeStat)
}

func TestCalculate_RejectsOverflow(t *testing.T) {
	huge := NewCalculator(WeightTable{"Grind": {XP: math.MaxInt64 / 2, Warrior: 1, Mage: 1}})

	tests := []struct {
		name  string
		calc  *Calculator
		stats map[string]int
	}{
		{"count above bound", NewCalculator(DefaultWeightTable()), map[string]int{StatClosures: math.MaxInt64}},
		{"count just above bound", NewCalculator(DefaultWeightTable()), map[string]int{StatClosures: MaxStatCount + 1}},
		{"product overflows", huge, map[string]int{"Grind": 3}},
		{"sum overflows", NewCalculator(WeightTable{
			"A": {XP: math.MaxInt64 / 2},
			"B": {XP: math.MaxInt64 / 2},
			"C": {XP: math.MaxInt64 / 2},
		}), map[string]int{"A": 1, "B": 1, "C": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.calc.Calculate(tt.stats)
			require.ErrorIs(t, err, domain.ErrStatOverflow)
			assert.Zero(t, res.BaseXP)
			assert.Zero(t, res.WarriorDelta)
			assert.Zero(t, res.MageDelta)
		})
	}
}

func TestCalculate_MaxCountStaysPositive(t *testing.T) {
	res, err := NewCalculator(DefaultWeightTable()).Calculate(map[string]int{StatClosures: MaxStatCount})
	require.NoError(t, err)

	w := DefaultWeightTable()[StatClosures]
	assert.Equal(t, w.XP*MaxStatCount, res.BaseXP)
	assert.GreaterOrEqual(t, res.WarriorDelta, int64(0))
	assert.GreaterOrEqual(t, res.MageDelta, int64(0))
}

func TestCalculate_BreakdownIsSorted(t *testing.T) {
	calc := NewCalculator(DefaultWeightTable())

	res, err := calc.Calculate(map[string]int{StatWorkouts: 1, StatApproaches: 1, StatDates: 1})
	require.NoError(t, err)

	require.Len(t, res.Breakdown, 3)
	assert.Equal(t, StatApproaches, res.Breakdown[0].Stat)
	assert.Equal(t, StatDates, res.Breakdown[1].Stat)
	assert.Equal(t, StatWorkouts, res.Breakdown[2].Stat)
}

func TestLoadWeightTable(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "weights.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"Approaches":{"xp":12,"warrior":3,"mage":0}}`), 0o600))

	table, err := LoadWeightTable(good)
	require.NoError(t, err)
	assert.Equal(t, Weight{XP: 12, Warrior: 3}, table[StatApproaches])

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"Approaches":{"xp":-1}}`), 0o600))
	_, err = LoadWeightTable(bad)
	assert.ErrorContains(t, err, ErrMsgNegativeWeight)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{}`), 0o600))
	_, err = LoadWeightTable(empty)
	assert.ErrorContains(t, err, ErrMsgEmptyWeights)

	_, err = LoadWeightTable(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, ErrMsgReadWeights)
}
