package xp

import (
	"encoding/json"
	"fmt"
	"os"
)

// Weight is the XP and affinity yield of one unit of a stat
type Weight struct {
	XP      int64 `json:"xp"`
	Warrior int64 `json:"warrior"`
	Mage    int64 `json:"mage"`
}

// WeightTable maps stat names to their weights
type WeightTable map[string]Weight

// DefaultWeightTable returns the built-in stat weights
func DefaultWeightTable() WeightTable {
	return WeightTable{
		StatApproaches:   {XP: 10, Warrior: 2, Mage: 0},
		StatNumbers:      {XP: 25, Warrior: 2, Mage: 1},
		StatInstadates:   {XP: 50, Warrior: 3, Mage: 1},
		StatDates:        {XP: 75, Warrior: 3, Mage: 2},
		StatClosures:     {XP: 100, Warrior: 4, Mage: 2},
		StatFieldReports: {XP: 20, Warrior: 1, Mage: 2},
		StatSocialEvents: {XP: 20, Warrior: 2, Mage: 1},
		StatWorkouts:     {XP: 15, Warrior: 2, Mage: 0},
		StatColdShowers:  {XP: 5, Warrior: 1, Mage: 0},
		StatMeditation:   {XP: 10, Warrior: 0, Mage: 2},
		StatJournaling:   {XP: 10, Warrior: 0, Mage: 2},
		StatCourseWork:   {XP: 30, Warrior: 0, Mage: 3},
		StatReading:      {XP: 5, Warrior: 0, Mage: 1},
		StatGratitude:    {XP: 5, Warrior: 0, Mage: 1},
	}
}

// LoadWeightTable reads a JSON object of stat name to weight
func LoadWeightTable(path string) (WeightTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadWeights, err)
	}

	var table WeightTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseWeights, err)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks the table is usable
func (t WeightTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%s", ErrMsgEmptyWeights)
	}
	for name, w := range t {
		if w.XP < 0 || w.Warrior < 0 || w.Mage < 0 {
			return fmt.Errorf("%s: %s", ErrMsgNegativeWeight, name)
		}
	}
	return nil
}
