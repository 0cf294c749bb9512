package level

import (
	"fmt"
	"sort"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

// Threshold is one row of the level table
type Threshold struct {
	Level     int    `json:"level"`
	CutoffXP  int64  `json:"cutoff_xp"`
	ClassName string `json:"class_name"`
}

// Table is an ordered, validated level threshold table
type Table struct {
	rows []Threshold
}

// Info is the resolved level state for a cumulative XP value
type Info struct {
	Level     int     `json:"level"`
	ClassName string  `json:"class_name"`
	CurrentXP int64   `json:"current_xp"`
	XPForNext int64   `json:"xp_for_next"`
	Progress  float64 `json:"progress"`
	Maxed     bool    `json:"maxed"`
}

var defaultRows = []Threshold{
	{1, 0, "Novice"},
	{2, 100, "Novice"},
	{3, 250, "Novice"},
	{4, 500, "Apprentice"},
	{5, 850, "Apprentice"},
	{6, 1300, "Apprentice"},
	{7, 1900, "Adept"},
	{8, 2650, "Adept"},
	{9, 3550, "Adept"},
	{10, 4600, "Journeyman"},
	{11, 5800, "Journeyman"},
	{12, 7200, "Journeyman"},
	{13, 8800, "Expert"},
	{14, 10600, "Expert"},
	{15, 12600, "Expert"},
	{16, 15000, "Master"},
	{17, 18500, "Master"},
	{18, 23000, "Grandmaster"},
	{19, 33000, "Grandmaster"},
	{20, 50000, "Legend"},
}

// DefaultTable returns the built-in twenty level table
func DefaultTable() *Table {
	t, err := NewTable(defaultRows)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable validates rows and returns a table. Rows must start at level 1 with
// cutoff 0, number levels consecutively and have strictly increasing cutoffs.
func NewTable(rows []Threshold) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty", domain.ErrInvalidLevelData)
	}
	if rows[0].Level != 1 || rows[0].CutoffXP != 0 {
		return nil, fmt.Errorf("%w: first row must be level 1 at 0 XP", domain.ErrInvalidLevelData)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Level != rows[i-1].Level+1 {
			return nil, fmt.Errorf("%w: level %d follows %d", domain.ErrInvalidLevelData, rows[i].Level, rows[i-1].Level)
		}
		if rows[i].CutoffXP <= rows[i-1].CutoffXP {
			return nil, fmt.Errorf("%w: cutoff for level %d is not increasing", domain.ErrInvalidLevelData, rows[i].Level)
		}
	}
	for _, r := range rows {
		if r.ClassName == "" {
			return nil, fmt.Errorf("%w: level %d has no class name", domain.ErrInvalidLevelData, r.Level)
		}
	}

	copied := make([]Threshold, len(rows))
	copy(copied, rows)
	return &Table{rows: copied}, nil
}

// MaxLevel is the highest level in the table
func (t *Table) MaxLevel() int {
	return t.rows[len(t.rows)-1].Level
}

// Rows returns a copy of the table rows
func (t *Table) Rows() []Threshold {
	out := make([]Threshold, len(t.rows))
	copy(out, t.rows)
	return out
}

// Resolve finds the highest level whose cutoff is at or below xp.
// Negative XP resolves as zero.
func (t *Table) Resolve(xp int64) Info {
	if xp < 0 {
		xp = 0
	}

	// first row with cutoff > xp, minus one
	idx := sort.Search(len(t.rows), func(i int) bool {
		return t.rows[i].CutoffXP > xp
	}) - 1

	row := t.rows[idx]
	info := Info{
		Level:     row.Level,
		ClassName: row.ClassName,
		CurrentXP: xp - row.CutoffXP,
	}

	if idx == len(t.rows)-1 {
		info.Maxed = true
		info.Progress = 1.0
		return info
	}

	info.XPForNext = t.rows[idx+1].CutoffXP - row.CutoffXP
	info.Progress = float64(info.CurrentXP) / float64(info.XPForNext)
	return info
}

// DetectLevelUp compares the level before and after an XP change and
// returns nil when the level did not rise.
func (t *Table) DetectLevelUp(beforeXP, afterXP int64) *domain.LevelUp {
	before := t.Resolve(beforeXP)
	after := t.Resolve(afterXP)
	if after.Level <= before.Level {
		return nil
	}
	return &domain.LevelUp{
		OldLevel: before.Level,
		NewLevel: after.Level,
		OldClass: before.ClassName,
		NewClass: after.ClassName,
	}
}
