package economy

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/cooldown"
)

// UnlockTier grants a multiplier boost when a metadata metric reaches a threshold
type UnlockTier struct {
	Name            string   `json:"name"`
	Metric          string   `json:"metric"`
	Threshold       float64  `json:"threshold"`
	Multiplier      float64  `json:"multiplier"`
	DurationMinutes int      `json:"duration_minutes"`
	AppliesTo       []string `json:"applies_to,omitempty"`
}

// Duration is the boost lifetime
func (u UnlockTier) Duration() time.Duration {
	return time.Duration(u.DurationMinutes) * time.Minute
}

// ActionConfig is the static configuration of one secondary action
type ActionConfig struct {
	XP              int64        `json:"xp"`
	Description     string       `json:"description"`
	OneTime         bool         `json:"one_time,omitempty"`
	CooldownSeconds int          `json:"cooldown_seconds,omitempty"`
	MaxPerDay       int          `json:"max_per_day,omitempty"`
	Unlocks         []UnlockTier `json:"unlocks,omitempty"`
}

// Policy converts the limit fields to a ledger policy
func (a ActionConfig) Policy() cooldown.Policy {
	return cooldown.Policy{
		OneTime:   a.OneTime,
		Cooldown:  time.Duration(a.CooldownSeconds) * time.Second,
		MaxPerDay: a.MaxPerDay,
	}
}

// CategoryConfig groups actions under a switch
type CategoryConfig struct {
	Enabled bool                    `json:"enabled"`
	Actions map[string]ActionConfig `json:"actions"`
}

// Catalog maps category names to their configuration
type Catalog map[string]CategoryConfig

// Lookup returns the action config. Disabled categories and unknown actions are not found.
func (c Catalog) Lookup(category, action string) (ActionConfig, bool) {
	cat, ok := c[category]
	if !ok || !cat.Enabled {
		return ActionConfig{}, false
	}
	a, ok := cat.Actions[action]
	return a, ok
}

// Validate rejects negative limits and malformed unlock tiers
func (c Catalog) Validate() error {
	for catName, cat := range c {
		for actName, a := range cat.Actions {
			key := catName + "." + actName
			if a.XP < 0 || a.CooldownSeconds < 0 || a.MaxPerDay < 0 {
				return fmt.Errorf("%s: %s has negative values", ErrMsgInvalidCatalog, key)
			}
			for _, u := range a.Unlocks {
				if u.Metric == "" || u.Multiplier <= 0 || u.DurationMinutes < 0 {
					return fmt.Errorf("%s: %s unlock %q is malformed", ErrMsgInvalidCatalog, key, u.Name)
				}
			}
		}
	}
	return nil
}

// LoadCatalog reads a JSON catalog file
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadCatalog, err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SelectUnlock returns the strictest tier the metadata satisfies, or nil.
// Tiers are evaluated from the highest threshold down.
func SelectUnlock(tiers []UnlockTier, metadata map[string]interface{}) *UnlockTier {
	if len(tiers) == 0 || len(metadata) == 0 {
		return nil
	}

	ordered := make([]UnlockTier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Threshold > ordered[j].Threshold
	})

	for _, tier := range ordered {
		v, ok := metricValue(metadata, tier.Metric)
		if ok && v >= tier.Threshold {
			matched := tier
			return &matched
		}
	}
	return nil
}

func metricValue(metadata map[string]interface{}, key string) (float64, bool) {
	switch v := metadata[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// DefaultCatalog returns the built-in secondary action catalog
func DefaultCatalog() Catalog {
	return Catalog{
		CategoryOnboarding: {
			Enabled: true,
			Actions: map[string]ActionConfig{
				ActionProfileComplete: {XP: 150, Description: "Completed your profile", OneTime: true},
				ActionIntroPost:       {XP: 50, Description: "Posted an introduction", OneTime: true},
			},
		},
		CategoryCourse: {
			Enabled: true,
			Actions: map[string]ActionConfig{
				ActionFirstVideo:     {XP: 0, Description: "Watched the first course video", OneTime: true},
				ActionModuleComplete: {XP: 100, Description: "Completed a course module", MaxPerDay: 3},
				ActionQuizPassed: {
					XP: 50, Description: "Passed a module quiz", MaxPerDay: 5,
					Unlocks: []UnlockTier{
						{Name: "quiz_good", Metric: MetadataKeyScore, Threshold: 80, Multiplier: 1.25, DurationMinutes: 30},
						{Name: "quiz_perfect", Metric: MetadataKeyScore, Threshold: 95, Multiplier: 1.5, DurationMinutes: 60},
					},
				},
			},
		},
		CategoryWingman: {
			Enabled: true,
			Actions: map[string]ActionConfig{
				ActionSessionComplete: {XP: 75, Description: "Completed a wingman session", CooldownSeconds: 3600, MaxPerDay: 2},
			},
		},
		CategoryChat: {
			Enabled: true,
			Actions: map[string]ActionConfig{
				ActionEngagement: {XP: 5, Description: "Took part in the community chat", CooldownSeconds: 300, MaxPerDay: 20},
			},
		},
		CategoryCheckin: {
			Enabled: true,
			Actions: map[string]ActionConfig{
				ActionDaily: {XP: 10, Description: "Daily check-in", MaxPerDay: 1},
			},
		},
		CategoryFieldReport: {
			Enabled: true,
			Actions: map[string]ActionConfig{
				ActionSubmitted: {
					XP: 40, Description: "Submitted a field report", MaxPerDay: 3,
					Unlocks: []UnlockTier{
						{Name: "field_momentum", Metric: MetadataKeyApproaches, Threshold: 10, Multiplier: 1.15, DurationMinutes: 60, AppliesTo: []string{"Approaches"}},
						{Name: "field_blitz", Metric: MetadataKeyApproaches, Threshold: 20, Multiplier: 1.3, DurationMinutes: 120, AppliesTo: []string{"Approaches", "Numbers"}},
					},
				},
			},
		},
		CategoryDuel: {
			Enabled: true,
			Actions: map[string]ActionConfig{
				ActionWin:            {XP: 200, Description: "Won a duel"},
				ActionPerfectBalance: {XP: 100, Description: "Duel finished in perfect balance"},
			},
		},
		CategoryAnalytics: {
			Enabled: false,
			Actions: map[string]ActionConfig{
				ActionRiskReview: {XP: 25, Description: "Completed a risk review", MaxPerDay: 1},
			},
		},
	}
}
