// Package multiplier computes the composite XP multiplier: additive bonuses
// for streak, self-reported state, templar days and catch-up, multiplied by
// live global XP events, then capped.
package multiplier

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// Config holds the bonus values and cap
type Config struct {
	Cap                float64
	MaxStreakBonus     float64
	StreakStepBonus    float64
	StreakStepDays     int
	StateGoodBonus     float64
	StateGoodThreshold int
	TemplarDayBonus    float64
	StreakLookbackDays int
}

// DefaultConfig returns the stock bonus values
func DefaultConfig() Config {
	return Config{
		Cap:                DefaultCap,
		MaxStreakBonus:     DefaultMaxStreakBonus,
		StreakStepBonus:    DefaultStreakStepBonus,
		StreakStepDays:     DefaultStreakStepDays,
		StateGoodBonus:     DefaultStateGoodBonus,
		StateGoodThreshold: DefaultStateGoodThreshold,
		TemplarDayBonus:    DefaultTemplarDayBonus,
		StreakLookbackDays: DefaultStreakLookbackDays,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Cap <= 0 {
		c.Cap = d.Cap
	}
	if c.StreakStepDays <= 0 {
		c.StreakStepDays = d.StreakStepDays
	}
	if c.StateGoodThreshold <= 0 {
		c.StateGoodThreshold = d.StateGoodThreshold
	}
	if c.StreakLookbackDays <= 0 {
		c.StreakLookbackDays = d.StreakLookbackDays
	}
	return c
}

// Input is the day context of one computation. A zero Input (no state,
// no archetype, inactive) is what secondary awards use.
type Input struct {
	UserID            string
	Day               time.Time
	State             *int
	DominantArchetype domain.Archetype
	Active            bool
	Faction           string
}

// Factor is one multiplicative global modifier that was applied
type Factor struct {
	Source  string    `json:"source"`
	EventID uuid.UUID `json:"event_id"`
	Name    string    `json:"name"`
	Factor  float64   `json:"factor"`
}

// Components keeps every intermediate value for observability
type Components struct {
	BaseStreak      int      `json:"base_streak"`
	EffectiveStreak int      `json:"effective_streak"`
	StreakBonus     float64  `json:"streak_bonus"`
	StateBonus      float64  `json:"state_bonus"`
	TemplarBonus    float64  `json:"templar_bonus"`
	MegaBonus       float64  `json:"mega_bonus"`
	Additive        float64  `json:"additive"`
	GlobalFactors   []Factor `json:"global_factors"`
	GlobalProduct   float64  `json:"global_product"`
	Uncapped        float64  `json:"uncapped"`
	Cap             float64  `json:"cap"`
	Capped          bool     `json:"capped"`
}

// Result is the composite multiplier and its breakdown
type Result struct {
	Multiplier float64    `json:"multiplier"`
	Components Components `json:"components"`
}

// ActivityReader reads prior active days for streak counting
type ActivityReader interface {
	ListActiveDays(ctx context.Context, userID string, since, before time.Time) ([]time.Time, error)
}

// EventReader reads live global XP events
type EventReader interface {
	ListActiveXPEvents(ctx context.Context, at time.Time) ([]domain.GlobalXPEvent, error)
}

// CatchUpPolicy supplies the mega bonus for users who fell behind
type CatchUpPolicy interface {
	MegaBonus(ctx context.Context, userID string, day time.Time) (float64, error)
}

// NoCatchUp is the current catch-up policy: never any bonus
type NoCatchUp struct{}

// MegaBonus always returns 0
func (NoCatchUp) MegaBonus(ctx context.Context, userID string, day time.Time) (float64, error) {
	return 0, nil
}

// Engine computes composite multipliers. It holds no per-user state; every
// call reads the store fresh.
type Engine struct {
	activity ActivityReader
	events   EventReader
	catchUp  CatchUpPolicy
	cfg      Config
	now      func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the wall clock used to match global events
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine. A nil catchUp uses NoCatchUp.
func NewEngine(activity ActivityReader, events EventReader, catchUp CatchUpPolicy, cfg Config, opts ...Option) *Engine {
	if catchUp == nil {
		catchUp = NoCatchUp{}
	}
	e := &Engine{
		activity: activity,
		events:   events,
		catchUp:  catchUp,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the effective configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Compute returns the composite multiplier for a user on a day
func (e *Engine) Compute(ctx context.Context, in Input) (*Result, error) {
	day := domain.Day(in.Day)
	since := day.AddDate(0, 0, -e.cfg.StreakLookbackDays)

	days, err := e.activity.ListActiveDays(ctx, in.UserID, since, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListActiveDays, err)
	}
	baseStreak := CountStreak(days, day, e.cfg.StreakLookbackDays)

	mega, err := e.catchUp.MegaBonus(ctx, in.UserID, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCatchUpBonus, err)
	}

	events, err := e.events.ListActiveXPEvents(ctx, e.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListGlobalEvent, err)
	}
	factors := e.matchFactors(ctx, events, in.Faction)

	res := Compose(e.cfg, baseStreak, in, mega, factors)

	logger.FromContext(ctx).Debug(LogMsgMultiplierComputed,
		"user_id", in.UserID,
		"day", domain.FormatDay(day),
		"multiplier", res.Multiplier,
		"effective_streak", res.Components.EffectiveStreak,
		"global_factors", len(factors))

	return res, nil
}

func (e *Engine) matchFactors(ctx context.Context, events []domain.GlobalXPEvent, faction string) []Factor {
	now := e.now()
	factors := make([]Factor, 0, len(events))
	for _, ev := range events {
		if !ev.ActiveAt(now) || !ev.AppliesToFaction(faction) {
			continue
		}
		if ev.MultiplierFactor <= 0 {
			logger.FromContext(ctx).Warn(LogMsgSkippedBadFactor, "event_id", ev.ID, "factor", ev.MultiplierFactor)
			continue
		}
		source := FactorSourceGlobalEvent
		if ev.Faction != nil {
			source = FactorSourceFactionBuff
		}
		factors = append(factors, Factor{
			Source:  source,
			EventID: ev.ID,
			Name:    ev.Name,
			Factor:  ev.MultiplierFactor,
		})
	}
	return factors
}

// Compose applies the bonus rules to already-fetched inputs.
// Additive bonuses sum onto 1.0, global factors multiply, and the cap applies last.
func Compose(cfg Config, baseStreak int, in Input, megaBonus float64, factors []Factor) *Result {
	cfg = cfg.withDefaults()

	c := Components{
		BaseStreak: baseStreak,
		MegaBonus:  megaBonus,
		Cap:        cfg.Cap,
	}

	c.EffectiveStreak = baseStreak
	if in.Active {
		c.EffectiveStreak++
	}

	c.StreakBonus = math.Min(cfg.MaxStreakBonus, float64(c.EffectiveStreak/cfg.StreakStepDays)*cfg.StreakStepBonus)

	if in.State != nil && *in.State >= cfg.StateGoodThreshold {
		c.StateBonus = cfg.StateGoodBonus
	}

	if in.DominantArchetype == domain.ArchetypeTemplar {
		c.TemplarBonus = cfg.TemplarDayBonus
	}

	c.Additive = 1.0 + c.StreakBonus + c.StateBonus + c.TemplarBonus + c.MegaBonus

	c.GlobalProduct = 1.0
	c.GlobalFactors = factors
	if c.GlobalFactors == nil {
		c.GlobalFactors = []Factor{}
	}
	for _, f := range factors {
		c.GlobalProduct *= f.Factor
	}

	c.Uncapped = c.Additive * c.GlobalProduct
	final := c.Uncapped
	if final > cfg.Cap {
		final = cfg.Cap
		c.Capped = true
	}

	return &Result{Multiplier: final, Components: c}
}

// CountStreak counts consecutive active days ending the day before day.
// activeDays may be in any order and contain duplicates. The count never exceeds lookback.
func CountStreak(activeDays []time.Time, day time.Time, lookback int) int {
	set := make(map[time.Time]struct{}, len(activeDays))
	for _, d := range activeDays {
		set[domain.Day(d)] = struct{}{}
	}

	streak := 0
	cursor := domain.PrevDay(day)
	for streak < lookback {
		if _, ok := set[cursor]; !ok {
			break
		}
		streak++
		cursor = domain.PrevDay(cursor)
	}
	return streak
}

// floorEpsilon absorbs binary representation error, e.g. 100 * 1.15 = 114.99999999999999
const floorEpsilon = 1e-9

// ApplyXP floors xp * multiplier. Non-positive XP yields 0.
func ApplyXP(xp int64, multiplier float64) int64 {
	if xp <= 0 || multiplier <= 0 {
		return 0
	}
	scaled := math.Floor(float64(xp)*multiplier + floorEpsilon)
	// float64(MaxInt64) rounds up to 2^63, which does not convert back
	if scaled >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(scaled)
}
