// Package progression orchestrates stat submissions: yield calculation,
// boosts, the composite multiplier, level resolution and archetype
// dampening, persisted as one progression delta.
package progression

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/archetype"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/level"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/multiplier"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xp"
)

// Submission is one user's stat counts for a calendar day
type Submission struct {
	UserID string
	// Day defaults to today in the configured zone
	Day   *time.Time
	Stats map[string]int
	State *int
}

// Result is the full outcome of a stat submission
type Result struct {
	UserID             string                     `json:"user_id"`
	Day                string                     `json:"day"`
	BaseXP             int64                      `json:"base_xp"`
	BoostedXP          int64                      `json:"boosted_xp"`
	FinalXP            int64                      `json:"final_xp"`
	Multiplier         float64                    `json:"multiplier"`
	Components         multiplier.Components      `json:"components"`
	Breakdown          []xp.Contribution          `json:"breakdown"`
	Boosts             []AppliedBoost             `json:"boosts,omitempty"`
	WarriorDelta       int64                      `json:"warrior_delta"`
	MageDelta          int64                      `json:"mage_delta"`
	DampeningFactor    float64                    `json:"dampening_factor"`
	ArchetypeDeltas    archetype.Deltas           `json:"archetype_deltas"`
	Level              level.Info                 `json:"level"`
	LevelUp            *domain.LevelUp            `json:"level_up,omitempty"`
	ArchetypeEvolution *domain.ArchetypeEvolution `json:"archetype_evolution,omitempty"`
}

// Profile is a read-only view of a user's progression
type Profile struct {
	UserID            string                      `json:"user_id"`
	CumulativeXP      int64                       `json:"cumulative_xp"`
	Level             level.Info                  `json:"level"`
	WarriorAffinity   int64                       `json:"warrior_affinity"`
	MageAffinity      int64                       `json:"mage_affinity"`
	Archetype         domain.Archetype            `json:"archetype"`
	ArchetypeScores   archetype.Deltas            `json:"archetype_scores"`
	DampenedArchetype domain.Archetype            `json:"dampened_archetype"`
	Faction           *string                     `json:"faction,omitempty"`
	Streak            int                         `json:"streak"`
	Today             *domain.DailyActivityRecord `json:"today,omitempty"`
	ActiveBoosts      []domain.MultiplierBoost    `json:"active_boosts"`
}

// Multiplier computes the composite multiplier for a day
type Multiplier interface {
	Compute(ctx context.Context, in multiplier.Input) (*multiplier.Result, error)
}

// BoostReader lists a user's live multiplier boosts
type BoostReader interface {
	ListActiveBoosts(ctx context.Context, userID string, at time.Time) ([]domain.MultiplierBoost, error)
}

// Awarder grants secondary XP
type Awarder interface {
	AwardSecondaryXP(ctx context.Context, userID, category, action string, metadata map[string]interface{}) (*domain.SecondaryAwardResult, error)
}

// DuelTracker receives every XP-earning stat of a submission
type DuelTracker interface {
	TrackDuelStat(ctx context.Context, userID, statName string, value int, xpEarned, warriorDelta, mageDelta int64) error
}

// Service defines stat submission and profile operations
type Service interface {
	SubmitStats(ctx context.Context, sub Submission) (*Result, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	RecordChatEngagement(ctx context.Context, userID string) (*domain.SecondaryAwardResult, error)
	SetFaction(ctx context.Context, userID, faction string) error
	ResetUser(ctx context.Context, userID string) error
}

// Deps bundles the collaborators of the service
type Deps struct {
	Repo       repository.Progression
	Boosts     BoostReader
	Calculator *xp.Calculator
	Multiplier Multiplier
	Levels     *level.Table
	Awarder    Awarder
	Duels      DuelTracker
	Publisher  event.Publisher
	Location   *time.Location
	Now        func() time.Time
}

type service struct {
	repo       repository.Progression
	boosts     BoostReader
	calc       *xp.Calculator
	multiplier Multiplier
	levels     *level.Table
	awarder    Awarder
	duels      DuelTracker
	publisher  event.Publisher
	location   *time.Location
	now        func() time.Time
}

// NewService creates a new progression service
func NewService(d Deps) Service {
	s := &service{
		repo:       d.Repo,
		boosts:     d.Boosts,
		calc:       d.Calculator,
		multiplier: d.Multiplier,
		levels:     d.Levels,
		awarder:    d.Awarder,
		duels:      d.Duels,
		publisher:  d.Publisher,
		location:   d.Location,
		now:        d.Now,
	}
	if s.calc == nil {
		s.calc = xp.NewCalculator(xp.DefaultWeightTable())
	}
	if s.levels == nil {
		s.levels = level.DefaultTable()
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) today() time.Time {
	local := s.now().In(s.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// SubmitStats applies one stat submission. The day's record and the
// progression increment are written in one transaction.
func (s *service) SubmitStats(ctx context.Context, sub Submission) (*Result, error) {
	log := logger.FromContext(ctx)

	if sub.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if sub.State != nil && (*sub.State < MinState || *sub.State > MaxState) {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidState, *sub.State)
	}

	yield, err := s.calc.Calculate(sub.Stats)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCalculate, err)
	}

	day := s.today()
	if sub.Day != nil {
		day = domain.Day(*sub.Day)
	}

	prog, err := s.repo.EnsureProgression(ctx, sub.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadProgression, err)
	}

	var live []domain.MultiplierBoost
	if s.boosts != nil && yield.BaseXP > 0 {
		live, err = s.boosts.ListActiveBoosts(ctx, sub.UserID, s.now())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgListBoosts, err)
		}
	}
	boostedXP, applied := applyBoosts(yield.Breakdown, live)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	record, err := tx.UpsertDailyActivity(ctx, domain.DailyActivityUpdate{
		UserID:     sub.UserID,
		Day:        day,
		Active:     len(yield.Breakdown) > 0,
		State:      sub.State,
		WarriorAdd: yield.WarriorDelta,
		MageAdd:    yield.MageDelta,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpsertActivity, err)
	}

	mult, err := s.multiplier.Compute(ctx, multiplier.Input{
		UserID:            sub.UserID,
		Day:               day,
		State:             record.State,
		DominantArchetype: record.DominantArchetype,
		Active:            record.Active,
		Faction:           prog.FactionName(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgComputeMult, err)
	}
	finalXP := multiplier.ApplyXP(boostedXP, mult.Multiplier)

	// Dampening reads the XP the user had before this submission
	dampened := archetype.Dampen(prog.CumulativeXP, archetype.RawDeltas(yield.WarriorDelta, yield.MageDelta))

	delta := domain.ProgressionDelta{
		XP:               finalXP,
		WarriorAffinity:  yield.WarriorDelta,
		MageAffinity:     yield.MageDelta,
		ArchetypeWarrior: dampened.Warrior,
		ArchetypeMage:    dampened.Mage,
		ArchetypeTemplar: dampened.Templar,
	}

	before, after := prog, prog
	if !delta.IsZero() {
		before, after, err = tx.ApplyDelta(ctx, sub.UserID, delta)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgApplyDelta, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitSubmission, err)
	}

	res := &Result{
		UserID:          sub.UserID,
		Day:             domain.FormatDay(day),
		BaseXP:          yield.BaseXP,
		BoostedXP:       boostedXP,
		FinalXP:         finalXP,
		Multiplier:      mult.Multiplier,
		Components:      mult.Components,
		Breakdown:       yield.Breakdown,
		Boosts:          applied,
		WarriorDelta:    yield.WarriorDelta,
		MageDelta:       yield.MageDelta,
		DampeningFactor: archetype.DampeningFactor(prog.CumulativeXP),
		ArchetypeDeltas: dampened,
		Level:           s.levels.Resolve(after.CumulativeXP),
		LevelUp:         s.levels.DetectLevelUp(before.CumulativeXP, after.CumulativeXP),
	}

	from := archetype.Label(before.WarriorAffinity, before.MageAffinity)
	to := archetype.Label(after.WarriorAffinity, after.MageAffinity)
	if from != to {
		res.ArchetypeEvolution = &domain.ArchetypeEvolution{From: from, To: to}
	}

	log.Info(LogMsgSubmissionApplied,
		"user_id", sub.UserID,
		"day", res.Day,
		"base_xp", res.BaseXP,
		"final_xp", res.FinalXP,
		"multiplier", res.Multiplier)

	s.publishSubmission(ctx, res)
	s.trackDuel(ctx, sub.UserID, yield.Breakdown, live, mult.Multiplier)

	return res, nil
}

func (s *service) publishSubmission(ctx context.Context, res *Result) {
	log := logger.FromContext(ctx)

	if res.LevelUp != nil {
		log.Info(LogMsgLevelUp, "user_id", res.UserID, "old_level", res.LevelUp.OldLevel, "new_level", res.LevelUp.NewLevel)
	}
	if res.ArchetypeEvolution != nil {
		log.Info(LogMsgArchetypeEvolved, "user_id", res.UserID, "from", res.ArchetypeEvolution.From, "to", res.ArchetypeEvolution.To)
	}

	if s.publisher == nil {
		return
	}
	if res.FinalXP > 0 {
		s.publisher.PublishWithRetry(ctx, event.New(event.XPAwarded, event.XPAwardedPayloadV1{
			UserID:     res.UserID,
			Source:     SourceStatSubmission,
			BaseXP:     res.BaseXP,
			FinalXP:    res.FinalXP,
			Multiplier: res.Multiplier,
			Day:        res.Day,
		}))
	}
	if res.LevelUp != nil {
		s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(res.UserID, SourceStatSubmission, *res.LevelUp))
	}
	if res.ArchetypeEvolution != nil {
		s.publisher.PublishWithRetry(ctx, event.NewArchetypeEvolvedEvent(res.UserID, *res.ArchetypeEvolution))
	}
}

// trackDuel forwards each XP-earning stat to the duel tracker.
// The submission is already persisted, so failures are only logged.
func (s *service) trackDuel(ctx context.Context, userID string, breakdown []xp.Contribution, boosts []domain.MultiplierBoost, mult float64) {
	if s.duels == nil {
		return
	}
	for _, c := range breakdown {
		statXP := c.XP
		if b := bestBoost(c.Stat, boosts); b != nil {
			statXP = multiplier.ApplyXP(c.XP, b.Multiplier)
		}
		earned := multiplier.ApplyXP(statXP, mult)
		if err := s.duels.TrackDuelStat(ctx, userID, c.Stat, c.Count, earned, c.Warrior, c.Mage); err != nil {
			logger.FromContext(ctx).Error(LogMsgDuelTrackFailed, "user_id", userID, "stat", c.Stat, "error", err)
		}
	}
}

// GetProfile returns the user's current progression view
func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	prog, err := s.repo.GetProgression(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadProgression, err)
	}

	today := s.today()
	days, err := s.repo.ListActiveDays(ctx, userID, today.AddDate(0, 0, -StreakLookbackDays), today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListActiveDays, err)
	}
	record, err := s.repo.GetDailyActivity(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetActivity, err)
	}

	streak := multiplier.CountStreak(days, today, StreakLookbackDays)
	if record != nil && record.Active {
		streak++
	}

	boosts := []domain.MultiplierBoost{}
	if s.boosts != nil {
		live, err := s.boosts.ListActiveBoosts(ctx, userID, s.now())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgListBoosts, err)
		}
		if live != nil {
			boosts = live
		}
	}

	return &Profile{
		UserID:          userID,
		CumulativeXP:    prog.CumulativeXP,
		Level:           s.levels.Resolve(prog.CumulativeXP),
		WarriorAffinity: prog.WarriorAffinity,
		MageAffinity:    prog.MageAffinity,
		Archetype:       archetype.Label(prog.WarriorAffinity, prog.MageAffinity),
		ArchetypeScores: archetype.Deltas{
			Warrior: prog.ArchetypeWarrior,
			Mage:    prog.ArchetypeMage,
			Templar: prog.ArchetypeTemplar,
		},
		DampenedArchetype: archetype.DominantScore(prog),
		Faction:           prog.Faction,
		Streak:            streak,
		Today:             record,
		ActiveBoosts:      boosts,
	}, nil
}

// RecordChatEngagement marks today's chat flag and awards chat XP.
// Rate limiting comes from the award ledger.
func (s *service) RecordChatEngagement(ctx context.Context, userID string) (*domain.SecondaryAwardResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	if _, err := s.repo.UpsertDailyActivity(ctx, domain.DailyActivityUpdate{
		UserID:      userID,
		Day:         s.today(),
		ChatEngaged: true,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpsertActivity, err)
	}

	res, err := s.awarder.AwardSecondaryXP(ctx, userID, ChatCategory, ChatAction, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgAwardChat, err)
	}
	return res, nil
}

// SetFaction sets or clears (empty string) the user's faction
func (s *service) SetFaction(ctx context.Context, userID, faction string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if _, err := s.repo.EnsureProgression(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLoadProgression, err)
	}

	var f *string
	if trimmed := strings.TrimSpace(faction); trimmed != "" {
		f = &trimmed
	}
	if err := s.repo.SetFaction(ctx, userID, f); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSetFaction, err)
	}

	logger.FromContext(ctx).Info(LogMsgFactionChanged, "user_id", userID, "faction", faction)
	return nil
}

// ResetUser zeroes a user's XP, affinities and archetype scores
func (s *service) ResetUser(ctx context.Context, userID string) error {
	if err := s.repo.ResetProgression(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgResetProgression, err)
	}
	logger.FromContext(ctx).Warn(LogMsgProgressionReset, "user_id", userID)
	return nil
}
