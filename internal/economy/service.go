// Package economy grants secondary XP for catalog actions. Limits are read
// from the award ledger inside the award transaction, and refusals come back
// as typed results rather than errors.
package economy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/cooldown"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/level"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/multiplier"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

// Multiplier computes the composite multiplier applied to awarded XP
type Multiplier interface {
	Compute(ctx context.Context, in multiplier.Input) (*multiplier.Result, error)
}

// Service defines the secondary XP economy
type Service interface {
	AwardSecondaryXP(ctx context.Context, userID, category, action string, metadata map[string]interface{}) (*domain.SecondaryAwardResult, error)
	GetAwardHistory(ctx context.Context, userID string, limit int) ([]domain.AwardLedgerEntry, error)
	GetActiveBoosts(ctx context.Context, userID string) ([]domain.MultiplierBoost, error)
	PurgeExpiredBoosts(ctx context.Context, retention time.Duration) (int64, error)
	Catalog() Catalog
}

type service struct {
	repo        repository.Economy
	progression repository.Progression
	multiplier  Multiplier
	levels      *level.Table
	catalog     Catalog
	publisher   event.Publisher
	location    *time.Location
	now         func() time.Time
}

// Option configures the service
type Option func(*service)

// WithClock overrides the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithLocation sets the zone whose calendar day bounds daily caps
func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewService creates a new economy service. A nil publisher disables events.
func NewService(repo repository.Economy, progression repository.Progression, mult Multiplier, levels *level.Table, catalog Catalog, publisher event.Publisher, opts ...Option) Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if levels == nil {
		levels = level.DefaultTable()
	}
	s := &service{
		repo:        repo,
		progression: progression,
		multiplier:  mult,
		levels:      levels,
		catalog:     catalog,
		publisher:   publisher,
		location:    time.UTC,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Catalog() Catalog {
	return s.catalog
}

// AwardSecondaryXP grants a catalog action's XP once its limits pass.
// Ledger reads, ledger write, XP increment and boost creation share one transaction.
func (s *service) AwardSecondaryXP(ctx context.Context, userID, category, action string, metadata map[string]interface{}) (*domain.SecondaryAwardResult, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	cfg, ok := s.catalog.Lookup(category, action)
	if !ok {
		log.Info(LogMsgAwardRefused, "user_id", userID, "action", domain.ActionKey(category, action), "reason", domain.AwardInvalidAction)
		s.publishRefused(ctx, userID, category, action, domain.AwardInvalidAction)
		return domain.Refused(domain.AwardInvalidAction), nil
	}

	now := s.now()
	day := domain.Day(dayIn(now, s.location))

	prog, err := s.progression.EnsureProgression(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgEnsureProgression, err)
	}

	tx, err := s.repo.BeginAwardTx(ctx, userID, category, action)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginAward, err)
	}
	defer repository.SafeRollback(ctx, tx)

	decision, err := cooldown.Evaluate(ctx, tx, userID, category, action, cfg.Policy(), now, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgEvaluateLimits, err)
	}
	if !decision.Allowed {
		res := domain.Refused(decision.Reason)
		res.RemainingSeconds = cooldown.RemainingSeconds(decision.Remaining)
		log.Info(LogMsgAwardRefused, "user_id", userID, "action", domain.ActionKey(category, action), "reason", decision.Reason)
		s.publishRefused(ctx, userID, category, action, decision.Reason)
		return res, nil
	}

	mult := 1.0
	finalXP := cfg.XP
	if cfg.XP > 0 && s.multiplier != nil {
		m, err := s.multiplier.Compute(ctx, multiplier.Input{
			UserID:  userID,
			Day:     day,
			Faction: prog.FactionName(),
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgComputeMultiplier, err)
		}
		mult = m.Multiplier
		finalXP = multiplier.ApplyXP(cfg.XP, mult)
	}

	entry := &domain.AwardLedgerEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  category,
		Action:    action,
		XPEarned:  finalXP,
		Metadata:  metadata,
		AwardDay:  day,
		DailySlot: decision.DailySlot,
		OneTime:   cfg.OneTime,
		Reference: domain.ReferenceOf(metadata),
		CreatedAt: now,
	}
	if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrDuplicateAward) {
			// A concurrent award for the same key, or an earlier award with
			// the same reference, already holds the row
			reason := domain.AwardDailyLimitReached
			if cfg.OneTime || entry.Reference != nil {
				reason = domain.AwardAlreadyClaimed
			}
			log.Warn(LogMsgRaceDetected, "user_id", userID, "action", entry.ActionKey(), "reason", reason)
			return domain.Refused(reason), nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgInsertLedger, err)
	}

	result := &domain.SecondaryAwardResult{
		Success:     true,
		XP:          finalXP,
		Description: cfg.Description,
		Multiplier:  mult,
	}

	if finalXP > 0 {
		before, after, err := tx.ApplyDelta(ctx, userID, domain.ProgressionDelta{XP: finalXP})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgApplyXP, err)
		}
		result.LevelUp = s.levels.DetectLevelUp(before.CumulativeXP, after.CumulativeXP)
	}

	if tier := SelectUnlock(cfg.Unlocks, metadata); tier != nil {
		boost := &domain.MultiplierBoost{
			ID:             uuid.New(),
			UserID:         userID,
			Multiplier:     tier.Multiplier,
			AppliesToStats: tier.AppliesTo,
			ExpiresAt:      now.Add(tier.Duration()),
			Source:         entry.ActionKey() + ":" + tier.Name,
			CreatedAt:      now,
		}
		if err := tx.CreateBoost(ctx, boost); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgCreateBoost, err)
		}
		result.Unlocked = boost
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitAward, err)
	}

	log.Info(LogMsgAwardGranted, "user_id", userID, "action", entry.ActionKey(), "xp", finalXP, "multiplier", mult)
	s.publishAwarded(ctx, userID, category, action, cfg.XP, result, day)

	return result, nil
}

func (s *service) publishRefused(ctx context.Context, userID, category, action string, reason domain.AwardFailureReason) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, event.New(event.SecondaryRefused, event.SecondaryAwardPayloadV1{
		UserID:   userID,
		Category: category,
		Action:   action,
		Reason:   reason,
	}))
}

func (s *service) publishAwarded(ctx context.Context, userID, category, action string, baseXP int64, res *domain.SecondaryAwardResult, day time.Time) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, event.New(event.SecondaryAwarded, event.SecondaryAwardPayloadV1{
		UserID:   userID,
		Category: category,
		Action:   action,
		XP:       res.XP,
	}))
	if res.XP > 0 {
		s.publisher.PublishWithRetry(ctx, event.New(event.XPAwarded, event.XPAwardedPayloadV1{
			UserID:     userID,
			Source:     SourceSecondary,
			BaseXP:     baseXP,
			FinalXP:    res.XP,
			Multiplier: res.Multiplier,
			Day:        domain.FormatDay(day),
		}))
	}
	if res.LevelUp != nil {
		s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(userID, domain.ActionKey(category, action), *res.LevelUp))
	}
	if b := res.Unlocked; b != nil {
		logger.FromContext(ctx).Info(LogMsgBoostUnlocked, "user_id", userID, "multiplier", b.Multiplier, "expires_at", b.ExpiresAt)
		s.publisher.PublishWithRetry(ctx, event.New(event.BoostUnlocked, event.BoostUnlockedPayloadV1{
			UserID:     userID,
			BoostID:    b.ID,
			Multiplier: b.Multiplier,
			AppliesTo:  b.AppliesToStats,
			ExpiresAt:  b.ExpiresAt,
			Source:     b.Source,
		}))
	}
}

func (s *service) GetAwardHistory(ctx context.Context, userID string, limit int) ([]domain.AwardLedgerEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	entries, err := s.repo.ListAwards(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListAwards, err)
	}
	return entries, nil
}

func (s *service) GetActiveBoosts(ctx context.Context, userID string) ([]domain.MultiplierBoost, error) {
	boosts, err := s.repo.ListActiveBoosts(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListBoosts, err)
	}
	return boosts, nil
}

// PurgeExpiredBoosts deletes boosts that expired more than retention ago
func (s *service) PurgeExpiredBoosts(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := s.repo.DeleteExpiredBoosts(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgDeleteBoosts, err)
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgBoostsPurged, "count", n)
	}
	return n, nil
}

// dayIn returns the calendar date of t in loc as a UTC midnight
func dayIn(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
