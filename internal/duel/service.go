// Package duel runs balance-constrained XP races between two users.
//
// A participant whose raw warrior share leaves the 40%..60% window during an
// active duel is penalized for the rest of it. At expiry the unpenalized side
// wins outright; otherwise the larger XP gain wins and a tie goes to the opponent.
package duel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/archetype"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

// Awarder pays duel bonuses through the secondary economy
type Awarder interface {
	AwardSecondaryXP(ctx context.Context, userID, category, action string, metadata map[string]interface{}) (*domain.SecondaryAwardResult, error)
}

// SweepResult counts what one sweep settled
type SweepResult struct {
	Completed   int `json:"completed"`
	Declined    int `json:"declined"`
	BonusesPaid int `json:"bonuses_paid"`
	Failed      int `json:"failed"`
}

// Service defines the duel lifecycle
type Service interface {
	CreateDuel(ctx context.Context, challengerID, opponentID string) (*domain.Duel, error)
	GetDuel(ctx context.Context, id uuid.UUID) (*domain.Duel, error)
	AcceptDuel(ctx context.Context, id uuid.UUID, userID string) (*domain.Duel, error)
	DeclineDuel(ctx context.Context, id uuid.UUID, userID string) error
	TrackDuelStat(ctx context.Context, userID, statName string, value int, xpEarned, warriorDelta, mageDelta int64) error
	CompleteDuel(ctx context.Context, id uuid.UUID) (*domain.DuelOutcome, error)
	Sweep(ctx context.Context) (SweepResult, error)
}

// Config holds duel timings
type Config struct {
	Duration   time.Duration
	PendingTTL time.Duration
}

type service struct {
	repo        repository.Duel
	progression repository.Progression
	awarder     Awarder
	publisher   event.Publisher
	cfg         Config
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

// NewService creates a new duel service
func NewService(repo repository.Duel, progression repository.Progression, awarder Awarder, publisher event.Publisher, cfg Config, opts ...Option) Service {
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = DefaultPendingTTL
	}
	s := &service{
		repo:        repo,
		progression: progression,
		awarder:     awarder,
		publisher:   publisher,
		cfg:         cfg,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) snapshot(ctx context.Context, userID string) (domain.DuelSnapshot, error) {
	p, err := s.progression.EnsureProgression(ctx, userID)
	if err != nil {
		return domain.DuelSnapshot{}, fmt.Errorf("%s %s: %w", ErrMsgSnapshot, userID, err)
	}
	return domain.DuelSnapshot{XP: p.CumulativeXP, Warrior: p.WarriorAffinity, Mage: p.MageAffinity}, nil
}

// CreateDuel challenges opponentID. Either side may only hold one open duel.
func (s *service) CreateDuel(ctx context.Context, challengerID, opponentID string) (*domain.Duel, error) {
	if challengerID == "" || opponentID == "" {
		return nil, fmt.Errorf("%w: both participants are required", domain.ErrInvalidInput)
	}
	if challengerID == opponentID {
		return nil, domain.ErrSelfDuel
	}

	for _, id := range []string{challengerID, opponentID} {
		open, err := s.repo.GetOpenDuelForUser(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenDuel, err)
		}
		if open != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuelAlreadyActive, id)
		}
	}

	challengerStart, err := s.snapshot(ctx, challengerID)
	if err != nil {
		return nil, err
	}
	opponentStart, err := s.snapshot(ctx, opponentID)
	if err != nil {
		return nil, err
	}

	duel := &domain.Duel{
		ID:              uuid.New(),
		ChallengerID:    challengerID,
		OpponentID:      opponentID,
		Status:          domain.DuelStatusPending,
		CreatedAt:       s.now(),
		ChallengerStart: challengerStart,
		OpponentStart:   opponentStart,
	}
	if err := s.repo.CreateDuel(ctx, duel); err != nil {
		if errors.Is(err, domain.ErrDuelAlreadyActive) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateDuel, err)
	}

	logger.FromContext(ctx).Info(LogMsgDuelCreated, "duel_id", duel.ID, "challenger_id", challengerID, "opponent_id", opponentID)
	s.publish(ctx, event.New(event.DuelCreated, event.DuelCreatedPayloadV1{
		DuelID:       duel.ID,
		ChallengerID: challengerID,
		OpponentID:   opponentID,
	}))
	return duel, nil
}

func (s *service) GetDuel(ctx context.Context, id uuid.UUID) (*domain.Duel, error) {
	duel, err := s.repo.GetDuel(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDuelNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetDuel, err)
	}
	return duel, nil
}

// AcceptDuel starts the duel clock. Only the opponent may accept.
func (s *service) AcceptDuel(ctx context.Context, id uuid.UUID, userID string) (*domain.Duel, error) {
	duel, err := s.GetDuel(ctx, id)
	if err != nil {
		return nil, err
	}
	if duel.OpponentID != userID {
		return nil, domain.ErrNotDuelParticipant
	}
	if duel.Status != domain.DuelStatusPending {
		return nil, domain.ErrDuelNotPending
	}

	acceptedAt := s.now()
	expiresAt := acceptedAt.Add(s.cfg.Duration)
	if err := s.repo.AcceptDuel(ctx, id, acceptedAt, expiresAt); err != nil {
		if errors.Is(err, domain.ErrDuelNotPending) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgAcceptDuel, err)
	}

	duel.Status = domain.DuelStatusActive
	duel.AcceptedAt = &acceptedAt
	duel.ExpiresAt = &expiresAt

	logger.FromContext(ctx).Info(LogMsgDuelAccepted, "duel_id", id, "expires_at", expiresAt)
	return duel, nil
}

// DeclineDuel ends a pending duel. Only the opponent may decline.
func (s *service) DeclineDuel(ctx context.Context, id uuid.UUID, userID string) error {
	duel, err := s.GetDuel(ctx, id)
	if err != nil {
		return err
	}
	if duel.OpponentID != userID {
		return domain.ErrNotDuelParticipant
	}
	if err := s.repo.DeclineDuel(ctx, id); err != nil {
		if errors.Is(err, domain.ErrDuelNotPending) {
			return err
		}
		return fmt.Errorf("%s: %w", ErrMsgDeclineDuel, err)
	}
	logger.FromContext(ctx).Info(LogMsgDuelDeclined, "duel_id", id)
	return nil
}

// TrackDuelStat records one submitted stat of a participant in an active duel
// and re-checks balance against the user's current raw affinities. Users
// outside an active duel are ignored.
func (s *service) TrackDuelStat(ctx context.Context, userID, statName string, value int, xpEarned, warriorDelta, mageDelta int64) error {
	duel, err := s.repo.GetActiveDuelForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgActiveDuel, err)
	}
	if duel == nil {
		return nil
	}
	now := s.now()
	if duel.ExpiresAt != nil && !now.Before(*duel.ExpiresAt) {
		return nil
	}

	p, err := s.progression.GetProgression(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSnapshot, err)
	}
	balanced := archetype.IsBalanced(p.WarriorAffinity, p.MageAffinity)

	if err := s.repo.RecordDuelStat(ctx, &domain.DuelStat{
		DuelID:       duel.ID,
		UserID:       userID,
		StatName:     statName,
		Value:        value,
		XPEarned:     xpEarned,
		WarriorDelta: warriorDelta,
		MageDelta:    mageDelta,
		Balanced:     balanced,
		RecordedAt:   now,
	}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRecordStat, err)
	}

	if balanced {
		return nil
	}

	newlySet, err := s.repo.SetPenalty(ctx, duel.ID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSetPenalty, err)
	}
	if newlySet {
		logger.FromContext(ctx).Info(LogMsgDuelPenalized, "duel_id", duel.ID, "user_id", userID,
			"warrior", p.WarriorAffinity, "mage", p.MageAffinity)
		s.publish(ctx, event.New(event.DuelPenalized, event.DuelPenalizedPayloadV1{DuelID: duel.ID, UserID: userID}))
	}
	return nil
}

// CompleteDuel settles an active duel once it has expired. Calling it again
// on a completed duel whose bonuses failed to pay retries the payout.
func (s *service) CompleteDuel(ctx context.Context, id uuid.UUID) (*domain.DuelOutcome, error) {
	duel, err := s.GetDuel(ctx, id)
	if err != nil {
		return nil, err
	}
	if duel.Status == domain.DuelStatusCompleted && duel.BonusPending {
		return s.resumePayout(ctx, duel)
	}
	if duel.Status != domain.DuelStatusActive {
		return nil, domain.ErrDuelNotActive
	}
	if duel.ExpiresAt != nil && s.now().Before(*duel.ExpiresAt) {
		return nil, domain.ErrDuelNotExpired
	}
	return s.settle(ctx, duel)
}

func (s *service) settle(ctx context.Context, duel *domain.Duel) (*domain.DuelOutcome, error) {
	challengerFinal, err := s.snapshot(ctx, duel.ChallengerID)
	if err != nil {
		return nil, err
	}
	opponentFinal, err := s.snapshot(ctx, duel.OpponentID)
	if err != nil {
		return nil, err
	}

	outcome := Decide(duel, challengerFinal, opponentFinal)

	completedAt := s.now()
	duel.CompletedAt = &completedAt
	duel.ChallengerFinal = &challengerFinal
	duel.OpponentFinal = &opponentFinal
	duel.WinnerID = outcome.WinnerID
	duel.BonusPending = outcome.WinnerID != nil && s.awarder != nil
	if err := s.repo.CompleteDuel(ctx, duel); err != nil {
		if errors.Is(err, domain.ErrDuelNotActive) {
			logger.FromContext(ctx).Info(LogMsgAlreadySettled, "duel_id", duel.ID)
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgCompleteDuel, err)
	}
	duel.Status = domain.DuelStatusCompleted

	logger.FromContext(ctx).Info(LogMsgDuelCompleted,
		"duel_id", duel.ID,
		"kind", outcome.Kind,
		"winner_id", winnerOf(outcome),
		"challenger_gain", outcome.ChallengerXPGained,
		"opponent_gain", outcome.OpponentXPGained,
		"perfect_balance", outcome.PerfectBalance)

	s.publish(ctx, event.New(event.DuelCompleted, event.DuelCompletedPayloadV1{
		DuelID:             duel.ID,
		Kind:               outcome.Kind,
		WinnerID:           outcome.WinnerID,
		ChallengerID:       duel.ChallengerID,
		OpponentID:         duel.OpponentID,
		ChallengerXPGained: outcome.ChallengerXPGained,
		OpponentXPGained:   outcome.OpponentXPGained,
		PerfectBalance:     outcome.PerfectBalance,
	}))

	if err := s.payBonuses(ctx, duel, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

// resumePayout rebuilds the outcome of a completed duel from its stored
// finals and pays whatever bonus is still owed
func (s *service) resumePayout(ctx context.Context, duel *domain.Duel) (*domain.DuelOutcome, error) {
	if duel.ChallengerFinal == nil || duel.OpponentFinal == nil {
		return nil, fmt.Errorf("%s: %s", ErrMsgMissingFinals, duel.ID)
	}
	outcome := Decide(duel, *duel.ChallengerFinal, *duel.OpponentFinal)
	logger.FromContext(ctx).Info(LogMsgPayoutRetried, "duel_id", duel.ID, "winner_id", winnerOf(outcome))
	if err := s.payBonuses(ctx, duel, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

// payBonuses pays the win bonus and, when earned, the perfect-balance bonus,
// then clears the duel's pending flag. Every award carries the duel id as its
// reference, so a retry after a partial payout is refused for the part
// already paid instead of paying it twice.
func (s *service) payBonuses(ctx context.Context, duel *domain.Duel, outcome *domain.DuelOutcome) error {
	if !duel.BonusPending || outcome.WinnerID == nil || s.awarder == nil {
		return nil
	}

	win, err := s.payBonus(ctx, duel, *outcome.WinnerID, BonusActionWin)
	if err != nil {
		return err
	}
	outcome.WinBonus = win

	if outcome.PerfectBalance {
		perfect, err := s.payBonus(ctx, duel, *outcome.WinnerID, BonusActionPerfect)
		if err != nil {
			return err
		}
		outcome.PerfectBonus = perfect
	}

	if err := s.repo.MarkBonusPaid(ctx, duel.ID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMarkBonusPaid, err)
	}
	duel.BonusPending = false
	return nil
}

// Decide computes the outcome of a duel from its final snapshots.
//
// Both penalized is a draw. One penalized loses to the other regardless of XP.
// Otherwise the strictly larger XP gain wins and an exact tie goes to the
// opponent. The perfect-balance bonus qualifies when either participant ends
// within 45%..55%, not only the winner.
func Decide(duel *domain.Duel, challengerFinal, opponentFinal domain.DuelSnapshot) *domain.DuelOutcome {
	out := &domain.DuelOutcome{
		DuelID:              duel.ID,
		ChallengerXPGained:  challengerFinal.XP - duel.ChallengerStart.XP,
		OpponentXPGained:    opponentFinal.XP - duel.OpponentStart.XP,
		ChallengerPenalized: duel.ChallengerPenalized,
		OpponentPenalized:   duel.OpponentPenalized,
		PerfectBalance: archetype.IsPerfectlyBalanced(challengerFinal.Warrior, challengerFinal.Mage) ||
			archetype.IsPerfectlyBalanced(opponentFinal.Warrior, opponentFinal.Mage),
	}

	var winner string
	switch {
	case duel.ChallengerPenalized && duel.OpponentPenalized:
		out.Kind = domain.DuelOutcomeDraw
		return out
	case duel.ChallengerPenalized:
		winner = duel.OpponentID
	case duel.OpponentPenalized:
		winner = duel.ChallengerID
	case out.ChallengerXPGained > out.OpponentXPGained:
		winner = duel.ChallengerID
	default:
		winner = duel.OpponentID
	}

	out.Kind = domain.DuelOutcomeWin
	out.WinnerID = &winner
	return out
}

// payBonus awards one bonus. A refusal is a settled result; only an
// infrastructure failure leaves the bonus pending.
func (s *service) payBonus(ctx context.Context, duel *domain.Duel, winnerID, action string) (*domain.SecondaryAwardResult, error) {
	loser := duel.ChallengerID
	if winnerID == duel.ChallengerID {
		loser = duel.OpponentID
	}
	res, err := s.awarder.AwardSecondaryXP(ctx, winnerID, BonusCategory, action, map[string]interface{}{
		MetadataKeyDuelID:           duel.ID.String(),
		MetadataKeyOpponent:         loser,
		domain.MetadataKeyReference: duel.ID.String(),
	})
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgBonusFailed, "duel_id", duel.ID, "user_id", winnerID, "action", action, "error", err)
		return nil, fmt.Errorf("%s %s: %w", ErrMsgPayBonus, action, err)
	}
	if !res.Success {
		logger.FromContext(ctx).Info(LogMsgBonusRefused, "duel_id", duel.ID, "user_id", winnerID, "action", action, "reason", res.Error)
	}
	return res, nil
}

// winnerOf returns the winner's id, or "" for a draw
func winnerOf(outcome *domain.DuelOutcome) string {
	if outcome.WinnerID == nil {
		return ""
	}
	return *outcome.WinnerID
}

// Sweep retries owed duel bonuses, settles expired active duels and declines
// pending ones past the TTL. Each duel is handled independently; failures are
// counted and logged.
func (s *service) Sweep(ctx context.Context) (SweepResult, error) {
	log := logger.FromContext(ctx)
	var res SweepResult
	now := s.now()

	owed, err := s.repo.ListPendingBonusDuels(ctx)
	if err != nil {
		return res, fmt.Errorf("%s: %w", ErrMsgListPendingBonus, err)
	}
	for i := range owed {
		if _, err := s.resumePayout(ctx, &owed[i]); err != nil {
			res.Failed++
			log.Error(LogMsgSweepFailed, "duel_id", owed[i].ID, "error", err)
			continue
		}
		res.BonusesPaid++
	}

	expired, err := s.repo.ListExpiredActiveDuels(ctx, now)
	if err != nil {
		return res, fmt.Errorf("%s: %w", ErrMsgListExpired, err)
	}
	for i := range expired {
		if _, err := s.settle(ctx, &expired[i]); err != nil {
			if errors.Is(err, domain.ErrDuelNotActive) {
				continue
			}
			res.Failed++
			log.Error(LogMsgSweepFailed, "duel_id", expired[i].ID, "error", err)
			continue
		}
		res.Completed++
	}

	stale, err := s.repo.ListStalePendingDuels(ctx, now.Add(-s.cfg.PendingTTL))
	if err != nil {
		return res, fmt.Errorf("%s: %w", ErrMsgListStale, err)
	}
	for _, d := range stale {
		if err := s.repo.DeclineDuel(ctx, d.ID); err != nil {
			if errors.Is(err, domain.ErrDuelNotPending) {
				continue
			}
			res.Failed++
			log.Error(LogMsgSweepFailed, "duel_id", d.ID, "error", err)
			continue
		}
		res.Declined++
	}

	if res.Completed+res.Declined+res.BonusesPaid+res.Failed > 0 {
		log.Info(LogMsgSweepCompleted, "completed", res.Completed, "declined", res.Declined,
			"bonuses_paid", res.BonusesPaid, "failed", res.Failed)
	}
	return res, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
