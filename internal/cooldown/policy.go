// Package cooldown evaluates secondary award limits against the award ledger.
// No counters are kept: one-time claims, cooldowns and daily caps are all
// derived from ledger rows, read inside the award transaction.
package cooldown

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// Policy is the limit configuration of one catalog action
type Policy struct {
	OneTime   bool
	Cooldown  time.Duration
	MaxPerDay int
}

// LedgerView is the read side of the ledger needed to evaluate a policy
type LedgerView interface {
	HasClaimed(ctx context.Context, userID, category, action string) (bool, error)
	LastAwardTime(ctx context.Context, userID, category, action string) (*time.Time, error)
	CountAwardsOnDay(ctx context.Context, userID, category, action string, day time.Time) (int, error)
}

// Decision is the outcome of evaluating a policy
type Decision struct {
	Allowed   bool
	Reason    domain.AwardFailureReason
	Remaining time.Duration
	// DailySlot is the 1-based position of this award within the day when a
	// daily cap applies. Storage keys a unique index on it.
	DailySlot *int
}

// Evaluate checks one-time, cooldown and daily cap limits in that order
func Evaluate(ctx context.Context, view LedgerView, userID, category, action string, p Policy, now, day time.Time) (Decision, error) {
	log := logger.FromContext(ctx)

	if p.OneTime {
		claimed, err := view.HasClaimed(ctx, userID, category, action)
		if err != nil {
			return Decision{}, fmt.Errorf(ErrMsgCheckClaimedFailed, err)
		}
		if claimed {
			log.Debug(LogMsgAwardRefused, "user_id", userID, "action", domain.ActionKey(category, action), "reason", domain.AwardAlreadyClaimed)
			return Decision{Reason: domain.AwardAlreadyClaimed}, nil
		}
	}

	if p.Cooldown > 0 {
		lastUsed, err := view.LastAwardTime(ctx, userID, category, action)
		if err != nil {
			return Decision{}, fmt.Errorf(ErrMsgLastAwardFailed, err)
		}
		if onCooldown, remaining := checkCooldownInternal(lastUsed, p.Cooldown, now); onCooldown {
			log.Debug(LogMsgAwardRefused, "user_id", userID, "action", domain.ActionKey(category, action), "reason", domain.AwardOnCooldown, "remaining", remaining)
			return Decision{Reason: domain.AwardOnCooldown, Remaining: remaining}, nil
		}
	}

	var slot *int
	if p.MaxPerDay > 0 {
		count, err := view.CountAwardsOnDay(ctx, userID, category, action, day)
		if err != nil {
			return Decision{}, fmt.Errorf(ErrMsgCountAwardsFailed, err)
		}
		if count >= p.MaxPerDay {
			log.Debug(LogMsgAwardRefused, "user_id", userID, "action", domain.ActionKey(category, action), "reason", domain.AwardDailyLimitReached, "count", count)
			return Decision{Reason: domain.AwardDailyLimitReached}, nil
		}
		next := count + 1
		slot = &next
	}

	return Decision{Allowed: true, DailySlot: slot}, nil
}

func checkCooldownInternal(lastUsed *time.Time, duration time.Duration, now time.Time) (bool, time.Duration) {
	if lastUsed == nil {
		return false, 0
	}

	elapsed := now.Sub(*lastUsed)
	if elapsed < duration {
		return true, duration - elapsed
	}

	return false, 0
}

// RemainingSeconds rounds a remaining duration up to whole seconds
func RemainingSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(math.Ceil(d.Seconds()))
}

// FormatRemaining renders a user-facing cooldown message
func FormatRemaining(action string, remaining time.Duration) string {
	secs := RemainingSeconds(remaining)
	minutes := secs / SecondsPerMinute
	seconds := secs % SecondsPerMinute
	if minutes > 0 {
		return fmt.Sprintf(FmtCooldownWithMinutes, action, minutes, seconds)
	}
	return fmt.Sprintf(FmtCooldownSecondsOnly, action, seconds)
}

// LockKey hashes a user and catalog action into a positive advisory lock key
func LockKey(userID, category, action string) int64 {
	return hashUserAction(userID, domain.ActionKey(category, action))
}

func hashUserAction(userID, action string) int64 {
	h := sha256.Sum256([]byte(userID + HashSeparator + action))
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}
