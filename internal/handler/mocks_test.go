package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/duel"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/economy"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/progression"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xpevent"
)

type MockProgressionService struct {
	mock.Mock
}

func (m *MockProgressionService) SubmitStats(ctx context.Context, sub progression.Submission) (*progression.Result, error) {
	args := m.Called(ctx, sub)
	res, _ := args.Get(0).(*progression.Result)
	return res, args.Error(1)
}

func (m *MockProgressionService) GetProfile(ctx context.Context, userID string) (*progression.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*progression.Profile)
	return p, args.Error(1)
}

func (m *MockProgressionService) RecordChatEngagement(ctx context.Context, userID string) (*domain.SecondaryAwardResult, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*domain.SecondaryAwardResult)
	return res, args.Error(1)
}

func (m *MockProgressionService) SetFaction(ctx context.Context, userID, faction string) error {
	return m.Called(ctx, userID, faction).Error(0)
}

func (m *MockProgressionService) ResetUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) AwardSecondaryXP(ctx context.Context, userID, category, action string, metadata map[string]interface{}) (*domain.SecondaryAwardResult, error) {
	args := m.Called(ctx, userID, category, action, metadata)
	res, _ := args.Get(0).(*domain.SecondaryAwardResult)
	return res, args.Error(1)
}

func (m *MockEconomyService) GetAwardHistory(ctx context.Context, userID string, limit int) ([]domain.AwardLedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	entries, _ := args.Get(0).([]domain.AwardLedgerEntry)
	return entries, args.Error(1)
}

func (m *MockEconomyService) GetActiveBoosts(ctx context.Context, userID string) ([]domain.MultiplierBoost, error) {
	args := m.Called(ctx, userID)
	boosts, _ := args.Get(0).([]domain.MultiplierBoost)
	return boosts, args.Error(1)
}

func (m *MockEconomyService) PurgeExpiredBoosts(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEconomyService) Catalog() economy.Catalog {
	args := m.Called()
	c, _ := args.Get(0).(economy.Catalog)
	return c
}

type MockDuelService struct {
	mock.Mock
}

func (m *MockDuelService) CreateDuel(ctx context.Context, challengerID, opponentID string) (*domain.Duel, error) {
	args := m.Called(ctx, challengerID, opponentID)
	d, _ := args.Get(0).(*domain.Duel)
	return d, args.Error(1)
}

func (m *MockDuelService) GetDuel(ctx context.Context, id uuid.UUID) (*domain.Duel, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*domain.Duel)
	return d, args.Error(1)
}

func (m *MockDuelService) AcceptDuel(ctx context.Context, id uuid.UUID, userID string) (*domain.Duel, error) {
	args := m.Called(ctx, id, userID)
	d, _ := args.Get(0).(*domain.Duel)
	return d, args.Error(1)
}

func (m *MockDuelService) DeclineDuel(ctx context.Context, id uuid.UUID, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockDuelService) TrackDuelStat(ctx context.Context, userID, statName string, value int, xpEarned, warriorDelta, mageDelta int64) error {
	return m.Called(ctx, userID, statName, value, xpEarned, warriorDelta, mageDelta).Error(0)
}

func (m *MockDuelService) CompleteDuel(ctx context.Context, id uuid.UUID) (*domain.DuelOutcome, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*domain.DuelOutcome)
	return o, args.Error(1)
}

func (m *MockDuelService) Sweep(ctx context.Context) (duel.SweepResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(duel.SweepResult), args.Error(1)
}

type MockXPEventService struct {
	mock.Mock
}

func (m *MockXPEventService) CreateEvent(ctx context.Context, req xpevent.CreateRequest) (*domain.GlobalXPEvent, error) {
	args := m.Called(ctx, req)
	ev, _ := args.Get(0).(*domain.GlobalXPEvent)
	return ev, args.Error(1)
}

func (m *MockXPEventService) GetEvent(ctx context.Context, id uuid.UUID) (*domain.GlobalXPEvent, error) {
	args := m.Called(ctx, id)
	ev, _ := args.Get(0).(*domain.GlobalXPEvent)
	return ev, args.Error(1)
}

func (m *MockXPEventService) ListActive(ctx context.Context) ([]domain.GlobalXPEvent, error) {
	args := m.Called(ctx)
	evs, _ := args.Get(0).([]domain.GlobalXPEvent)
	return evs, args.Error(1)
}

func (m *MockXPEventService) EndEvent(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockXPEventService) Sweep(ctx context.Context) (xpevent.SweepResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(xpevent.SweepResult), args.Error(1)
}

var (
	_ progression.Service = (*MockProgressionService)(nil)
	_ economy.Service     = (*MockEconomyService)(nil)
	_ duel.Service        = (*MockDuelService)(nil)
	_ xpevent.Service     = (*MockXPEventService)(nil)
)
