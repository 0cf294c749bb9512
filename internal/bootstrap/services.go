package bootstrap

import (
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/config"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/duel"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/economy"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/eventlog"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/level"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/multiplier"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/progression"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xp"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xpevent"
)

// Services holds every domain service
type Services struct {
	Progression progression.Service
	Economy     economy.Service
	Duels       duel.Service
	XPEvents    xpevent.Service
	EventLog    eventlog.Service
	Multiplier  *multiplier.Engine
}

// InitializeServices wires the services in dependency order: the multiplier
// engine first, then the economy that duels and submissions award through.
func InitializeServices(cfg *config.Config, repos *Repositories, rules *Rules, publisher event.Publisher) *Services {
	now := time.Now
	levels := level.DefaultTable()

	engine := multiplier.NewEngine(repos.Progression, repos.XPEvent, multiplier.NoCatchUp{}, MultiplierConfig(cfg),
		multiplier.WithClock(now))

	economySvc := economy.NewService(repos.Economy, repos.Progression, engine, levels, rules.Catalog, publisher,
		economy.WithClock(now),
		economy.WithLocation(cfg.DayLocation))

	duelSvc := duel.NewService(repos.Duel, repos.Progression, economySvc, publisher, duel.Config{
		Duration:   cfg.DuelDuration,
		PendingTTL: cfg.DuelPendingTTL,
	}, duel.WithClock(now))

	progressionSvc := progression.NewService(progression.Deps{
		Repo:       repos.Progression,
		Boosts:     repos.Economy,
		Calculator: xp.NewCalculator(rules.Weights),
		Multiplier: engine,
		Levels:     levels,
		Awarder:    economySvc,
		Duels:      duelSvc,
		Publisher:  publisher,
		Location:   cfg.DayLocation,
		Now:        now,
	})

	return &Services{
		Progression: progressionSvc,
		Economy:     economySvc,
		Duels:       duelSvc,
		XPEvents:    xpevent.NewService(repos.XPEvent, publisher, now),
		EventLog:    eventlog.NewService(repos.EventLog),
		Multiplier:  engine,
	}
}

// MultiplierConfig maps the configured bonuses onto the engine config.
// Unset knobs keep the engine defaults.
func MultiplierConfig(cfg *config.Config) multiplier.Config {
	mc := multiplier.DefaultConfig()
	mc.Cap = cfg.MultiplierCap
	mc.MaxStreakBonus = cfg.MaxStreakBonus
	mc.StateGoodBonus = cfg.StateGoodBonus
	mc.TemplarDayBonus = cfg.TemplarDayBonus
	return mc
}
