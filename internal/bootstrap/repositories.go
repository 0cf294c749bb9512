package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/database/postgres"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

// Repositories holds the storage ports of every service
type Repositories struct {
	Progression repository.Progression
	Economy     repository.Economy
	Duel        repository.Duel
	XPEvent     repository.XPEvent
	EventLog    repository.EventLog
}

// InitializeRepositories builds the PostgreSQL repositories over one pool
func InitializeRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Progression: postgres.NewProgressionRepository(pool),
		Economy:     postgres.NewEconomyRepository(pool),
		Duel:        postgres.NewDuelRepository(pool),
		XPEvent:     postgres.NewXPEventRepository(pool),
		EventLog:    postgres.NewEventLogRepository(pool),
	}
}
