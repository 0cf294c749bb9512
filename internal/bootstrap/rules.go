package bootstrap

import (
	"context"
	"fmt"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/config"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/economy"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/validation"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xp"
)

// Rules are the data-driven tables the services are built from
type Rules struct {
	Weights xp.WeightTable
	Catalog economy.Catalog
}

// LoadRules reads the stat weights and action catalog from the configured
// paths. Files are schema-checked before they are decoded. An empty path
// selects the built-in table.
func LoadRules(ctx context.Context, cfg *config.Config) (*Rules, error) {
	log := logger.FromContext(ctx)
	schemas := validation.NewSchemaValidator()
	rules := &Rules{}

	if cfg.StatWeightsPath == "" {
		log.Info(LogMsgUsingDefaultWeights)
		rules.Weights = xp.DefaultWeightTable()
	} else {
		if err := schemas.ValidateFile(cfg.StatWeightsPath, validation.SchemaStatWeights); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadWeights, err)
		}
		w, err := xp.LoadWeightTable(cfg.StatWeightsPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadWeights, err)
		}
		rules.Weights = w
	}

	if cfg.ActionCatalogPath == "" {
		log.Info(LogMsgUsingDefaultCatalog)
		rules.Catalog = economy.DefaultCatalog()
	} else {
		if err := schemas.ValidateFile(cfg.ActionCatalogPath, validation.SchemaActionCatalog); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
		}
		c, err := economy.LoadCatalog(cfg.ActionCatalogPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
		}
		rules.Catalog = c
	}

	log.Info(LogMsgRulesLoaded, "stats", len(rules.Weights), "categories", len(rules.Catalog))
	return rules, nil
}
