package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be non-empty before start-up
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// envWarning flags a setting that works but is probably a mistake
type envWarning struct {
	applies func(get func(string) string) bool
	message string
}

var envWarnings = []envWarning{
	{
		applies: func(get func(string) string) bool { return get("DB_PASSWORD") == ExampleDBPassword },
		message: WarnMsgExampleDBPassword,
	},
	{
		applies: func(get func(string) string) bool { return get("API_KEY") == ExampleAPIKey },
		message: WarnMsgExampleAPIKey,
	},
	{
		applies: func(get func(string) string) bool {
			return (get("DISCORD_TOKEN") == "") != (get("DISCORD_ANNOUNCE_CHANNEL_ID") == "")
		},
		message: WarnMsgHalfDiscordConfig,
	},
	{
		applies: func(get func(string) string) bool {
			return get("STAT_WEIGHTS_PATH") == "" && get("ACTION_CATALOG_PATH") != ""
		},
		message: WarnMsgCatalogWithoutWeights,
	},
}

// ValidateEnv checks the schema version first, then every required variable
func ValidateEnv() error {
	version := os.Getenv("ENV_SCHEMA_VERSION")
	switch {
	case version == "":
		return fmt.Errorf("%s (expected %s)", ErrMsgMissingSchemaVersion, ExpectedEnvSchemaVersion)
	case version != ExpectedEnvSchemaVersion:
		return fmt.Errorf("%s: expected %s, got %s", ErrMsgSchemaVersionMismatch, ExpectedEnvSchemaVersion, version)
	}

	var missing []string
	for _, key := range RequiredEnvVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %s", ErrMsgMissingEnvVars, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and lists non-fatal problems
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, w := range envWarnings {
		if w.applies(os.Getenv) {
			warnings = append(warnings, w.message)
		}
	}
	return warnings, nil
}
