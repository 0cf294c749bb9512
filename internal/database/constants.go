package database

// DefaultMinConnections is the minimum number of connections kept open
const DefaultMinConnections = 2

// Error messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgFailedToResetSchema     = "failed to reset schema"
)

// Log messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied                = "Migration applied"
	LogMsgMigrationsUpToDate              = "Database schema up to date"
	LogMsgSchemaReset                     = "Database schema reset"
)
