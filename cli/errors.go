package cli

import "errors"

// Error definitions
var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidAssignment   = errors.New("invalid assignment")
	ErrSetRequiresUpdate   = errors.New("--set requires --update")
	ErrModeConflict        = errors.New("a raw SQL argument cannot be combined with statement-building flags")
	ErrDatabaseConnection  = errors.New("database connection failed")
	ErrSchemaFileNotFound  = errors.New("schema file not found")
	ErrNoFixtures          = errors.New("no fixture files given")
	ErrChecksFailed        = errors.New("plan checks failed")
)
