package planexplain

import "errors"

// Configuration errors
var (
	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrUnsupportedDriver indicates a driver other than SQLite. Plans are read from the
	// "detail" column that only SQLite's EXPLAIN QUERY PLAN produces.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
