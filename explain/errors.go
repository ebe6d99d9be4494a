package explain

import "errors"

var (
	// ErrTableRequired is returned when a structured statement has no table name.
	ErrTableRequired = errors.New("explain: table name is required")

	// ErrNoDatabase indicates that an Explainer was used without a connection.
	ErrNoDatabase = errors.New("explain: database handle is required")

	// ErrQueryFailed wraps errors reported by the engine while preparing or running the plan query.
	ErrQueryFailed = errors.New("explain: query failed")

	// ErrMissingDetailColumn indicates that the plan result set has no "detail" column.
	// The engine's EXPLAIN QUERY PLAN output no longer matches the expected contract.
	ErrMissingDetailColumn = errors.New("explain: plan result has no detail column")

	// ErrUnsupportedValue is returned when a Go value cannot be mapped onto an assignment Value.
	ErrUnsupportedValue = errors.New("explain: unsupported assignment value type")
)
