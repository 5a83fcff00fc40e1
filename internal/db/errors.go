package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
	// ErrUnsupported is returned when the server rejects a command shape it cannot serve
	// (CROSSSLOT in cluster mode, disabled or unknown command).
	ErrUnsupported = errors.New("db: operation not supported")
)

// Op constants map to Valkey/Redis command names for error context.
const (
	OpGet       = "GET"
	OpHGetAll   = "HGETALL"
	OpSMembers  = "SMEMBERS"
	OpSInter    = "SINTER"
	OpZRange    = "ZRANGE"
	OpZMScore   = "ZMSCORE"
	OpLRange    = "LRANGE"
	OpGeoSearch = "GEOSEARCH"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
