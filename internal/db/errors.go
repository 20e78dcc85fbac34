package db

import "errors"

// ErrKeyNotFound is returned when a key does not exist.
var ErrKeyNotFound = errors.New("db: key not found")

// Op constants map to Valkey command names (or SQL verbs) for error context.
const (
	OpDel    = "DEL"
	OpScan   = "SCAN"
	OpGet    = "GET"
	OpGetDel = "GETDEL"
	OpSet    = "SET"
	OpIncrBy = "INCRBY"
	OpExpire = "EXPIRE"
	OpSelect = "SELECT"
	OpUpdate = "UPDATE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
