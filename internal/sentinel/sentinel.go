package sentinel

import "errors"

// Sentinel dependency errors. Upstream clients and stores return these
// (optionally wrapped) so the service can translate them into domain errors
// exactly once.
var (
	ErrNotFound    = errors.New("not found")
	ErrBadData     = errors.New("bad data")
	ErrUnavailable = errors.New("unavailable")
)
