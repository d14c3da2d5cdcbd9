package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Adapters return these (wrapped)
// so services can translate them into domain errors without inspecting
// transport details.
//
// - ErrUnavailable: the remote service could not be reached
// - ErrRejected: the remote service answered with a non-success status
// - ErrMisconfigured: the adapter was built without the settings it needs
//
// For validation errors (bad input), use pkg/domain-errors directly.
var (
	ErrUnavailable   = errors.New("unavailable")
	ErrRejected      = errors.New("rejected")
	ErrMisconfigured = errors.New("misconfigured")
)
