package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Clients and caches return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in the store or cache
// - ErrRejected: downstream service refused the payload outright
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound = errors.New("not found")
	ErrRejected = errors.New("rejected")
)
