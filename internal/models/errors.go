// internal/models/errors.go
package models

import "errors"

// State machine failures. Services return these unwrapped so handlers
// can map them with errors.Is.
var (
	ErrItemNotPending   = errors.New("item already reviewed")
	ErrItemNotAvailable = errors.New("item not available")
	ErrSwapNotPending   = errors.New("swap already processed")
	ErrSwapNotAccepted  = errors.New("swap not accepted")
)
