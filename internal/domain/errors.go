package domain

import "errors"

// Structural input errors abort the enclosing evaluation; callers match them
// with errors.Is to map onto their own error surface.
var (
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrInvalidFacility     = errors.New("invalid facility")
	ErrMissingRegionalData = errors.New("missing regional data")
	ErrInvalidScenario     = errors.New("invalid scenario")
)
