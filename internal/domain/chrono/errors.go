package chrono

import "errors"

// Sentinel kinds for ordering errors.
var (
	ErrMissingOrderKey  = errors.New("missing order key")
	ErrInvalidDirection = errors.New("invalid direction")
)
