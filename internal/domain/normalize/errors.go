package normalize

import "errors"

// Sentinel kinds for normalization errors.
var (
	ErrMalformedDate = errors.New("malformed date")
)
