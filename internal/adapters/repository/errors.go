package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNilDataset = errors.New("nil dataset")
)
