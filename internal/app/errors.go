package service

import (
	"errors"

	"github.com/okian/stagetally/internal/adapters/loader"
)

// Sentinel kinds for service errors.
var (
	ErrNoLoader = errors.New("no data loader configured")

	// ErrWatch marks a Start whose file watcher could not be set up. The
	// service still runs; only automatic reloads are off.
	ErrWatch = loader.ErrWatch
)
