// Package repository keeps the loaded dataset as immutable snapshots.
package repository

import (
	"context"
	"time"

	"github.com/okian/stagetally/internal/adapters/loader"
	"github.com/okian/stagetally/internal/domain/model"
	"github.com/okian/stagetally/internal/domain/normalize"
	"github.com/okian/stagetally/internal/domain/roster"
)

// Snapshot is one immutable, fully resolved dataset. Readers must not
// mutate any slice reachable from it.
type Snapshot struct {
	Version    string
	LoadedAt   time.Time
	Roster     *roster.Roster
	Records    []model.Performance
	ByGroup    map[string][]model.Performance // base group -> records, batch order
	Unassigned int
	Rejected   []normalize.Rejected
	Files      []string
}

// Performances returns the records owned by base group.
func (s *Snapshot) Performances(base string) []model.Performance {
	return s.ByGroup[base]
}

// Loaded reports whether the snapshot came from a data load.
func (s *Snapshot) Loaded() bool {
	return s.Version != ""
}

// Store provides access to the current dataset snapshot.
type Store interface {
	// Current returns the latest snapshot. It never returns nil.
	Current() *Snapshot
	// Publish builds a snapshot from ds and makes it current.
	Publish(ctx context.Context, ds *loader.Dataset) (*Snapshot, error)
}
