package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/stagetally/internal/adapters/loader"
	"github.com/okian/stagetally/internal/domain/model"
	"github.com/okian/stagetally/internal/domain/roster"
	"github.com/okian/stagetally/internal/domain/stagename"
	"github.com/okian/stagetally/pkg/metrics"
)

// SnapshotStore holds the current Snapshot behind an atomic pointer.
// Publishing swaps the pointer; readers holding an older snapshot keep a
// consistent view.
type SnapshotStore struct {
	snapshot   atomic.Pointer[Snapshot]
	published  atomic.Int64
	rosterOpts []roster.Option
	now        func() time.Time
}

// NewSnapshotStore constructs a store holding an empty snapshot.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot.Store(&Snapshot{
		Roster:  roster.New(nil, s.rosterOpts...),
		ByGroup: map[string][]model.Performance{},
	})
	return s
}

// Current implements Store.Current.
func (s *SnapshotStore) Current() *Snapshot {
	return s.snapshot.Load()
}

// Publish implements Store.Publish.
func (s *SnapshotStore) Publish(_ context.Context, ds *loader.Dataset) (*Snapshot, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	snap := s.build(ds)
	s.snapshot.Store(snap)
	s.published.Add(1)

	metrics.ObserveDataset(
		len(snap.Records),
		snap.Roster.Len(),
		snap.Unassigned,
		len(snap.Rejected),
		float64(ds.Elapsed.Milliseconds()),
		snap.LoadedAt.Unix(),
	)
	return snap, nil
}

// Published returns how many snapshots were published.
func (s *SnapshotStore) Published() int64 {
	return s.published.Load()
}

func (s *SnapshotStore) build(ds *loader.Dataset) *Snapshot {
	r := roster.New(ds.Groups, s.rosterOpts...)
	byGroup := stagename.NewResolver(r.Bases()).Partition(ds.Records)

	assigned := 0
	for _, recs := range byGroup {
		assigned += len(recs)
	}

	return &Snapshot{
		Version:    uuid.NewString(),
		LoadedAt:   s.now(),
		Roster:     r,
		Records:    ds.Records,
		ByGroup:    byGroup,
		Unassigned: len(ds.Records) - assigned,
		Rejected:   ds.Rejected,
		Files:      ds.Files,
	}
}
