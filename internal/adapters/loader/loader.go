// Package loader reads the roster and performance files from disk and
// normalizes them into one batch.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/stagetally/internal/domain/model"
	"github.com/okian/stagetally/internal/domain/normalize"
	"github.com/okian/stagetally/internal/domain/roster"
	"github.com/okian/stagetally/pkg/logger"
)

// Dataset is the result of one load.
type Dataset struct {
	Groups   []roster.Group
	Files    []string // performance files in batch order
	Records  []model.Performance
	Rejected []normalize.Rejected
	Elapsed  time.Duration
}

// Loader reads a groups file and every performance file matching a glob.
type Loader struct {
	groupsPath  string
	glob        string
	concurrency int
	log         logger.Logger
}

// New creates a Loader.
func New(groupsPath, glob string, opts ...Option) *Loader {
	l := &Loader{
		groupsPath:  filepath.Clean(groupsPath),
		glob:        filepath.Clean(glob),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.Get().Named("loader")
	}
	return l
}

// Files returns the performance files currently matching the glob, sorted.
func (l *Loader) Files() ([]string, error) {
	files, err := filepath.Glob(l.glob)
	if err != nil {
		return nil, fmt.Errorf("%w: glob %q: %w", ErrLoad, l.glob, err)
	}
	sort.Strings(files)
	return files, nil
}

// Load reads all files and normalizes the concatenated records. Files are
// read concurrently but concatenated in sorted path order, so every record's
// SourceIndex is its position in that concatenation.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	files, err := l.Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		l.log.Warn(ctx, "no performance files matched", logger.String("glob", l.glob))
	}

	var groups []roster.Group
	batches := make([][]model.RawRecord, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	g.Go(func() error {
		var err error
		groups, err = l.readGroups()
		return err
	})
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			recs, err := readPerformances(path)
			if err != nil {
				return err
			}
			batches[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var raws []model.RawRecord
	for _, b := range batches {
		raws = append(raws, b...)
	}
	res := normalize.Normalize(raws)
	for _, rej := range res.Rejected {
		l.log.Warn(ctx, "rejected performance record",
			logger.Int("index", rej.Index),
			logger.Error(rej.Err),
		)
	}

	ds := &Dataset{
		Groups:   groups,
		Files:    files,
		Records:  res.Records,
		Rejected: res.Rejected,
		Elapsed:  time.Since(start),
	}
	l.log.Info(ctx, "dataset loaded",
		logger.Int("groups", len(groups)),
		logger.Int("files", len(files)),
		logger.Int("records", len(ds.Records)),
		logger.Int("rejected", len(ds.Rejected)),
		logger.Duration("elapsed", ds.Elapsed),
	)
	l.log.Debug(ctx, "performance files", logger.Strings("paths", files))
	return ds, nil
}

func (l *Loader) readGroups() ([]roster.Group, error) {
	f, err := os.Open(l.groupsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = f.Close() }()

	groups, err := decodeGroups(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, l.groupsPath, err)
	}
	return groups, nil
}

func readPerformances(path string) ([]model.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	var recs []model.RawRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return recs, nil
}
