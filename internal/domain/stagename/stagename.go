// Package stagename derives display stage names and owning groups from stage labels.
package stagename

import (
	"sort"
	"strings"

	"github.com/okian/stagetally/internal/domain/model"
)

// Strip removes the group-name prefix from a stage label and trims the rest.
// A label that does not start with group is only trimmed.
func Strip(stage, group string) string {
	if group != "" {
		stage = strings.TrimPrefix(stage, group)
	}
	return strings.TrimSpace(stage)
}

// For returns a stage-name function bound to group, as consumed by the
// tally engine.
func For(group string) func(string) string {
	return func(stage string) string { return Strip(stage, group) }
}

// Resolver maps performance records to the base group they belong to.
// Prefix inference is longest-prefix-wins so that a group whose name is a
// prefix of another cannot capture the other's stages.
type Resolver struct {
	groups []string // longest first
	known  map[string]struct{}
}

// NewResolver builds a resolver over the given base group names.
func NewResolver(groups []string) *Resolver {
	r := &Resolver{
		groups: make([]string, 0, len(groups)),
		known:  make(map[string]struct{}, len(groups)),
	}
	for _, g := range groups {
		if g == "" {
			continue
		}
		if _, dup := r.known[g]; dup {
			continue
		}
		r.known[g] = struct{}{}
		r.groups = append(r.groups, g)
	}
	sort.SliceStable(r.groups, func(i, j int) bool {
		return len(r.groups[i]) > len(r.groups[j])
	})
	return r
}

// Group returns the owning group of p and whether one was found. An explicit
// Group on the record wins over prefix inference when it names a known group.
func (r *Resolver) Group(p model.Performance) (string, bool) {
	if p.Group != "" {
		if _, ok := r.known[p.Group]; ok {
			return p.Group, true
		}
	}
	return r.Stage(p.Stage)
}

// Stage returns the longest known group name that prefixes stage.
func (r *Resolver) Stage(stage string) (string, bool) {
	for _, g := range r.groups {
		if strings.HasPrefix(stage, g) {
			return g, true
		}
	}
	return "", false
}

// Partition splits records by owning group, preserving input order.
// Records matching no group are dropped.
func (r *Resolver) Partition(records []model.Performance) map[string][]model.Performance {
	out := make(map[string][]model.Performance, len(r.groups))
	for _, p := range records {
		if g, ok := r.Group(p); ok {
			out[g] = append(out[g], p)
		}
	}
	return out
}
