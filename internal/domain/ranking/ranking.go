// Package ranking orders counted entries and assigns competition ranks.
package ranking

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/stagetally/internal/domain/types"
)

// Ranker sorts entries by count with a deterministic tie-break and assigns
// ranks. It is safe for concurrent use; each call builds its own collator.
type Ranker struct {
	lang language.Tag
}

// New constructs a Ranker. The default collation language is Japanese.
func New(opts ...Option) *Ranker {
	r := &Ranker{lang: language.Japanese}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRanker = New() //nolint:gochecknoglobals // stateless default

// Rank ranks entries with the default Ranker.
func Rank(entries []types.Entry, tieBreak []string) []types.Entry {
	return defaultRanker.Rank(entries, tieBreak)
}

// Rank returns a ranked copy of entries. Order: count desc; then position in
// tieBreak (listed names first, earlier first); then collation of the name.
// An empty tieBreak is valid and falls straight through to collation.
func (r *Ranker) Rank(entries []types.Entry, tieBreak []string) []types.Entry {
	out := make([]types.Entry, len(entries))
	copy(out, entries)

	pos := make(map[string]int, len(tieBreak))
	for i, name := range tieBreak {
		if _, seen := pos[name]; !seen {
			pos[name] = i
		}
	}
	col := collate.New(r.lang)

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		ai, aok := pos[a.Name]
		bi, bok := pos[b.Name]
		switch {
		case aok && bok:
			return ai < bi
		case aok:
			return true
		case bok:
			return false
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.Name < b.Name
	})

	AssignRanks(out)
	return out
}

// AssignRanks assigns competition ranks to entries already sorted by count
// desc. Equal counts share a rank and the next distinct count takes its
// 1-based position, so [5,5,3] ranks as [1,1,3].
func AssignRanks(entries []types.Entry) {
	for i := range entries {
		if i > 0 && entries[i].Count == entries[i-1].Count {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

// Limit truncates a ranked list to at most n entries; n <= 0 keeps all.
func Limit(entries []types.Entry, n int) []types.Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}
