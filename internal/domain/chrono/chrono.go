// Package chrono orders performance records and numbers a member's appearances.
package chrono

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/stagetally/internal/domain/model"
)

// Direction selects ascending or descending order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// slotOrder is the fixed intra-day ordering; unknown labels rank as 0.
var slotOrder = map[string]int{ //nolint:gochecknoglobals // fixed lookup table
	model.SlotNone:    0,
	model.SlotMatinee: 1,
	model.SlotEvening: 2,
}

// Slot returns the ordering rank of a time label.
func Slot(label string) int {
	return slotOrder[label]
}

// Order returns a sorted copy of records. Date is always ascending; the slot
// and source index follow dir. Every record must carry a unique order key,
// otherwise ErrMissingOrderKey is returned.
func Order(records []model.Performance, dir Direction) ([]model.Performance, error) {
	out := make([]model.Performance, len(records))
	copy(out, records)

	for _, p := range out {
		if p.SourceIndex < 0 {
			return nil, fmt.Errorf("%w: %s %q has no source index", ErrMissingOrderKey, p.Date, p.Stage)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		sa, sb := Slot(a.Time), Slot(b.Time)
		if sa != sb {
			if dir == Descending {
				return sa > sb
			}
			return sa < sb
		}
		if dir == Descending {
			return a.SourceIndex > b.SourceIndex
		}
		return a.SourceIndex < b.SourceIndex
	})

	for i := 1; i < len(out); i++ {
		a, b := out[i-1], out[i]
		if a.Date == b.Date && Slot(a.Time) == Slot(b.Time) && a.SourceIndex == b.SourceIndex {
			return nil, fmt.Errorf("%w: duplicate key %s/%q/%d", ErrMissingOrderKey, a.Date, a.Time, a.SourceIndex)
		}
	}
	return out, nil
}

// Of returns the records in which member appears, preserving order.
func Of(records []model.Performance, member string) []model.Performance {
	out := make([]model.Performance, 0)
	for _, p := range records {
		if p.Has(member) {
			out = append(out, p)
		}
	}
	return out
}

// Split partitions records into those on or before today and those after.
// today is a YYYY-MM-DD string.
func Split(records []model.Performance, today string) (past, future []model.Performance) {
	for _, p := range records {
		if p.Date <= today {
			past = append(past, p)
		} else {
			future = append(future, p)
		}
	}
	return past, future
}

// Number attaches Count = 1..N to records already in ascending order.
func Number(ordered []model.Performance) []model.Appearance {
	return Continue(ordered, 0)
}

// Continue numbers ascending records starting at from+1.
func Continue(ordered []model.Performance, from int) []model.Appearance {
	out := make([]model.Appearance, len(ordered))
	for i, p := range ordered {
		out[i] = model.Appearance{
			Count:   from + i + 1,
			Date:    p.Date,
			Stage:   p.Stage,
			Time:    p.Time,
			Members: p.Members,
		}
	}
	return out
}

// Display returns numbered rows ordered by their assigned Count. Counts are
// never reassigned.
func Display(numbered []model.Appearance, dir Direction) []model.Appearance {
	out := make([]model.Appearance, len(numbered))
	copy(out, numbered)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return out[i].Count > out[j].Count
		}
		return out[i].Count < out[j].Count
	})
	return out
}
