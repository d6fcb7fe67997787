// Package tally aggregates performance counts by stage, year and participant.
package tally

import (
	"sort"

	"github.com/okian/stagetally/internal/domain/model"
	"github.com/okian/stagetally/internal/domain/types"
)

// StageFunc maps a raw stage label to its display name.
type StageFunc func(stage string) string

// counter accumulates counts and remembers first-seen order.
type counter struct {
	index map[string]int
	rows  []types.Entry
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(name string) {
	if i, ok := c.index[name]; ok {
		c.rows[i].Count++
		return
	}
	c.index[name] = len(c.rows)
	c.rows = append(c.rows, types.Entry{Name: name, Count: 1})
}

// ByStage counts history per display stage name, count descending. Ties
// keep first-seen order.
func ByStage(history []model.Appearance, stage StageFunc) []types.StageCount {
	c := newCounter()
	for _, a := range history {
		c.add(stage(a.Stage))
	}
	sort.SliceStable(c.rows, func(i, j int) bool {
		return c.rows[i].Count > c.rows[j].Count
	})
	out := make([]types.StageCount, len(c.rows))
	for i, r := range c.rows {
		out[i] = types.StageCount{Stage: r.Name, Count: r.Count}
	}
	return out
}

// ByYear counts history per 4-digit year, year descending.
func ByYear(history []model.Appearance) []types.YearCount {
	c := newCounter()
	for _, a := range history {
		c.add(model.Performance{Date: a.Date}.Year())
	}
	out := make([]types.YearCount, len(c.rows))
	for i, r := range c.rows {
		out[i] = types.YearCount{Year: r.Name, Count: r.Count}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Year > out[j].Year
	})
	return out
}

// StageParticipants counts every member across the performances whose
// display stage name equals stage. Entries are unranked, first-seen order.
func StageParticipants(performances []model.Performance, stage string, fn StageFunc) []types.Entry {
	c := newCounter()
	for _, p := range performances {
		if fn(p.Stage) != stage {
			continue
		}
		for _, m := range p.Members {
			c.add(m)
		}
	}
	return c.rows
}

// YearParticipants counts every member across the performances held in year.
func YearParticipants(performances []model.Performance, year string) []types.Entry {
	c := newCounter()
	for _, p := range performances {
		if p.Year() != year {
			continue
		}
		for _, m := range p.Members {
			c.add(m)
		}
	}
	return c.rows
}

// CoAppearances counts how often each other member shared a performance
// with member across history.
func CoAppearances(history []model.Appearance, member string) []types.Entry {
	c := newCounter()
	for _, a := range history {
		for _, m := range a.Members {
			if m != member {
				c.add(m)
			}
		}
	}
	return c.rows
}
