// Package model contains domain models passed between layers.
package model

// Intra-day slot labels. The empty label sorts first.
const (
	SlotNone    = ""
	SlotMatinee = "昼"
	SlotEvening = "夜"
)

// NoSourceIndex marks a record that carries no order key.
const NoSourceIndex = -1

// RawRecord mirrors one element of a performance JSON file.
type RawRecord struct {
	Date    string   `json:"date"`
	Stage   string   `json:"stage"`
	Time    string   `json:"time,omitempty"`
	Members []string `json:"members"`
	Group   string   `json:"group,omitempty"` // optional explicit group id
}

// Performance is a normalized, immutable performance record.
type Performance struct {
	Date        string   // YYYY-MM-DD
	Stage       string   // "<GroupName> <StageTitle>"
	Time        string   // one of the slot labels
	Members     []string // trimmed member names
	Group       string   // explicit group, empty when inferred from Stage
	SourceIndex int      // position in the loaded batch
}

// Has reports whether member appeared in the performance.
func (p Performance) Has(member string) bool {
	for _, m := range p.Members {
		if m == member {
			return true
		}
	}
	return false
}

// Year returns the 4-character year prefix of Date.
func (p Performance) Year() string {
	if len(p.Date) < 4 {
		return p.Date
	}
	return p.Date[:4]
}

// Appearance is a numbered copy of a performance used for one report.
// Count is the member's Nth appearance and is assigned once, in ascending
// chronological order.
type Appearance struct {
	Count   int      `json:"count"`
	Date    string   `json:"date"`
	Stage   string   `json:"stage"`
	Time    string   `json:"time"`
	Members []string `json:"-"`
}
