// Package types contains common types used across the application
package types

// Entry represents a ranked row: a name, how often it was counted, and the
// competition rank assigned by the ranking engine. Rank is zero until ranked.
type Entry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StageCount is one row of a per-stage tally.
type StageCount struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// YearCount is one row of a per-year tally.
type YearCount struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

// ScopedRanking is a ranking of every participant within one stage or year.
type ScopedRanking struct {
	Scope   string  `json:"scope"`
	Entries []Entry `json:"entries"`
}
