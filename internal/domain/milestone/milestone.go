// Package milestone detects and predicts appearance-count milestones.
package milestone

import (
	"github.com/okian/stagetally/internal/domain/model"
)

// Policy holds the milestone interval and the prediction window.
type Policy struct {
	Step   int
	Window int
}

// New creates a Policy with defaults and the given options.
func New(opts ...Option) Policy {
	p := Policy{Step: DefaultStep, Window: DefaultWindow}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Event identifies the performance at which a milestone is crossed.
type Event struct {
	Date  string `json:"date"`
	Stage string `json:"stage"`
	Time  string `json:"time"`
}

// Status describes the next milestone relative to a historical count.
type Status struct {
	Next      int    `json:"next"`
	Remaining int    `json:"remaining"`
	Predicted *Event `json:"predicted,omitempty"`
}

// Reached is a milestone already crossed.
type Reached struct {
	Milestone int    `json:"milestone"`
	Date      string `json:"date"`
	Stage     string `json:"stage"`
	Time      string `json:"time"`
}

// Next returns the next multiple of Step at or above historical and the
// distance to it. A count sitting exactly on a milestone has Remaining 0.
func (p Policy) Next(historical int) Status {
	if historical <= 0 {
		return Status{}
	}
	step := p.step()
	next := (historical + step - 1) / step * step
	return Status{Next: next, Remaining: next - historical}
}

// Pending reports whether s is close enough to predict.
func (p Policy) Pending(s Status) bool {
	window := p.Window
	if window <= 0 {
		window = DefaultWindow
	}
	return s.Remaining > 0 && s.Remaining <= window
}

// step guards the zero Policy against division by zero.
func (p Policy) step() int {
	if p.Step <= 0 {
		return DefaultStep
	}
	return p.Step
}

// Predict returns the milestone status for historical and, when within the
// window, the future performance at which the milestone is reached. The
// second result is false when no milestone is pending. future must be in
// ascending order. Running out of future performances is not an error; the
// status then carries no prediction.
func (p Policy) Predict(historical int, future []model.Performance) (Status, bool) {
	s := p.Next(historical)
	if !p.Pending(s) {
		return s, false
	}
	count := historical
	for _, f := range future {
		count++
		if count >= s.Next {
			s.Predicted = &Event{Date: f.Date, Stage: f.Stage, Time: f.Time}
			break
		}
	}
	return s, true
}

// Past lists every milestone crossed in history, largest first. history
// must be numbered in ascending order.
func (p Policy) Past(history []model.Appearance) []Reached {
	step := p.step()
	out := make([]Reached, 0, len(history)/step)
	for m := len(history) / step * step; m >= step; m -= step {
		a := history[m-1]
		out = append(out, Reached{Milestone: m, Date: a.Date, Stage: a.Stage, Time: a.Time})
	}
	return out
}
