// Package normalize turns raw performance records into canonical ones.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/stagetally/internal/domain/model"
)

const dateLayout = "2006-01-02"

// Rejected describes a record dropped during normalization.
type Rejected struct {
	Index int   // position of the record in the batch
	Err   error // wraps ErrMalformedDate
}

// Result is the outcome of normalizing one batch.
type Result struct {
	Records  []model.Performance
	Rejected []Rejected
}

// Normalize trims member names and time labels, assigns each record its
// position in the batch and drops records whose date cannot be ordered.
// Rejected records keep their index so surviving indexes are stable.
func Normalize(raws []model.RawRecord) Result {
	res := Result{Records: make([]model.Performance, 0, len(raws))}
	for i, raw := range raws {
		if err := ValidateDate(raw.Date); err != nil {
			res.Rejected = append(res.Rejected, Rejected{Index: i, Err: err})
			continue
		}
		res.Records = append(res.Records, Record(raw, i))
	}
	return res
}

// Record normalizes a single raw record at the given batch index.
func Record(raw model.RawRecord, index int) model.Performance {
	members := make([]string, 0, len(raw.Members))
	for _, m := range raw.Members {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}
	return model.Performance{
		Date:        raw.Date,
		Stage:       strings.TrimSpace(raw.Stage),
		Time:        strings.TrimSpace(raw.Time),
		Members:     members,
		Group:       strings.TrimSpace(raw.Group),
		SourceIndex: index,
	}
}

// ValidateDate checks that date is a zero-padded YYYY-MM-DD calendar date,
// the only form whose byte order matches chronological order.
func ValidateDate(date string) error {
	if len(date) != len(dateLayout) {
		return fmt.Errorf("%w: %q", ErrMalformedDate, date)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedDate, date)
	}
	return nil
}
