package normalize

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts seen across the supported issuers, named for the printed form.
const (
	LayoutDMYSlash = "2/1/2006"        // 15/01/2024, also unpadded 3/6/2024
	LayoutDMonDash = "02-Jan-2006"     // 15-Jan-2024
	LayoutMonthDY  = "January 2, 2006" // January 15, 2024
	LayoutMonDY    = "Jan 2, 2006"     // Jan 15, 2024
	LayoutISO      = "2006-01-02"      // 2024-01-15
)

// DateError reports a raw string that matched none of the candidate layouts.
type DateError struct {
	Raw     string
	Layouts []string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("cannot normalize date %q with layouts %v", e.Raw, e.Layouts)
}

// Date tries each layout in the given priority order and returns the first
// success. Callers supplying ambiguous layouts (DD/MM before MM/DD) accept
// the resulting tie-break.
func Date(raw string, layouts []string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &DateError{Raw: raw, Layouts: layouts}
}

// ToISO renders a date in the canonical ISO 8601 form used throughout the
// output schema.
func ToISO(t time.Time) string {
	return t.Format(LayoutISO)
}

// DateToISO normalizes a raw date string straight to its ISO form.
func DateToISO(raw string, layouts []string) (string, error) {
	t, err := Date(raw, layouts)
	if err != nil {
		return "", err
	}
	return ToISO(t), nil
}

// RangeToISO normalizes a start/end pair into an ISO 8601 interval
// ("2024-01-15/2024-02-14"). Both endpoints must parse.
func RangeToISO(start, end string, layouts []string) (string, error) {
	s, err := DateToISO(start, layouts)
	if err != nil {
		return "", err
	}
	e, err := DateToISO(end, layouts)
	if err != nil {
		return "", err
	}
	return s + "/" + e, nil
}
