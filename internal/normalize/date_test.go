package normalize

import (
	"errors"
	"testing"
)

func TestDateToISO(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		layouts  []string
		expected string
		wantErr  bool
	}{
		{"slash day-first", "15/01/2024", []string{LayoutDMYSlash}, "2024-01-15", false},
		{"single digit day", "3/6/2024", []string{LayoutDMYSlash}, "2024-06-03", false},
		{"dash month name", "02-May-2024", []string{LayoutDMonDash}, "2024-05-02", false},
		{"full month name", "June 3, 2024", []string{LayoutMonthDY}, "2024-06-03", false},
		{"first layout wins", "01/02/2024", []string{LayoutDMYSlash, "01/02/2006"}, "2024-02-01", false},
		{"falls through to second", "June 3, 2024", []string{LayoutDMYSlash, LayoutMonthDY}, "2024-06-03", false},
		{"no layout matches", "not a date", []string{LayoutDMYSlash}, "", true},
		{"empty input", "", []string{LayoutDMYSlash}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateToISO(tt.input, tt.layouts)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				var dateErr *DateError
				if !errors.As(err, &dateErr) {
					t.Errorf("expected *DateError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

// Normalizing an already-ISO string with the ISO layout among the
// candidates returns an equal date.
func TestDateToISOIdempotent(t *testing.T) {
	layouts := []string{LayoutDMYSlash, LayoutISO}
	first, err := DateToISO("15/01/2024", layouts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := DateToISO(first, layouts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("not idempotent: %q != %q", first, second)
	}
}

func TestRangeToISO(t *testing.T) {
	got, err := RangeToISO("01/04/2024", "30/04/2024", []string{LayoutDMYSlash})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "2024-04-01/2024-04-30"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, err := RangeToISO("01/04/2024", "garbage", []string{LayoutDMYSlash}); err == nil {
		t.Error("expected error for unparseable end date")
	}
}
