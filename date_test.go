package oliveprice

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
	}{
		// DD-MM-YYYY family.
		{"01-01-2020", NewDate(2020, time.January, 1)},
		{"31/12/2019", NewDate(2019, time.December, 31)},
		{"1/7/2025", NewDate(2025, time.July, 1)},
		{" 29-02-2024 ", NewDate(2024, time.February, 29)},

		// DD-MM-YY family, pivot at 2000.
		{"05-01-20", NewDate(2020, time.January, 5)},
		{"1/7/25", NewDate(2025, time.July, 1)},
		{"31-12-99", NewDate(2099, time.December, 31)},

		// YYYY-MM-DD family.
		{"2024-03-01", NewDate(2024, time.March, 1)},
		{"2024/3/1", NewDate(2024, time.March, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			// The canonical form is stable.
			again, err := ParseDate(got.String())
			if err != nil || again != got {
				t.Errorf("ParseDate(%q) = %v, %v, want %v", got.String(), again, err, got)
			}
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{
		"31-02-2020",
		"31-04-2021",
		"29-02-2023",
		"00-01-2020",
		"01-13-2020",
		"2020-02-30",
		"01-01/2020", // mixed separators
		"01.01.2020",
		"2020",
		"",
		"Aceite de oliva virgen extra",
		"2,345",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", input, err)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	want := NewDate(2024, time.March, 1)
	for _, input := range []string{
		"2024-03-01 10:00:00",
		"2024-03-01T10:00:00Z",
		"2024-03-01T23:30:00+01:00",
		"2024-03-01",
		"01-03-2024 08:15",
	} {
		got, err := ParseDateTime(input)
		if err != nil {
			t.Errorf("ParseDateTime(%q) unexpected error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDateTime(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestDate_Sub(t *testing.T) {
	a, b := NewDate(2020, time.January, 1), NewDate(2020, time.March, 1)
	if got := b.Sub(a); got != 60 {
		t.Errorf("%v.Sub(%v) = %d, want 60", b, a, got)
	}
	if got := a.Add(60); got != b {
		t.Errorf("%v.Add(60) = %v, want %v", a, got, b)
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.March, 1)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	if string(b) != `"2024-03-01"` {
		t.Errorf("json.Marshal() = %s, want %q", b, "2024-03-01")
	}
	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}
	if got != d {
		t.Errorf("json.Unmarshal() = %v, want %v", got, d)
	}
}
