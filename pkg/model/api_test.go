package model

import "testing"

func TestDateRange_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   DateRange
		want bool
	}{
		{"empty", DateRange{}, true},
		{"only from", DateRange{From: "2025-01-01"}, true},
		{"ordered", DateRange{From: "2025-01-01", To: "2025-01-31"}, true},
		{"same day", DateRange{From: "2025-03-05", To: "2025-03-05"}, true},
		{"reversed", DateRange{From: "2025-02-01", To: "2025-01-01"}, false},
		{"garbage", DateRange{From: "yesterday", To: "2025-01-01"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateRange_IsZero(t *testing.T) {
	if !(DateRange{}).IsZero() {
		t.Error("empty range should be zero")
	}
	if (DateRange{To: "2025-01-01"}).IsZero() {
		t.Error("range with To should not be zero")
	}
}
