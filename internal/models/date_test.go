package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-04-01", "2025-04-01", false},
		{"2025-06", "2025-06-15", false},
		{" 2025-02-28 ", "2025-02-28", false},
		{"2025-02-30", "", true},
		{"15/03/2025", "", true},
		{"", "", true},
		{"2025-13", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	t.Run("shorthand unmarshals to the 15th", func(t *testing.T) {
		var payload struct {
			Date Date `json:"date"`
		}
		if err := json.Unmarshal([]byte(`{"date":"2025-06"}`), &payload); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if payload.Date.String() != "2025-06-15" {
			t.Errorf("expected 2025-06-15, got %s", payload.Date)
		}
	})

	t.Run("marshals as YYYY-MM-DD", func(t *testing.T) {
		out, err := json.Marshal(NewDate(2025, time.March, 5))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(out) != `"2025-03-05"` {
			t.Errorf("unexpected output %s", out)
		}
	})

	t.Run("rejects numbers", func(t *testing.T) {
		var d Date
		if err := json.Unmarshal([]byte(`20250305`), &d); err == nil {
			t.Error("expected error for numeric date")
		}
	})
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2025-03-05 00:00:00+00:00"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2025-03-05" {
		t.Errorf("expected 2025-03-05, got %s", d)
	}

	if err := d.Scan(time.Date(2025, 7, 9, 23, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2025-07-09" {
		t.Errorf("expected 2025-07-09, got %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}

func TestMonthWindow(t *testing.T) {
	start, next, err := MonthWindow("2025-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.String() != "2025-12-01" || next.String() != "2026-01-01" {
		t.Errorf("unexpected window %s..%s", start, next)
	}

	if _, _, err := MonthWindow("2025-1"); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestYearWindow(t *testing.T) {
	start, next := YearWindow(2024)
	if start.String() != "2024-01-01" || next.String() != "2025-01-01" {
		t.Errorf("unexpected window %s..%s", start, next)
	}
}
