package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339", `"2024-03-15T10:30:00Z"`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"offset", `"2024-03-15T12:30:00+02:00"`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"zoneless assumed utc", `"2024-03-15T10:30:00"`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"date only", `"2024-03-15"`, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"epoch millis", `1710498600000`, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if !d.Time.Equal(tt.want) {
				t.Fatalf("got %v, want %v", d.Time, tt.want)
			}
		})
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	for _, in := range []string{`"not a date"`, `"2024-13-45"`, `{"nested":true}`} {
		var d Date
		if err := json.Unmarshal([]byte(in), &d); err == nil {
			t.Errorf("Unmarshal(%s) accepted garbage", in)
		}
	}
}

func TestDateMarshalRoundTrip(t *testing.T) {
	d := NewDate(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back Date
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Time.Equal(d.Time) {
		t.Fatalf("round trip changed the value: %v -> %v", d.Time, back.Time)
	}
}

func TestDateScan(t *testing.T) {
	want := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	var fromTime Date
	if err := fromTime.Scan(want); err != nil {
		t.Fatalf("scan time.Time failed: %v", err)
	}
	if !fromTime.Time.Equal(want) {
		t.Fatalf("got %v, want %v", fromTime.Time, want)
	}

	var fromText Date
	if err := fromText.Scan("2024-03-15 10:30:00"); err != nil {
		t.Fatalf("scan text failed: %v", err)
	}
	if !fromText.Time.Equal(want) {
		t.Fatalf("got %v, want %v", fromText.Time, want)
	}
}
