package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is the single in-memory representation for record timestamps.
// Clients send dates as ISO-8601 strings (with or without a zone suffix)
// or as epoch milliseconds; both are normalized to UTC here so the stats
// layer never has to care which shape the storage backend produced.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t.UTC()}
}

// UnmarshalJSON accepts RFC3339 strings, zone-less ISO strings (assumed
// UTC) and numeric epoch-millis timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}

	if !strings.HasPrefix(s, `"`) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid date %s: %w", s, err)
		}
		d.Time = time.UnixMilli(ms).UTC()
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ts := raw
	// Date-only form from the date picker
	if len(ts) == len("2006-01-02") {
		t, err := time.Parse("2006-01-02", ts)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", raw, err)
		}
		d.Time = t.UTC()
		return nil
	}
	// Assume UTC when the string carries no zone suffix
	if len(ts) > 6 && !(strings.HasSuffix(ts, "Z") || strings.ContainsAny(ts[len(ts)-6:], "+-")) {
		ts += "Z"
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", raw, err)
	}
	d.Time = t.UTC()
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

// GormDataType tells the migrator to use the dialect's timestamp type.
func (Date) GormDataType() string {
	return "time"
}

// Value implements driver.Valuer so GORM stores the plain timestamp.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner for the timestamp shapes the drivers hand back.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case time.Time:
		d.Time = v.UTC()
		return nil
	case []byte:
		return d.parseText(string(v))
	case string:
		return d.parseText(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) parseText(s string) error {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as Date", s)
}
