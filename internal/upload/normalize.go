package upload

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01/02/06",
	"1-2-2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2006/01/02",
	"1/2/2006 15:04",
	"01/02/2006 15:04",
	"1/2/2006 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDateCell converts a raw cell into a calendar date. Excel
// exports deliver either a numeric serial or one of several string
// layouts depending on the producing tool.
func ParseDateCell(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	// Excel numeric date serial. The lower bound sits above any
	// four-digit year so "2024" is rejected instead of being misread
	// as a 1905 serial; real exports only carry modern dates anyway.
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if serial > 9999 && serial <= 100000 {
			if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date value %q", v)
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, v); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date value %q", v)
}

// ParseOptionalDateCell treats an empty cell as absent rather than an
// error.
func ParseOptionalDateCell(v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	d, err := ParseDateCell(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04:05 PM",
	"15.04",
}

// ParseTimeCell converts a raw cell into a canonical "HH:MM" string.
// An empty cell yields nil, which marks an "off" entry for schedule
// start/stop rather than an error. Excel may deliver the time as a
// day-fraction serial.
func ParseTimeCell(v string) (*string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if serial >= 0 && serial < 1 {
			if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
				s := parsed.Format("15:04")
				return &s, nil
			}
		}
		return nil, fmt.Errorf("unrecognized time value %q", v)
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, v); err == nil {
			s := parsed.Format("15:04")
			return &s, nil
		}
	}
	return nil, fmt.Errorf("unrecognized time value %q", v)
}

// OptionalString trims the cell and maps blank to nil so absent
// optional columns do not round-trip as empty strings.
func OptionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// ParseIntCell parses an integer cell, tolerating the float rendering
// some exports produce for numeric columns ("70101.0").
func ParseIntCell(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f == float64(int64(f)) {
		return int64(f), nil
	}
	return 0, fmt.Errorf("not a number: %q", v)
}
