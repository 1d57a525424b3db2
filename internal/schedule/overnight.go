package schedule

import (
	"strconv"
	"strings"
	"time"
)

// StopDate computes the stop date for a shift. When both times are
// present and the stop time-of-day is strictly earlier than the start
// time-of-day, the shift crosses midnight and ends the next calendar
// day. In every other case the shift ends on its start date. The
// comparison is purely time-of-day; shifts longer than 24 hours are
// out of scope.
func StopDate(startDate time.Time, startTime, stopTime *string) time.Time {
	if startTime == nil || stopTime == nil {
		return startDate
	}

	start, okStart := clockMinutes(*startTime)
	stop, okStop := clockMinutes(*stopTime)
	if !okStart || !okStop {
		return startDate
	}

	if stop < start {
		return startDate.AddDate(0, 0, 1)
	}
	return startDate
}

// clockMinutes parses "HH:MM" or "HH:MM:SS" into minutes since
// midnight.
func clockMinutes(v string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
