package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseCeiling parses a job runtime ceiling string.
// Two forms are accepted:
//   - "H:MM" hours and minutes (e.g. "8:00", "36:30")
//   - bare integer minutes (e.g. "90")
//
// Anything else is an error; schedulers silently misread sloppy time
// strings, so the grammar is strict.
func ParseCeiling(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty runtime ceiling")
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return 0, fmt.Errorf("invalid runtime ceiling %q (use H:MM or minutes)", s)
		}
		hours, err := strconv.Atoi(parts[0])
		if err != nil || hours < 0 {
			return 0, fmt.Errorf("invalid hours in runtime ceiling %q", s)
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil || minutes < 0 {
			return 0, fmt.Errorf("invalid minutes in runtime ceiling %q", s)
		}
		return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
	}

	minutes, err := strconv.Atoi(s)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("invalid runtime ceiling %q (use H:MM or minutes)", s)
	}
	return time.Duration(minutes) * time.Minute, nil
}

// CeilingSeconds converts a runtime ceiling string into total seconds.
func CeilingSeconds(s string) (int64, error) {
	d, err := ParseCeiling(s)
	if err != nil {
		return 0, err
	}
	return int64(d.Seconds()), nil
}
