package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/RichTeaMan/timer/errors"
)

const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour
)

// multipliers are read right to left: seconds, minutes, hours, days.
var multipliers = [...]int64{1, SecondsPerMinute, SecondsPerHour, SecondsPerDay}

// Parse converts text into signed seconds. Empty input yields 0.
// It fails with an INVALID_FORMAT AppError when there are more than four
// fields, a field is not a number, a field is negative on its own, or the
// total does not fit in an int64.
func Parse(text string) (int64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, nil
	}

	negative := strings.HasPrefix(trimmed, "-")
	if negative {
		trimmed = trimmed[1:]
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) > len(multipliers) {
		return 0, errors.InvalidDuration(text, "more than four fields")
	}

	var seconds int64
	for i := range parts {
		field := parts[len(parts)-1-i]
		n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return 0, errors.InvalidDuration(text, fmt.Sprintf("cannot parse %q", field)).WithCause(err)
		}
		if n < 0 {
			return 0, errors.InvalidDuration(text, fmt.Sprintf("field %q cannot be negative", field))
		}
		if n > (math.MaxInt64-seconds)/multipliers[i] {
			return 0, errors.InvalidDuration(text, "out of range")
		}
		seconds += n * multipliers[i]
	}

	if negative {
		seconds = -seconds
	}
	return seconds, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(text string) int64 {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Format renders seconds as "N hour(s)[, M minute(s)]", "N minute(s)[, M second(s)]"
// or "N second(s)" depending on magnitude.
func Format(seconds int64) string {
	switch {
	case seconds >= SecondsPerHour:
		return compound(seconds/SecondsPerHour, "hour", seconds%SecondsPerHour/SecondsPerMinute, "minute")
	case seconds >= SecondsPerMinute:
		return compound(seconds/SecondsPerMinute, "minute", seconds%SecondsPerMinute, "second")
	default:
		return plural(seconds, "second")
	}
}

// Canonical renders seconds as zero-padded "D:HH:MM:SS" with a leading
// minus sign when negative. Parse(Canonical(n)) == n for every n.
func Canonical(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	days := seconds / SecondsPerDay
	hours := seconds % SecondsPerDay / SecondsPerHour
	minutes := seconds % SecondsPerHour / SecondsPerMinute
	secs := seconds % SecondsPerMinute
	return fmt.Sprintf("%s%d:%02d:%02d:%02d", sign, days, hours, minutes, secs)
}

func compound(major int64, majorUnit string, minor int64, minorUnit string) string {
	if minor == 0 {
		return plural(major, majorUnit)
	}
	return plural(major, majorUnit) + ", " + plural(minor, minorUnit)
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.FormatInt(n, 10) + " " + unit + "s"
}
