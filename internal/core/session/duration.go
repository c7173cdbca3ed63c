package session

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// MaxSeconds caps any parsed duration so totals never overflow.
const MaxSeconds = math.MaxInt32

// ParseField parses a single numeric input field.
// Empty, malformed, and negative values all read as zero; huge values cap at MaxSeconds.
func ParseField(text string) int {
	value, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange && value > 0 {
			return MaxSeconds
		}
		return 0
	}
	if value < 0 {
		return 0
	}
	if value > MaxSeconds {
		return MaxSeconds
	}
	return int(value)
}

// FromHMS combines hour, minute, and second fields into seconds, capped at MaxSeconds.
func FromHMS(hours, minutes, seconds string) int {
	total := int64(ParseField(hours))*3600 + int64(ParseField(minutes))*60 + int64(ParseField(seconds))
	if total > MaxSeconds {
		return MaxSeconds
	}
	return int(total)
}

// SplitHMS is the inverse of FromHMS for populating input fields.
func SplitHMS(total int) (hours, minutes, seconds int) {
	if total < 0 {
		total = 0
	}
	return total / 3600, (total % 3600) / 60, total % 60
}
