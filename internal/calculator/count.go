package calculator

import (
	"math"
	"strconv"
	"strings"
)

// maxCount bounds every coerced quantity so price products stay well inside int64.
const maxCount = 1_000_000

// Count is a non-negative integer quantity decoded leniently from JSON.
//
// Quote forms post numbers, numeric strings, empty strings and nulls
// interchangeably. All of them decode without error:
//   - numbers and numeric strings truncate toward zero
//   - negatives, NaN, null, "" and non-numeric strings become 0
//   - values above maxCount are clamped
type Count int64

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = parseCount(string(data))
	return nil
}

// Int returns the count as an int64.
func (c Count) Int() int64 {
	return int64(c)
}

func parseCount(raw string) Count {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return 0
		}
		s = strings.TrimSpace(unquoted)
	}
	if s == "" || s == "null" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= maxCount {
		return maxCount
	}
	return Count(f)
}
