package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a YYYY-MM-DD query value. An empty value yields nil.
func ParseDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, v)
	}
	return &t, nil
}

// ParseIDs parses a comma separated list of integer ids, silently
// dropping anything that is not an integer.
func ParseIDs(v string) []int64 {
	var ids []int64
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}
	return ids
}

// ParseList parses a comma separated list, dropping empty items.
func ParseList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ClampInt parses v and clamps it to [min, max]. Missing or non-numeric
// input yields def. Fractions are floored.
func ClampInt(v string, def, min, max int) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return def
	}
	n := math.Floor(f)
	if n < float64(min) {
		return min
	}
	if n > float64(max) {
		return max
	}
	return int(n)
}
