package http

import (
	"strconv"
	"strings"
)

// parseIntParam parses a query parameter as int, falling back to def when the
// parameter is absent or malformed.
func parseIntParam(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
