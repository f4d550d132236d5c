package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRating converts a submitted slider value into a Likert rating
// within [min, max].
func ParseRating(raw string, min, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("no rating given")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("rating %q is not a number", raw)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("rating %d is outside %d-%d", v, min, max)
	}
	return v, nil
}

// IsChecked reports whether an HTML checkbox value means "checked".
func IsChecked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
