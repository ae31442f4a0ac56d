package api

import "strings"

// parseMultiValue reads a list parameter given either as one comma-separated
// value or as repeated values. Values are trimmed and blanks dropped; a
// repeated value is never split further.
func parseMultiValue(raw []string) []string {
	var parts []string
	if len(raw) == 1 {
		parts = strings.Split(raw[0], ",")
	} else {
		parts = raw
	}

	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}

// parseServings maps the servings selector to 1 or 2. Only "2" selects two.
func parseServings(raw string) int {
	if raw == "2" {
		return 2
	}
	return 1
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
