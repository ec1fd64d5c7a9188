package recommendation

import (
	"encoding/json"
	"strings"
)

// requiredFields in display order
var requiredFields = []struct {
	key   string
	label string
}{
	{"fullName", "Full Name"},
	{"age", "Age"},
	{"gender", "Gender"},
	{"city", "City"},
	{"conditions", "Pre-existing Conditions"},
}

// MissingFields lists the labels of required profile fields that are absent,
// blank or zero. A nil profile misses every field.
func MissingFields(raw map[string]any) []string {
	missing := []string{}
	for _, f := range requiredFields {
		if isBlank(raw[f.key]) {
			missing = append(missing, f.label)
		}
	}
	return missing
}

// IsProfileComplete reports whether every required field is present.
func IsProfileComplete(raw map[string]any) bool {
	return len(MissingFields(raw)) == 0
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f == 0
	case float64:
		return t == 0
	case int:
		return t == 0
	case bool:
		return !t
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
