package recommendation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	defaultAge      = 30
	defaultRelation = "spouse"
	noneLabel       = "None"
)

// NormalizeProfile reads a loosely-typed profile payload into a Profile.
// Unknown keys are ignored and every missing or malformed field gets its
// default, so it never fails.
func NormalizeProfile(raw map[string]any) Profile {
	age, ok := intValue(raw["age"])
	if !ok || age <= 0 {
		age = defaultAge
	}

	return Profile{
		FullName:      stringValue(raw["fullName"]),
		Age:           age,
		Gender:        stringValue(raw["gender"]),
		City:          stringValue(raw["city"]),
		Conditions:    conditionsValue(raw["conditions"]),
		Hospital:      stringValue(raw["hospital"]),
		FamilyMembers: familyMembers(raw["familyMembers"]),
	}
}

func familyMembers(v any) []FamilyMember {
	items, ok := v.([]any)
	if !ok {
		return []FamilyMember{}
	}

	members := make([]FamilyMember, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		member := FamilyMember{
			Name:     stringValue(m["name"]),
			Relation: stringValue(m["relation"]),
			Gender:   stringValue(m["gender"]),
			Diseases: stringList(m["diseases"]),
		}
		if member.Relation == "" {
			member.Relation = defaultRelation
		}
		if age, ok := intValue(m["age"]); ok && age >= 0 {
			member.Age = &age
		}
		if len(member.Diseases) == 0 {
			member.Diseases = []string{noneLabel}
		}
		members = append(members, member)
	}
	return members
}

// conditionsValue accepts free text or a list of condition names.
func conditionsValue(v any) string {
	if list, ok := v.([]any); ok {
		return strings.Join(stringList(list), ", ")
	}
	return stringValue(v)
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := stringValue(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// intValue truncates numeric values and parses numeric strings.
func intValue(v any) (int, bool) {
	var f float64
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
