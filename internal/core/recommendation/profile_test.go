package recommendation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProfile_Defaults(t *testing.T) {
	p := NormalizeProfile(map[string]any{})

	assert.Equal(t, 30, p.Age)
	assert.Equal(t, "", p.Conditions)
	assert.Equal(t, "", p.Hospital)
	assert.NotNil(t, p.FamilyMembers)
	assert.Empty(t, p.FamilyMembers)
}

func TestNormalizeProfile_NilMap(t *testing.T) {
	p := NormalizeProfile(nil)
	assert.Equal(t, 30, p.Age)
}

func TestNormalizeProfile_AgeForms(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{json.Number("45"), 45},
		{json.Number("45.9"), 45},
		{float64(52), 52},
		{61, 61},
		{"38", 38},
		{" 27 ", 27},
		{"forty", 30},
		{0, 30},
		{-4, 30},
		{nil, 30},
		{true, 30},
	}
	for _, c := range cases {
		p := NormalizeProfile(map[string]any{"age": c.in})
		assert.Equal(t, c.want, p.Age, "age %#v", c.in)
	}
}

func TestNormalizeProfile_IgnoresUnknownKeys(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 7,
		"fullName": "Asha Rao",
		"age": 45,
		"gender": "female",
		"city": "Pune",
		"conditions": "type 2 diabetes",
		"hospital": "Ruby Hall",
		"favouriteColour": "blue"
	}`), &raw))

	p := NormalizeProfile(raw)
	assert.Equal(t, Profile{
		FullName:      "Asha Rao",
		Age:           45,
		Gender:        "female",
		City:          "Pune",
		Conditions:    "type 2 diabetes",
		Hospital:      "Ruby Hall",
		FamilyMembers: []FamilyMember{},
	}, p)
}

func TestNormalizeProfile_FamilyMembers(t *testing.T) {
	p := NormalizeProfile(map[string]any{
		"familyMembers": []any{
			map[string]any{"relation": "mother", "age": json.Number("68"), "diseases": []any{"BP"}},
			map[string]any{"gender": "male"},
			"not a member",
		},
	})

	require.Len(t, p.FamilyMembers, 2)

	mother := p.FamilyMembers[0]
	assert.Equal(t, "mother", mother.Relation)
	require.NotNil(t, mother.Age)
	assert.Equal(t, 68, *mother.Age)
	assert.Equal(t, []string{"BP"}, mother.Diseases)

	spouse := p.FamilyMembers[1]
	assert.Equal(t, "spouse", spouse.Relation)
	assert.Nil(t, spouse.Age)
	assert.Equal(t, "male", spouse.Gender)
	assert.Equal(t, []string{"None"}, spouse.Diseases)
}

func TestNormalizeProfile_ConditionsList(t *testing.T) {
	p := NormalizeProfile(map[string]any{"conditions": []any{"Diabetes", "Asthma"}})
	assert.Equal(t, "Diabetes, Asthma", p.Conditions)
}
