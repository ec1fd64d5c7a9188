package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"[1,2]":                      "[1,2]",
		"  [1,2]  \n":                "[1,2]",
		"```json\n[1,2]\n```":        "[1,2]",
		"```JSON\n[1,2]\n```":        "[1,2]",
		"```\n[1,2]\n```":            "[1,2]",
		"```json [1,2]```":           "[1,2]",
		"```json [\n{\"a\":1}\n]```": "[\n{\"a\":1}\n]",
		"```[1,2]```":                "[1,2]",
		"not json":                   "not json",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripCodeFence(in), "input %q", in)
	}
}

func TestParseJSON_UsesNumbers(t *testing.T) {
	var v map[string]any
	require.NoError(t, ParseJSON(`{"age": 45}`, &v))
	assert.Equal(t, json.Number("45"), v["age"])
}

func TestParseJSON_RejectsTrailingData(t *testing.T) {
	var v []any
	err := ParseJSON(`[1] [2]`, &v)
	require.Error(t, err)
}
