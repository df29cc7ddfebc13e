package canonicalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenantos/trustcore/pkg/canonicalize"
)

func TestJCS_SortsKeys(t *testing.T) {
	out, err := canonicalize.JCSString(map[string]any{
		"b": 2,
		"a": 1,
		"c": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, out)
}

func TestJCS_StructTagsRespected(t *testing.T) {
	type record struct {
		Zulu  string `json:"zulu"`
		Alpha string `json:"alpha"`
	}
	out, err := canonicalize.JCSString(record{Zulu: "z", Alpha: "a"})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"a","zulu":"z"}`, out)
}

func TestCanonicalHash_Deterministic(t *testing.T) {
	v1 := map[string]any{"x": 1, "y": "two"}
	v2 := map[string]any{"y": "two", "x": 1}

	h1, err := canonicalize.CanonicalHash(v1)
	require.NoError(t, err)
	h2, err := canonicalize.CanonicalHash(v2)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestCanonicalHash_SensitiveToValues(t *testing.T) {
	h1, err := canonicalize.CanonicalHash(map[string]any{"x": 1})
	require.NoError(t, err)
	h2, err := canonicalize.CanonicalHash(map[string]any{"x": 2})
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
