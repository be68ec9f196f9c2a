package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock_JSONFence(t *testing.T) {
	input := "```json\n{\"score\": 80}\n```"
	assert.Equal(t, `{"score": 80}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_GenericFence(t *testing.T) {
	input := "```\n{\"score\": 80}\n```"
	assert.Equal(t, `{"score": 80}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_NoFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSONBlock(`{"a":1}`))
}

func TestExtractJSONObject_PlainObject(t *testing.T) {
	got, err := ExtractJSONObject(`{"score": 75, "category": "good"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"score": 75, "category": "good"}`, got)
}

func TestExtractJSONObject_SurroundingProse(t *testing.T) {
	input := "Here is my assessment:\n{\"score\": 40}\nLet me know if you need more."
	got, err := ExtractJSONObject(input)
	require.NoError(t, err)
	assert.Equal(t, `{"score": 40}`, got)
}

func TestExtractJSONObject_NestedBraces(t *testing.T) {
	input := `prefix {"outer": {"inner": 1}, "list": [1, 2]} suffix`
	got, err := ExtractJSONObject(input)
	require.NoError(t, err)
	assert.Equal(t, `{"outer": {"inner": 1}, "list": [1, 2]}`, got)
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	input := `{"note": "a } inside a string", "n": 1}`
	got, err := ExtractJSONObject(input)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	_, err := ExtractJSONObject("no json here")
	assert.Error(t, err)
}

func TestExtractJSONObject_Unbalanced(t *testing.T) {
	_, err := ExtractJSONObject(`{"score": 75`)
	assert.Error(t, err)
}
