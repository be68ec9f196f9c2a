package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONString_ValidScoreResponse(t *testing.T) {
	doc := `{"score": 80, "confidence": 90, "category": "excellent", "diagnostics": [], "recommendations": [], "strengths": ["tests"]}`
	assert.NoError(t, ValidateJSONString(ScoreResponseSchema, doc))
}

func TestValidateJSONString_MissingRequiredField(t *testing.T) {
	doc := `{"confidence": 90}`
	err := ValidateJSONString(ScoreResponseSchema, doc)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateJSONString_WrongFieldType(t *testing.T) {
	doc := `{"score": "eighty", "category": "good"}`
	err := ValidateJSONString(ScoreResponseSchema, doc)
	assert.Error(t, err)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(ScoreResponseSchema, `{not json`)
	assert.Error(t, err)
}
