package ingestion

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scinet/vault-analyzer/internal/analyze"
)

const testMaxBytes = 1000

func TestDecodePDF_RejectsOversizedBase64BeforeDecoding(t *testing.T) {
	payload := strings.Repeat("A", int(testMaxBytes*1.4)+10)

	_, err := DecodePDF(payload, testMaxBytes)
	require.NotNil(t, err)
	assert.Equal(t, analyze.CodePayloadTooLarge, err.Code)
	assert.Equal(t, 413, err.Status)
}

func TestDecodePDF_RejectsInvalidBase64(t *testing.T) {
	_, err := DecodePDF("!!!not base64!!!", testMaxBytes)
	require.NotNil(t, err)
	assert.Equal(t, analyze.CodeInvalidInput, err.Code)
}

func TestDecodePDF_RejectsEmptyDecodedBuffer(t *testing.T) {
	_, err := DecodePDF("", testMaxBytes)
	require.NotNil(t, err)
	assert.Equal(t, analyze.CodeInvalidInput, err.Code)
}

func TestDecodePDF_RejectsOversizedDecodedBuffer(t *testing.T) {
	raw := append([]byte("%PDF"), make([]byte, testMaxBytes)...)
	payload := base64.StdEncoding.EncodeToString(raw)

	_, err := DecodePDF(payload, testMaxBytes)
	require.NotNil(t, err)
	assert.Equal(t, analyze.CodePayloadTooLarge, err.Code)
}

func TestDecodePDF_RejectsMissingHeader(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("ABCD"))

	_, err := DecodePDF(payload, testMaxBytes)
	require.NotNil(t, err)
	assert.Equal(t, analyze.CodeInvalidInput, err.Code)
	assert.Contains(t, err.Message, "PDF header")
}

func TestDecodePDF_AcceptsValidHeader(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 rest of file"))

	buf, err := DecodePDF(payload, testMaxBytes)
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(string(buf), "%PDF"))
}

func TestExtractPDFText_CorruptStructureIsPDFError(t *testing.T) {
	// Valid header, garbage body: decoding passes, parsing must not.
	_, err := ExtractPDFText([]byte("%PDF-1.4 garbage that is not a pdf body"))
	require.NotNil(t, err)
	assert.Equal(t, analyze.CodePDFError, err.Code)
}

func TestTextFromContentStream_TjOperator(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n72 720 Td\n(Hello world) Tj\nET")
	assert.Equal(t, "Hello world", textFromContentStream(stream))
}

func TestTextFromContentStream_TJArrayOperator(t *testing.T) {
	stream := []byte("[(Hel) -20 (lo)] TJ")
	assert.Equal(t, "Hello", textFromContentStream(stream))
}

func TestDecodePDFString_Escapes(t *testing.T) {
	assert.Equal(t, "a(b)c", decodePDFString([]byte(`a\(b\)c`)))
	assert.Equal(t, "tab\there", decodePDFString([]byte(`tab\there`)))
	assert.Equal(t, " ", decodePDFString([]byte(`\040`)))
}
