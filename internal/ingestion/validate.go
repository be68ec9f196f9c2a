// Package ingestion validates and decodes submitted documents and extracts
// plain text from PDF payloads.
package ingestion

import (
	"encoding/base64"
	"strings"

	"github.com/scinet/vault-analyzer/internal/analyze"
)

// pdfHeader is the 4-byte magic every well-formed PDF starts with.
const pdfHeader = "%PDF"

// base64Overhead accounts for base64 expansion when gating the encoded
// payload length before decoding.
const base64Overhead = 1.4

// DecodePDF validates and decodes a base64 PDF payload. The encoded length is
// gated before decoding so oversized payloads are rejected cheaply, and the
// header is inspected after decoding to catch disguised non-PDF uploads.
func DecodePDF(data string, maxBytes int64) ([]byte, *analyze.Error) {
	if int64(len(data)) > int64(float64(maxBytes)*base64Overhead) {
		return nil, analyze.NewPayloadTooLarge("base64 payload too large")
	}

	buf, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, analyze.NewInvalidInput("invalid base64 data")
	}
	if len(buf) == 0 {
		return nil, analyze.NewInvalidInput("empty decoded PDF buffer")
	}
	if int64(len(buf)) > maxBytes {
		return nil, analyze.NewPayloadTooLarge("decoded payload too large")
	}
	if len(buf) < len(pdfHeader) || string(buf[:len(pdfHeader)]) != pdfHeader {
		return nil, analyze.NewInvalidInput("file is not a valid PDF (missing PDF header)")
	}
	return buf, nil
}
