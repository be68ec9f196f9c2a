// Package analyze provides text normalization, sentence segmentation and the
// deterministic extractive summarizer used when no LLM provider is configured.
package analyze

import (
	"strings"
	"unicode"
)

// NormalizeWhitespace replaces control characters with spaces, collapses
// whitespace runs to a single space and trims the result.
func NormalizeWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prevSpace := true // leading whitespace is dropped
	for _, r := range s {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			if !prevSpace {
				sb.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		sb.WriteRune(r)
		prevSpace = false
	}
	return strings.TrimRight(sb.String(), " ")
}

// SplitSentences segments normalized text into sentences. The split point is
// whitespace immediately following a terminal punctuation mark, so the
// terminator stays attached to the preceding sentence. Empty fragments are
// dropped. Text with no terminal punctuation comes back as one sentence.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		if isTerminal(runes[i]) && unicode.IsSpace(runes[i+1]) {
			s := strings.TrimSpace(string(runes[start : i+1]))
			if s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if start < len(runes) {
		s := strings.TrimSpace(string(runes[start:]))
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
