package llm

import (
	"fmt"

	"github.com/scinet/vault-analyzer/internal/analyze"
)

// systemInstruction is the fixed role prompt shared by all summarization
// providers.
const systemInstruction = "You are a concise academic summarizer. From the content, extract key concepts, definitions, formulas, and processes."

// BuildSummaryPrompt returns the system and user instructions for a
// summarization call, parameterized by output style.
func BuildSummaryPrompt(content string, opts analyze.Options) (system, user string) {
	opts = opts.Clamped()

	style := fmt.Sprintf("%d bullet points", opts.MaxPoints)
	if opts.Style == analyze.StyleParagraph {
		style = "a 100-150 word paragraph"
	}

	user = fmt.Sprintf("Summarize the following content clearly and non-redundantly. Output as %s. Content:\n\n%s", style, content)
	return systemInstruction, user
}
