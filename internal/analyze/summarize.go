package analyze

import (
	"sort"
	"strings"
)

// Summary styles accepted by the API.
const (
	StyleBullets   = "bullets"
	StyleParagraph = "paragraph"
)

// Default and boundary values for summarization options.
const (
	DefaultMaxPoints = 6
	MinPoints        = 3
	MaxPoints        = 10
	DefaultMaxChars  = 50_000
	MaxMaxChars      = 200_000

	paragraphSentences = 6
	paragraphMaxWords  = 160
)

// Options controls summary rendering.
type Options struct {
	Style     string
	MaxPoints int
	MaxChars  int
}

// Clamped returns a copy with defaults applied and values forced into their
// valid ranges.
func (o Options) Clamped() Options {
	if o.Style != StyleParagraph {
		o.Style = StyleBullets
	}
	if o.MaxPoints == 0 {
		o.MaxPoints = DefaultMaxPoints
	}
	if o.MaxPoints < MinPoints {
		o.MaxPoints = MinPoints
	}
	if o.MaxPoints > MaxPoints {
		o.MaxPoints = MaxPoints
	}
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	if o.MaxChars > MaxMaxChars {
		o.MaxChars = MaxMaxChars
	}
	return o
}

// Result is the summary produced by either backend.
type Result struct {
	Summary         string
	TokensEstimated int
}

// sentence carries the original position so selected sentences can be
// restored to document order before rendering.
type sentence struct {
	index int
	text  string
	score int
}

// stopwords are common English function words excluded from frequency counts.
var stopwords = buildStopwords()

func buildStopwords() map[string]bool {
	list := "a,an,and,are,as,at,be,by,for,from,has,he,in,is,it,its,of,on,that,the,to,was,were,will,with,or,if,then,than,this,these,those,which,who,whom,what,when,where,why,how,not,can,could,should,would,may,might,into,onto,about,above,below,between,over,under,again,further,here,there"
	m := make(map[string]bool)
	for _, w := range strings.Split(list, ",") {
		m[w] = true
	}
	return m
}

// tokenize lowercases the sentence and returns its alphanumeric runs.
func tokenize(s string) []string {
	s = strings.ToLower(s)
	var tokens []string
	start := -1
	for i, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// scoreSentences builds a corpus-wide term-frequency table and scores each
// sentence as the sum of its tokens' global frequencies. Using global rather
// than sentence-local counts rewards sentences built from globally important
// terms.
func scoreSentences(sentences []string) []sentence {
	freq := make(map[string]int)
	for _, s := range sentences {
		for _, w := range tokenize(s) {
			if stopwords[w] {
				continue
			}
			freq[w]++
		}
	}

	scored := make([]sentence, len(sentences))
	for i, s := range sentences {
		total := 0
		for _, w := range tokenize(s) {
			if stopwords[w] {
				continue
			}
			total += freq[w]
		}
		scored[i] = sentence{index: i, text: s, score: total}
	}
	return scored
}

// FallbackSummarize produces a deterministic extractive summary. It never
// fails for normalized input; zero sentences yield an empty result.
func FallbackSummarize(text string, opts Options) Result {
	opts = opts.Clamped()

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return Result{}
	}

	scored := scoreSentences(sentences)
	// Stable sort with the original index as tie-break keeps equal-score
	// selection reproducible.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if opts.Style == StyleParagraph {
		picked := restoreOrder(scored, paragraphSentences)
		paragraph := strings.Join(picked, " ")
		words := strings.Fields(paragraph)
		if len(words) > paragraphMaxWords {
			paragraph = strings.Join(words[:paragraphMaxWords], " ")
		}
		return Result{Summary: paragraph, TokensEstimated: EstimateTokens(len(paragraph))}
	}

	picked := restoreOrder(scored, opts.MaxPoints)
	lines := make([]string, len(picked))
	for i, s := range picked {
		lines[i] = "- " + s
	}
	summary := strings.Join(lines, "\n")
	return Result{Summary: summary, TokensEstimated: EstimateTokens(len(summary))}
}

// restoreOrder takes the n best-scored sentences and re-sorts them into
// original document order. Presenting sentences out of source order would be
// a correctness bug, not a style choice.
func restoreOrder(scored []sentence, n int) []string {
	if n > len(scored) {
		n = len(scored)
	}
	top := make([]sentence, n)
	copy(top, scored[:n])
	sort.Slice(top, func(i, j int) bool { return top[i].index < top[j].index })

	texts := make([]string, n)
	for i, s := range top {
		texts[i] = s.text
	}
	return texts
}

// EstimateTokens is the cheap character-count proxy used by both backends.
func EstimateTokens(chars int) int {
	return (chars + 3) / 4
}
