package scoring

import (
	"fmt"
	"regexp"
	"strings"
)

// Rubric weights. They sum to 100 so a submission satisfying every criterion
// lands exactly at the top of the scale.
const (
	pointsReadme         = 18
	pointsDescription    = 5
	pointsAcademicTerms  = 4
	pointsLicense        = 10
	pointsEnvironment    = 16
	pointsDockerfile     = 4
	pointsTests          = 18
	pointsLockfile       = 8
	pointsCodePresent    = 5
	pointsCodeOrganized  = 4
	pointsAnyAuthor      = 2
	pointsAuthorTeam     = 2
	pointsAcademicTitle  = 2
	pointsTags           = 1
	pointsCategory       = 1
)

// Thresholds for metadata criteria.
const (
	descriptionMinChars  = 100
	academicTermsNeeded  = 2
	organizedCodeMinimum = 3 // more than this many code files earns the bonus
	teamMinimumAuthors   = 3
)

// heuristicConfidence is constant: the rubric is a deterministic rule, not a
// probabilistic estimate.
const heuristicConfidence = 85

var lockfileRe = regexp.MustCompile(`(?i)package-lock\.json|poetry\.lock|pipfile\.lock|yarn\.lock`)

// academicTerms are keywords whose presence in a description suggests a
// structured research write-up.
var academicTerms = []string{"methodology", "results", "significant", "hypothesis", "analysis", "experiment", "evaluation"}

// academicTitles are author-name markers counted toward metadata completeness.
var academicTitles = []string{"dr.", "dr ", "prof.", "prof ", "phd", "ph.d"}

// HeuristicScorer is the deterministic rubric backend. It is the
// unconditional fallback when the LLM backend is unconfigured or fails.
type HeuristicScorer struct{}

// NewHeuristicScorer returns the rubric backend.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Name returns the provider tag stamped on results.
func (s *HeuristicScorer) Name() string {
	return ProviderHeuristic
}

// Score evaluates the manifest against the weighted rubric. It never fails:
// an empty manifest simply scores zero with every criterion diagnosed as
// missing.
func (s *HeuristicScorer) Score(m *ResearchManifest) *ScoreResult {
	score := 0
	var diagnostics, recommendations, strengths []string

	files := make([]string, 0, len(m.Files))
	for _, f := range m.Files {
		files = append(files, strings.ToLower(f.Name))
	}
	has := func(pattern string) bool {
		for _, f := range files {
			if strings.Contains(f, pattern) {
				return true
			}
		}
		return false
	}

	// Documentation.
	if has("readme") || has(".md") {
		score += pointsReadme
		strengths = append(strengths, "README documentation found")
	} else {
		diagnostics = append(diagnostics, "Missing README.md")
		recommendations = append(recommendations, "Add a comprehensive README.md explaining the research")
	}

	if len(m.Description) > descriptionMinChars {
		score += pointsDescription
		strengths = append(strengths, "Detailed description provided")
	} else {
		diagnostics = append(diagnostics, "Description is short or missing")
		recommendations = append(recommendations, "Provide a more detailed research description")
	}

	if countAcademicTerms(m.Description) >= academicTermsNeeded {
		score += pointsAcademicTerms
		strengths = append(strengths, "Description uses structured research terminology")
	}

	// Licensing.
	if has("license") || has("licence") {
		score += pointsLicense
		strengths = append(strengths, "License file present")
	} else {
		diagnostics = append(diagnostics, "No license file")
		recommendations = append(recommendations, "Add a license file (MIT, Apache, GPL, etc.)")
	}

	// Environment specification.
	if has("requirements") || has("environment") || has("package.json") || has("pipfile") {
		score += pointsEnvironment
		strengths = append(strengths, "Environment dependencies specified")
	} else {
		diagnostics = append(diagnostics, "No environment specification")
		recommendations = append(recommendations, "Add requirements.txt, environment.yml, or similar dependency file")
	}
	if has("dockerfile") {
		score += pointsDockerfile
		strengths = append(strengths, "Docker containerization available")
	}

	// Testing.
	if has("test") || has("__tests__") {
		score += pointsTests
		strengths = append(strengths, "Test files detected")
	} else {
		diagnostics = append(diagnostics, "No test files detected")
		recommendations = append(recommendations, "Add test files to validate your code and results")
	}

	// Dependency pinning.
	if anyMatch(files, lockfileRe) {
		score += pointsLockfile
		strengths = append(strengths, "Dependency versions locked")
	} else {
		recommendations = append(recommendations, "Lock dependency versions (package-lock.json, poetry.lock, etc.)")
	}

	// Code presence and organization.
	codeCount := 0
	for _, f := range files {
		if hasSuffix(f, codeExtensions...) {
			codeCount++
		}
	}
	if codeCount > 0 {
		score += pointsCodePresent
		strengths = append(strengths, fmt.Sprintf("%d code files included", codeCount))
		if codeCount > organizedCodeMinimum {
			score += pointsCodeOrganized
			strengths = append(strengths, "Well-organized codebase")
		}
	} else {
		diagnostics = append(diagnostics, "No code files detected")
		recommendations = append(recommendations, "Include source code files for reproducibility")
	}

	// Author and metadata completeness.
	if len(m.Authors) > 0 {
		score += pointsAnyAuthor
		if len(m.Authors) >= teamMinimumAuthors {
			score += pointsAuthorTeam
		}
		if hasAcademicTitle(m.Authors) {
			score += pointsAcademicTitle
			strengths = append(strengths, "Academic credentials listed among authors")
		}
	} else {
		diagnostics = append(diagnostics, "No authors listed")
	}
	if len(m.Tags) > 0 {
		score += pointsTags
	}
	if m.Category != "" {
		score += pointsCategory
	}

	score = clamp(score, 0, 100)

	return &ScoreResult{
		Score:           score,
		Confidence:      heuristicConfidence,
		Category:        Categorize(score),
		Provider:        ProviderHeuristic,
		Diagnostics:     emptyIfNil(diagnostics),
		Recommendations: emptyIfNil(recommendations),
		Strengths:       emptyIfNil(strengths),
		Metadata:        buildMetadata(m, files, codeCount),
	}
}

func countAcademicTerms(description string) int {
	desc := strings.ToLower(description)
	n := 0
	for _, term := range academicTerms {
		if strings.Contains(desc, term) {
			n++
		}
	}
	return n
}

func hasAcademicTitle(authors []string) bool {
	for _, a := range authors {
		name := strings.ToLower(a)
		for _, title := range academicTitles {
			if strings.Contains(name, title) {
				return true
			}
		}
	}
	return false
}

func anyMatch(files []string, re *regexp.Regexp) bool {
	for _, f := range files {
		if re.MatchString(f) {
			return true
		}
	}
	return false
}

func buildMetadata(m *ResearchManifest, files []string, codeCount int) map[string]any {
	hasType := func(t string) bool {
		for _, f := range files {
			if InferFileType(f) == t {
				return true
			}
		}
		return false
	}

	category := m.Category
	if category == "" {
		category = "unknown"
	}
	mType := m.Type
	if mType == "" {
		mType = "unknown"
	}

	return map[string]any{
		"fileCount":        len(files),
		"hasDocumentation": hasType(FileTypeDocumentation),
		"hasCode":          codeCount > 0,
		"hasData":          hasType(FileTypeData),
		"hasLicense":       hasType(FileTypeLicense),
		"hasTests":         hasType(FileTypeTest),
		"category":         category,
		"type":             mType,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
