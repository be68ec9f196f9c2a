package scoring

import "strings"

// Inferred file types, derived purely from filename patterns. Classification
// is stateless and recomputed on each call.
const (
	FileTypeDocumentation = "documentation"
	FileTypeCode          = "code"
	FileTypeData          = "data"
	FileTypeEnvironment   = "environment"
	FileTypeTest          = "test"
	FileTypeLicense       = "license"
	FileTypeConfig        = "config"
	FileTypeAcademic      = "academic"
	FileTypeOther         = "other"
)

var codeExtensions = []string{".py", ".js", ".java", ".cpp", ".c", ".go", ".rs", ".r", ".m", ".ipynb", ".jl"}

var dataExtensions = []string{".csv", ".json", ".xlsx", ".parquet", ".h5", ".hdf5", ".pkl", ".npy"}

var academicExtensions = []string{".pdf", ".tex", ".bib"}

var configExtensions = []string{".toml", ".ini", ".cfg", ".conf"}

// InferFileType classifies a filename by extension and keyword match.
// Earlier categories win when patterns overlap (a README.md is
// documentation, not a markdown data file).
func InferFileType(filename string) string {
	name := strings.ToLower(filename)

	switch {
	case strings.Contains(name, "license"), strings.Contains(name, "licence"), strings.Contains(name, "copying"):
		return FileTypeLicense
	case strings.Contains(name, "test"), strings.Contains(name, "spec"), strings.Contains(name, "__test__"):
		return FileTypeTest
	case strings.Contains(name, "requirements"), strings.Contains(name, "environment"),
		strings.HasSuffix(name, "package.json"), strings.HasSuffix(name, "pipfile"),
		strings.HasSuffix(name, "dockerfile"), hasSuffix(name, ".yml", ".yaml"):
		return FileTypeEnvironment
	case strings.Contains(name, "readme"), hasSuffix(name, ".md", ".txt", ".rst"):
		return FileTypeDocumentation
	case hasSuffix(name, codeExtensions...):
		return FileTypeCode
	case hasSuffix(name, dataExtensions...):
		return FileTypeData
	case hasSuffix(name, academicExtensions...):
		return FileTypeAcademic
	case hasSuffix(name, configExtensions...):
		return FileTypeConfig
	default:
		return FileTypeOther
	}
}

func hasSuffix(name string, suffixes ...string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
