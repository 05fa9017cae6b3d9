package models

import (
	"sort"
	"strings"
)

// Labels with special meaning to the pipeline.
const (
	FileTypeOther  = "Other"
	FileTypeBinary = "Binary"
)

// DefaultFileTypes returns the default suffix-to-label table. Suffixes are
// matched case-insensitively against the end of the path, longest suffix
// first, so "_test.go" wins over ".go". Unmapped suffixes classify as Other.
func DefaultFileTypes() map[string]string {
	return map[string]string{
		".go":       "Go",
		"_test.go":  "Test",
		".ts":       "TypeScript",
		".tsx":      "TypeScript",
		".mts":      "TypeScript",
		".test.ts":  "Test",
		".spec.ts":  "Test",
		".test.tsx": "Test",
		".spec.tsx": "Test",
		".js":       "JavaScript",
		".jsx":      "JavaScript",
		".mjs":      "JavaScript",
		".cjs":      "JavaScript",
		".test.js":  "Test",
		".spec.js":  "Test",
		".py":       "Python",
		"_test.py":  "Test",
		".rb":       "Ruby",
		"_spec.rb":  "Test",
		".rs":       "Rust",
		".java":     "Java",
		".kt":       "Kotlin",
		".c":        "C",
		".h":        "C",
		".cpp":      "C++",
		".cc":       "C++",
		".hpp":      "C++",
		".cs":       "C#",
		".php":      "PHP",
		".swift":    "Swift",
		".scala":    "Scala",
		".ex":       "Elixir",
		".exs":      "Elixir",
		".vue":      "Vue",
		".svelte":   "Svelte",
		".html":     "HTML",
		".htm":      "HTML",
		".css":      "CSS",
		".scss":     "CSS",
		".sass":     "CSS",
		".less":     "CSS",
		".sql":      "SQL",
		".proto":    "Protobuf",
		".graphql":  "GraphQL",
		".sh":       "Shell",
		".bash":     "Shell",
		".zsh":      "Shell",
		".ps1":      "Shell",
		".json":     "JSON",
		".yaml":     "YAML",
		".yml":      "YAML",
		".toml":     "TOML",
		".xml":      "XML",
		".ini":      "Config",
		".env":      "Config",
		".mod":      "Build",
		".sum":      "Lockfile",
		".lock":     "Lockfile",
		".gradle":   "Build",
		"makefile":  "Build",
		".mk":       "Build",
		".cmake":    "Build",
		"dockerfile": "Build",
		".tf":       "Terraform",
		".md":       "Markdown",
		".markdown": "Markdown",
		".rst":      "Text",
		".txt":      "Text",
		".png":      FileTypeBinary,
		".jpg":      FileTypeBinary,
		".jpeg":     FileTypeBinary,
		".gif":      FileTypeBinary,
		".webp":     FileTypeBinary,
		".bmp":      FileTypeBinary,
		".ico":      FileTypeBinary,
		".pdf":      FileTypeBinary,
		".zip":      FileTypeBinary,
		".tar":      FileTypeBinary,
		".gz":       FileTypeBinary,
		".tgz":      FileTypeBinary,
		".bz2":      FileTypeBinary,
		".xz":       FileTypeBinary,
		".7z":       FileTypeBinary,
		".jar":      FileTypeBinary,
		".class":    FileTypeBinary,
		".exe":      FileTypeBinary,
		".dll":      FileTypeBinary,
		".so":       FileTypeBinary,
		".dylib":    FileTypeBinary,
		".wasm":     FileTypeBinary,
		".woff":     FileTypeBinary,
		".woff2":    FileTypeBinary,
		".ttf":      FileTypeBinary,
		".eot":      FileTypeBinary,
		".otf":      FileTypeBinary,
		".mp3":      FileTypeBinary,
		".mp4":      FileTypeBinary,
		".mov":      FileTypeBinary,
		".webm":     FileTypeBinary,
	}
}

// DefaultCategories returns the default label-to-category table. Labels
// missing from the table fall into the other category.
func DefaultCategories() map[string]Category {
	return map[string]Category{
		"Go":         CategoryApplication,
		"TypeScript": CategoryApplication,
		"JavaScript": CategoryApplication,
		"Python":     CategoryApplication,
		"Ruby":       CategoryApplication,
		"Rust":       CategoryApplication,
		"Java":       CategoryApplication,
		"Kotlin":     CategoryApplication,
		"C":          CategoryApplication,
		"C++":        CategoryApplication,
		"C#":         CategoryApplication,
		"PHP":        CategoryApplication,
		"Swift":      CategoryApplication,
		"Scala":      CategoryApplication,
		"Elixir":     CategoryApplication,
		"Vue":        CategoryApplication,
		"Svelte":     CategoryApplication,
		"HTML":       CategoryApplication,
		"CSS":        CategoryApplication,
		"SQL":        CategoryApplication,
		"Protobuf":   CategoryApplication,
		"GraphQL":    CategoryApplication,
		"Test":       CategoryTest,
		"JSON":       CategoryBuild,
		"YAML":       CategoryBuild,
		"TOML":       CategoryBuild,
		"XML":        CategoryBuild,
		"Config":     CategoryBuild,
		"Build":      CategoryBuild,
		"Lockfile":   CategoryBuild,
		"Shell":      CategoryBuild,
		"Terraform":  CategoryBuild,
		"Markdown":   CategoryDocumentation,
		"Text":       CategoryDocumentation,
		FileTypeBinary: CategoryOther,
		FileTypeOther:  CategoryOther,
	}
}

// Classifier resolves file paths to file-type labels by longest-suffix
// lookup. The lookup is pure and case-insensitive; it never inspects file
// contents.
type Classifier struct {
	suffixes []string
	labels   map[string]string
}

// NewClassifier builds a classifier from a suffix-to-label table. A nil or
// empty table falls back to DefaultFileTypes.
func NewClassifier(table map[string]string) *Classifier {
	if len(table) == 0 {
		table = DefaultFileTypes()
	}
	c := &Classifier{
		suffixes: make([]string, 0, len(table)),
		labels:   make(map[string]string, len(table)),
	}
	for suffix, label := range table {
		s := strings.ToLower(suffix)
		c.labels[s] = label
		c.suffixes = append(c.suffixes, s)
	}
	sort.Slice(c.suffixes, func(i, j int) bool {
		if len(c.suffixes[i]) != len(c.suffixes[j]) {
			return len(c.suffixes[i]) > len(c.suffixes[j])
		}
		return c.suffixes[i] < c.suffixes[j]
	})
	return c
}

// Classify returns the file-type label for a path, or Other when no
// configured suffix matches.
func (c *Classifier) Classify(path string) string {
	lower := strings.ToLower(path)
	for _, suffix := range c.suffixes {
		if strings.HasSuffix(lower, suffix) {
			return c.labels[suffix]
		}
	}
	return FileTypeOther
}

// IsBinary reports whether the path classifies as Binary.
func (c *Classifier) IsBinary(path string) bool {
	return c.Classify(path) == FileTypeBinary
}

// CategoriesFromStrings converts a label-to-category-name table into typed
// categories, dropping entries whose category name is unknown. A nil or
// empty table falls back to DefaultCategories.
func CategoriesFromStrings(table map[string]string) map[string]Category {
	if len(table) == 0 {
		return DefaultCategories()
	}
	out := make(map[string]Category, len(table))
	for label, name := range table {
		switch Category(strings.ToLower(name)) {
		case CategoryApplication:
			out[label] = CategoryApplication
		case CategoryTest:
			out[label] = CategoryTest
		case CategoryBuild:
			out[label] = CategoryBuild
		case CategoryDocumentation:
			out[label] = CategoryDocumentation
		case CategoryOther:
			out[label] = CategoryOther
		}
	}
	return out
}
