package models

// Category is one of the five change categories every time-bucket metric is
// broken down into.
type Category string

const (
	CategoryApplication   Category = "application"
	CategoryTest          Category = "test"
	CategoryBuild         Category = "build"
	CategoryDocumentation Category = "documentation"
	CategoryOther         Category = "other"
)

// CategoryBreakdown holds a total and its split across the five categories.
// Invariant: Total == Application+Test+Build+Documentation+Other.
type CategoryBreakdown struct {
	Total         int64 `json:"total"`
	Application   int64 `json:"application"`
	Test          int64 `json:"test"`
	Build         int64 `json:"build"`
	Documentation int64 `json:"documentation"`
	Other         int64 `json:"other"`
}

// Add adds n to the given category and to the total. Unknown categories
// count as other.
func (b *CategoryBreakdown) Add(cat Category, n int64) {
	switch cat {
	case CategoryApplication:
		b.Application += n
	case CategoryTest:
		b.Test += n
	case CategoryBuild:
		b.Build += n
	case CategoryDocumentation:
		b.Documentation += n
	default:
		b.Other += n
	}
	b.Total += n
}

// Get returns the counter for the given category.
func (b CategoryBreakdown) Get(cat Category) int64 {
	switch cat {
	case CategoryApplication:
		return b.Application
	case CategoryTest:
		return b.Test
	case CategoryBuild:
		return b.Build
	case CategoryDocumentation:
		return b.Documentation
	default:
		return b.Other
	}
}

// Sum returns the sum of the five category counters.
func (b CategoryBreakdown) Sum() int64 {
	return b.Application + b.Test + b.Build + b.Documentation + b.Other
}

// ClampNonNegative clamps every category to zero and recomputes the total as
// their sum, so both invariants (no negative counter, total equals the sum)
// hold after deletions exceed the additions in view.
func (b *CategoryBreakdown) ClampNonNegative() {
	if b.Application < 0 {
		b.Application = 0
	}
	if b.Test < 0 {
		b.Test = 0
	}
	if b.Build < 0 {
		b.Build = 0
	}
	if b.Documentation < 0 {
		b.Documentation = 0
	}
	if b.Other < 0 {
		b.Other = 0
	}
	b.Total = b.Sum()
}
