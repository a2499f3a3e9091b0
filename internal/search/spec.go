package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
)

// Specification is a composable predicate over one entry record.
type Specification interface {
	Matches(e fs.Entry) bool
}

// TextMatchMode selects how a name specification compares names.
type TextMatchMode int

const (
	// MatchExact is a case-insensitive equality check.
	MatchExact TextMatchMode = iota
	// MatchContains is a case-insensitive substring check.
	MatchContains
	// MatchRegex matches the compiled pattern against the whole name.
	MatchRegex
	// MatchFuzzy accepts names within a Levenshtein distance of the
	// pattern. The distance is computed between the whole lowercased name
	// and the whole lowercased pattern, so long names with short patterns
	// pay for the length difference. That is deliberate.
	MatchFuzzy
	// MatchGlob matches gitignore-style patterns against the name.
	MatchGlob
)

// NameSpec matches entries by name.
type NameSpec struct {
	pattern     string
	mode        TextMatchMode
	maxDistance int
	re          *regexp.Regexp
}

// NewName builds a name specification for Exact, Contains, Regex or Glob
// mode. Invalid Regex and Glob patterns fail here, at construction, never
// later per match — user-supplied search text must not be able to panic.
func NewName(pattern string, mode TextMatchMode) (*NameSpec, error) {
	spec := &NameSpec{pattern: pattern, mode: mode}
	switch mode {
	case MatchRegex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", fs.ErrInvalidPattern, err)
		}
		spec.re = re
	case MatchGlob:
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", fs.ErrInvalidPattern, pattern)
		}
	case MatchFuzzy:
		return nil, fmt.Errorf("%w: fuzzy mode requires a distance, use NewFuzzyName", fs.ErrInvalidPattern)
	}
	return spec, nil
}

// NewFuzzyName builds a fuzzy name specification accepting names whose
// edit distance to pattern is at most maxDistance.
func NewFuzzyName(pattern string, maxDistance int) *NameSpec {
	return &NameSpec{pattern: pattern, mode: MatchFuzzy, maxDistance: maxDistance}
}

// Matches implements Specification.
func (s *NameSpec) Matches(e fs.Entry) bool {
	switch s.mode {
	case MatchExact:
		return strings.EqualFold(e.Name, s.pattern)
	case MatchContains:
		return strings.Contains(strings.ToLower(e.Name), strings.ToLower(s.pattern))
	case MatchRegex:
		return s.re.MatchString(e.Name)
	case MatchFuzzy:
		dist := levenshtein.ComputeDistance(strings.ToLower(e.Name), strings.ToLower(s.pattern))
		return dist <= s.maxDistance
	case MatchGlob:
		ok, err := doublestar.Match(s.pattern, e.Name)
		return err == nil && ok
	}
	return false
}

// ExtensionSpec matches file names ending with a configured extension.
type ExtensionSpec struct {
	ext string // lowercase, dot-prefixed
}

// NewExtension normalizes the extension to a lowercase dot-prefixed
// suffix: "txt" and ".TXT" configure the same specification.
func NewExtension(ext string) *ExtensionSpec {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &ExtensionSpec{ext: ext}
}

// Matches implements Specification.
func (s *ExtensionSpec) Matches(e fs.Entry) bool {
	return strings.HasSuffix(strings.ToLower(e.Name), s.ext)
}

// SizeSpec matches files within inclusive byte bounds. Entries without a
// size (directories) never match, whatever the bounds.
type SizeSpec struct {
	min *int64
	max *int64
}

// NewSizeRange bounds matching files to [min, max] bytes.
func NewSizeRange(min, max int64) *SizeSpec {
	return &SizeSpec{min: &min, max: &max}
}

// NewMinSize bounds matching files to at least min bytes.
func NewMinSize(min int64) *SizeSpec { return &SizeSpec{min: &min} }

// NewMaxSize bounds matching files to at most max bytes.
func NewMaxSize(max int64) *SizeSpec { return &SizeSpec{max: &max} }

// Matches implements Specification.
func (s *SizeSpec) Matches(e fs.Entry) bool {
	size, ok := e.FileSize()
	if !ok {
		return false
	}
	if s.min != nil && size < *s.min {
		return false
	}
	if s.max != nil && size > *s.max {
		return false
	}
	return true
}

// AndSpec matches iff every contained specification matches. Empty
// matches everything (vacuous truth).
type AndSpec struct {
	specs []Specification
}

// NewAnd composes specifications with logical AND.
func NewAnd(specs ...Specification) *AndSpec {
	return &AndSpec{specs: specs}
}

// Matches implements Specification.
func (s *AndSpec) Matches(e fs.Entry) bool {
	for _, spec := range s.specs {
		if !spec.Matches(e) {
			return false
		}
	}
	return true
}
