package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
)

func file(name string, size int64) fs.Entry {
	return fs.Entry{Name: name, Path: "/" + name, IsFile: true, Size: fs.Int64Ptr(size)}
}

func dir(name string) fs.Entry {
	return fs.Entry{Name: name, Path: "/" + name, IsDir: true}
}

func TestNameExact(t *testing.T) {
	spec, err := NewName("Report.txt", MatchExact)
	require.NoError(t, err)

	assert.True(t, spec.Matches(file("Report.txt", 1)))
	assert.True(t, spec.Matches(file("report.TXT", 1)))
	assert.False(t, spec.Matches(file("Report.txt.bak", 1)))
}

func TestNameContains(t *testing.T) {
	spec, err := NewName("port", MatchContains)
	require.NoError(t, err)

	assert.True(t, spec.Matches(file("Report.txt", 1)))
	assert.True(t, spec.Matches(file("PORTFOLIO", 1)))
	assert.False(t, spec.Matches(file("notes.txt", 1)))
}

func TestNameRegex(t *testing.T) {
	spec, err := NewName(`^\d{4}-report\.pdf$`, MatchRegex)
	require.NoError(t, err)

	assert.True(t, spec.Matches(file("2024-report.pdf", 1)))
	assert.False(t, spec.Matches(file("draft-report.pdf", 1)))
}

func TestNameRegexInvalid(t *testing.T) {
	_, err := NewName("[unclosed", MatchRegex)
	assert.ErrorIs(t, err, fs.ErrInvalidPattern)
}

func TestNameGlob(t *testing.T) {
	spec, err := NewName("*.{jpg,png}", MatchGlob)
	require.NoError(t, err)

	assert.True(t, spec.Matches(file("photo.jpg", 1)))
	assert.True(t, spec.Matches(file("icon.png", 1)))
	assert.False(t, spec.Matches(file("doc.pdf", 1)))
}

func TestNameGlobInvalid(t *testing.T) {
	_, err := NewName("[", MatchGlob)
	assert.ErrorIs(t, err, fs.ErrInvalidPattern)
}

func TestNameFuzzyRequiresDistance(t *testing.T) {
	_, err := NewName("whatever", MatchFuzzy)
	assert.ErrorIs(t, err, fs.ErrInvalidPattern)
}

func TestFuzzyName(t *testing.T) {
	spec := NewFuzzyName("report", 2)

	// distance 0
	assert.True(t, spec.Matches(file("report", 1)))
	// one substitution
	assert.True(t, spec.Matches(file("Resort", 1)))
	// two edits
	assert.True(t, spec.Matches(file("repor", 1)))
	// the extension alone costs four edits
	assert.False(t, spec.Matches(file("report.txt", 1)))
	assert.False(t, spec.Matches(file("summary", 1)))
}

func TestExtension(t *testing.T) {
	withDot := NewExtension(".txt")
	bare := NewExtension("TXT")

	for _, spec := range []*ExtensionSpec{withDot, bare} {
		assert.True(t, spec.Matches(file("a.txt", 1)))
		assert.True(t, spec.Matches(file("A.TXT", 1)))
		assert.False(t, spec.Matches(file("a.txt.gz", 1)))
		assert.False(t, spec.Matches(file("atxt", 1)))
	}
}

func TestSizeRange(t *testing.T) {
	spec := NewSizeRange(100, 1000)

	assert.False(t, spec.Matches(file("small", 99)))
	assert.True(t, spec.Matches(file("low", 100)))
	assert.True(t, spec.Matches(file("high", 1000)))
	assert.False(t, spec.Matches(file("big", 1001)))
}

func TestSizeNeverMatchesDirectories(t *testing.T) {
	assert.False(t, NewSizeRange(0, 1<<40).Matches(dir("docs")))
	assert.False(t, NewMinSize(0).Matches(dir("docs")))
	assert.False(t, NewMaxSize(1<<40).Matches(dir("docs")))
}

func TestSizeOpenBounds(t *testing.T) {
	assert.True(t, NewMinSize(10).Matches(file("f", 10)))
	assert.False(t, NewMinSize(10).Matches(file("f", 9)))
	assert.True(t, NewMaxSize(10).Matches(file("f", 10)))
	assert.False(t, NewMaxSize(10).Matches(file("f", 11)))
}

func TestAndComposite(t *testing.T) {
	name, err := NewName("report", MatchContains)
	require.NoError(t, err)
	spec := NewAnd(name, NewExtension("pdf"), NewMinSize(100))

	assert.True(t, spec.Matches(file("annual-report.pdf", 500)))
	assert.False(t, spec.Matches(file("annual-report.txt", 500)))
	assert.False(t, spec.Matches(file("annual-report.pdf", 50)))
}

func TestAndEmptyMatchesEverything(t *testing.T) {
	assert.True(t, NewAnd().Matches(file("anything", 0)))
}

func TestAndContradictory(t *testing.T) {
	spec := NewAnd(NewMinSize(1000), NewMaxSize(10))
	assert.False(t, spec.Matches(file("f", 500)))
	assert.False(t, spec.Matches(file("f", 5)))
	assert.False(t, spec.Matches(file("f", 5000)))
}
