package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func identity(p string) string { return p }

func TestSplitSuggestion(t *testing.T) {
	tests := []struct {
		name    string
		partial string
		parent  string
		prefix  string
	}{
		{"trailing slash lists everything", "/home/", "/home/", ""},
		{"partial last segment", "/home/Doc", "/home/", "Doc"},
		{"empty partial", "", "", ""},
		{"bare tilde", "~", "~", ""},
		{"root only", "/", "/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, prefix := SplitSuggestion(tt.partial, identity)
			assert.Equal(t, tt.parent, parent)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}

func TestMatchSuggestions(t *testing.T) {
	entries := []Entry{
		{Name: "Documents", IsDir: true},
		{Name: "Downloads", IsDir: true},
		{Name: "Desktop", IsDir: true},
		{Name: "notes.txt", IsFile: true},
	}

	t.Run("case insensitive prefix", func(t *testing.T) {
		got := MatchSuggestions("/home", "do", entries)
		assert.Equal(t, []string{"/home/Documents", "/home/Downloads"}, got)
	})

	t.Run("files are never suggested", func(t *testing.T) {
		got := MatchSuggestions("/home", "no", entries)
		assert.Empty(t, got)
	})

	t.Run("empty prefix returns all directories", func(t *testing.T) {
		got := MatchSuggestions("/home", "", entries)
		assert.Equal(t, []string{"/home/Desktop", "/home/Documents", "/home/Downloads"}, got)
	})

	t.Run("capped at the maximum", func(t *testing.T) {
		var many []Entry
		for i := 0; i < MaxSuggestions+5; i++ {
			many = append(many, Entry{Name: string(rune('a' + i)), IsDir: true})
		}
		got := MatchSuggestions("/", "", many)
		assert.Len(t, got, MaxSuggestions)
	})
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/home", JoinPath("/", "home"))
	assert.Equal(t, "/home/docs", JoinPath("/home", "docs"))
}
