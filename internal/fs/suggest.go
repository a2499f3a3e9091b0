package fs

import (
	"path"
	"sort"
	"strings"
)

// JoinPath appends a name to a /-separated directory path.
func JoinPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

// SplitSuggestion separates a partial path into the directory to list and
// the prefix to complete. A trailing slash means "everything inside".
func SplitSuggestion(partial string, normalize func(string) string) (parent, prefix string) {
	if strings.HasSuffix(partial, "/") || partial == "" || partial == "~" {
		return normalize(partial), ""
	}
	dir, last := path.Split(partial)
	return normalize(dir), last
}

// MatchSuggestions filters directory entries by case-insensitive prefix
// match on the name and returns full paths, sorted alphabetically and
// capped at MaxSuggestions. Both backends share this so the UI sees one
// consistent completion behavior.
func MatchSuggestions(parent, prefix string, entries []Entry) []string {
	lower := strings.ToLower(prefix)
	var out []string
	for _, e := range entries {
		if !e.IsDir {
			continue
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(e.Name), lower) {
			continue
		}
		out = append(out, JoinPath(parent, e.Name))
	}
	sort.Strings(out)
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}
