package search

// Query pairs a composed specification with a recursion flag.
type Query struct {
	Spec      Specification
	Recursive bool
}

// Builder accumulates leaf specifications fluently and wraps them in one
// AND composite on Build. Construction errors (an invalid regex or glob)
// are carried and reported by Build instead of panicking mid-chain.
type Builder struct {
	specs     []Specification
	recursive bool
	err       error
}

// NewBuilder starts an empty query: it matches every file, not recursive.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithName adds a name specification in the given match mode.
func (b *Builder) WithName(pattern string, mode TextMatchMode) *Builder {
	spec, err := NewName(pattern, mode)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.specs = append(b.specs, spec)
	return b
}

// WithFuzzyName adds a fuzzy name specification with the given maximum
// edit distance.
func (b *Builder) WithFuzzyName(pattern string, maxDistance int) *Builder {
	b.specs = append(b.specs, NewFuzzyName(pattern, maxDistance))
	return b
}

// WithExtension adds an extension specification.
func (b *Builder) WithExtension(ext string) *Builder {
	b.specs = append(b.specs, NewExtension(ext))
	return b
}

// WithSizeRange bounds matches to [min, max] bytes inclusive.
func (b *Builder) WithSizeRange(min, max int64) *Builder {
	b.specs = append(b.specs, NewSizeRange(min, max))
	return b
}

// WithMinSize bounds matches to at least min bytes.
func (b *Builder) WithMinSize(min int64) *Builder {
	b.specs = append(b.specs, NewMinSize(min))
	return b
}

// WithMaxSize bounds matches to at most max bytes.
func (b *Builder) WithMaxSize(max int64) *Builder {
	b.specs = append(b.specs, NewMaxSize(max))
	return b
}

// Recursive sets whether the search descends into subdirectories.
func (b *Builder) Recursive(recursive bool) *Builder {
	b.recursive = recursive
	return b
}

// Build returns the query, or the first construction error encountered.
func (b *Builder) Build() (*Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Query{
		Spec:      NewAnd(b.specs...),
		Recursive: b.recursive,
	}, nil
}
