// Package search implements the specification-based search engine: leaf
// predicates over entry records (name, extension, size), an AND composite,
// a fluent query builder, and a service that drives any filesystem backend
// through a recursive traversal.
package search
