// Package server is the thin command layer adapting the filesystem
// contract to HTTP for the UI. It holds no cached state of its own: every
// handler resolves a backend and delegates, relying entirely on the core
// for consistency.
package server
