// Package main is the entry point for the file manager backend server.
//
// The server exposes the filesystem contract over HTTP for the desktop UI:
// a persistent virtual tree, the host OS filesystem, and a search service
// over both.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	./server -port 8090 -snapshot /path/to/vfs_state.json
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
