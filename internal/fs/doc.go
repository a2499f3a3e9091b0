// Package fs defines the shared filesystem contract consumed by the UI
// command layer and the search engine.
//
// Two interchangeable backends implement the contract: the OS-backed
// backend (fs/local) delegating to host syscalls, and the virtual backend
// (fs/virtual) holding an in-memory tree persisted to a snapshot file.
// Every read operation produces Entry records; callers treat them as
// immutable snapshots decoupled from the backend that produced them.
package fs
