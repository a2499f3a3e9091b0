package fs

import (
	"path"
	"strings"
)

// Entry describes one filesystem node. Exactly one of IsDir/IsFile is true.
// Size is present only for files; timestamps are epoch seconds and optional.
type Entry struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	IsDir    bool   `json:"isDir"`
	IsFile   bool   `json:"isFile"`
	Size     *int64 `json:"size,omitempty"`
	Modified *int64 `json:"modified,omitempty"`
	Created  *int64 `json:"created,omitempty"`
	Accessed *int64 `json:"accessed,omitempty"`
}

// FileSize returns the size for files and false for directories.
func (e Entry) FileSize() (int64, bool) {
	if e.Size == nil {
		return 0, false
	}
	return *e.Size, true
}

// Extension returns the lowercased extension of the entry name, with dot.
func (e Entry) Extension() string {
	return strings.ToLower(path.Ext(e.Name))
}

// Encoding of file content returned by ReadContent.
type Encoding string

const (
	EncodingText   Encoding = "text"
	EncodingBase64 Encoding = "base64"
)

// Content is the result of a ReadContent call. Binary bytes are
// base64-encoded rather than refused; MimeType is advisory and may be empty.
type Content struct {
	Path     string   `json:"path"`
	Content  string   `json:"content"`
	Encoding Encoding `json:"encoding"`
	Size     int64    `json:"size"`
	MimeType string   `json:"mimeType,omitempty"`
}

// Int64Ptr is a convenience for optional Entry fields.
func Int64Ptr(v int64) *int64 { return &v }
