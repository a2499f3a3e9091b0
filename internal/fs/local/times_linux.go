//go:build linux

package local

import (
	"os"
	"syscall"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
)

// statTimes extracts change and access times from the raw stat record.
// Linux has no true birth time in Stat_t; ctime is the closest stand-in.
func statTimes(fi os.FileInfo) (created, accessed *int64) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, nil
	}
	return fs.Int64Ptr(st.Ctim.Sec), fs.Int64Ptr(st.Atim.Sec)
}
