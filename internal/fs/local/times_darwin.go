//go:build darwin

package local

import (
	"os"
	"syscall"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
)

func statTimes(fi os.FileInfo) (created, accessed *int64) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, nil
	}
	return fs.Int64Ptr(st.Birthtimespec.Sec), fs.Int64Ptr(st.Atimespec.Sec)
}
