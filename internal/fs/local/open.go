package local

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// OpenFile hands the path to the platform opener.
func (l *FS) OpenFile(ctx context.Context, p string) error {
	return openWith(ctx, l.NormalizePath(p))
}

// RevealInFileManager shows the entry in the host file manager. Platforms
// without a "reveal" verb fall back to opening the parent directory.
func (l *FS) RevealInFileManager(ctx context.Context, p string) error {
	p = l.NormalizePath(p)
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", "-R", p).Start()
	default:
		return openWith(ctx, filepath.ToSlash(filepath.Dir(p)))
	}
}

// OpenTerminal starts a terminal emulator in the given directory.
func (l *FS) OpenTerminal(ctx context.Context, p string) error {
	p = l.NormalizePath(p)
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", "-a", "Terminal", p).Start()
	case "linux":
		cmd := exec.CommandContext(ctx, "x-terminal-emulator")
		cmd.Dir = p
		return cmd.Start()
	default:
		return fmt.Errorf("open terminal: unsupported platform %s", runtime.GOOS)
	}
}

func openWith(ctx context.Context, p string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", p).Start()
	case "linux":
		return exec.CommandContext(ctx, "xdg-open", p).Start()
	default:
		return fmt.Errorf("open: unsupported platform %s", runtime.GOOS)
	}
}
