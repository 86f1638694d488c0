//go:build !windows

package fsx

// isHidden reports dotfiles; the full path is unused on Unix-likes.
func isHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}
