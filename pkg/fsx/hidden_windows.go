//go:build windows

package fsx

import "golang.org/x/sys/windows"

// isHidden reports dotfiles and entries carrying the Windows hidden
// attribute. Attribute lookups that fail fall back to the dotfile rule.
func isHidden(path string, name string) bool {
	if len(name) > 0 && name[0] == '.' {
		return true
	}
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
