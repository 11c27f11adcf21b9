package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// Standard default permissions
// File: u=rw, g=rw, o=r
const PermFile os.FileMode = 0664

// Dir:  u=rwx, g=rwx, o=rx (Requires +x to traverse)
const PermDir os.FileMode = 0775

// Exec: u=rwx, g=rwx, o=rx (generated shell scripts)
const PermExec os.FileMode = 0775

// IsShellScript checks if the path has a shell script extension (.sh).
func IsShellScript(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".sh"
}

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDir checks if a directory exists, and creates it if it doesn't.
func EnsureDir(path string) error {
	if DirExists(path) {
		return nil
	}
	return os.MkdirAll(path, PermDir)
}

// MarkExecutable sets the executable permissions on a rendered script.
// Rendering and permission bits are separate steps on purpose: the renderer
// only writes content.
func MarkExecutable(path string) error {
	return os.Chmod(path, PermExec)
}

// IsExecutableFile checks if a path is a regular file with any execute bit set.
func IsExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0111 != 0
}
