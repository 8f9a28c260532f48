// Package boards embeds the built-in board layouts.
package boards

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var FS embed.FS

// Dir is the on-disk directory checked before the embedded copies, so a board
// can be edited without rebuilding.
var Dir = "boards"

// Load returns the named board file, preferring a copy under Dir.
func Load(name string) ([]byte, error) {
	clean := cleanBoardPath(name)
	if data, err := os.ReadFile(diskBoardPath(clean)); err == nil {
		return data, nil
	}
	return FS.ReadFile(clean)
}

// ModTime reports the modification time of the on-disk copy, if there is one.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskBoardPath(cleanBoardPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Path returns the on-disk path Load checks for name.
func Path(name string) string {
	return diskBoardPath(cleanBoardPath(name))
}

func cleanBoardPath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "boards/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func diskBoardPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
