package raster

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolver maps a size to the file its bitmap is written to.
type Resolver func(SizeSpec) (string, error)

// DensityDirs lays files out as <root>/<prefix><label>/<filename>, the
// Android res/mipmap-<density>/ic_launcher.png convention.
func DensityDirs(root, prefix, filename string) Resolver {
	return func(s SizeSpec) (string, error) {
		if filename == "" {
			return "", fmt.Errorf("resolve %s: empty filename", s.Label)
		}
		if s.Label == "" || strings.ContainsAny(s.Label, `/\`) || s.Label == "." || s.Label == ".." {
			return "", fmt.Errorf("resolve %q: label is not a directory name", s.Label)
		}
		return filepath.Join(root, prefix+s.Label, filename), nil
	}
}
