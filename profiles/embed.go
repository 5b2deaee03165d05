// Package profiles loads per-character tuning assets: capsule geometry,
// ground-check settings, and the gravity response curves. Assets are
// embedded but a file on disk under profiles/ overrides the embedded copy,
// so tuning can be edited (and hot-reloaded) without rebuilding.
package profiles

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var ProfilesFS embed.FS

// Load reads a profile asset by name, preferring the on-disk copy.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ProfilesFS.ReadFile(clean)
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "profiles/"); ok {
		return after
	}
	return s
}

func diskPath(clean string) string {
	return filepath.Join("profiles", filepath.FromSlash(clean))
}
