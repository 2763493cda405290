package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDir is the directory under os.TempDir() that sandboxes dev runs.
const DevDir = "notepad-dev"

// IsDevRun reports whether the process runs via `go run` or `go test`.
// Both build their binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolvePath applies the dev sandbox to a data path.
//
// Without forceTemp the path is returned unchanged. With it, a path already
// under os.TempDir() is trusted as is and anything else is re-rooted to
// $TMP/notepad-dev/<base name>.
func ResolvePath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	tempRoot := os.TempDir()
	if filepath.IsAbs(clean) {
		if rel, err := filepath.Rel(tempRoot, clean); err == nil && !strings.HasPrefix(rel, "..") {
			return clean
		}
	}

	name := filepath.Base(clean)
	if userPath == "" || name == "." || name == string(os.PathSeparator) {
		name = "default"
	}
	return filepath.Join(tempRoot, DevDir, name)
}
