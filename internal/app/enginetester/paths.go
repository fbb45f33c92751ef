package enginetester

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ResolveDirectory canonicalizes a client-provided directory path. Home
// shorthand is expanded, relative segments and symlinks are resolved. The
// result is an absolute path to an existing directory.
func ResolveDirectory(directory string) (string, error) {
	if directory == "~" || strings.HasPrefix(directory, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home directory")
		}
		directory = filepath.Join(home, strings.TrimPrefix(directory, "~"))
	}

	abs, err := filepath.Abs(directory)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", directory)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(ErrDirectoryNotFound, "%s", abs)
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", errors.Wrapf(ErrDirectoryNotFound, "%s", resolved)
	}

	return resolved, nil
}
