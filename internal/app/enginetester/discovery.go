package enginetester

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var requestSuffixes = []string{"_req.json", "_req3.json"}

// DiscoverRequestFiles walks root and returns every request file under it.
// A file is collected at most once even though two suffix patterns are
// matched. The result is sorted by full path so iteration order is stable
// across runs and platforms.
func DiscoverRequestFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, suffix := range requestSuffixes {
			if strings.HasSuffix(d.Name(), suffix) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", root)
	}

	sort.Strings(files)
	return files, nil
}
