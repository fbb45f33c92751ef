package enginetester

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
)

var prettyOptions = &pretty.Options{Indent: "    "}

// BuildResponsePath derives the response file path for a request file:
// `_req.json` becomes `_res.json` and `_req3.json` becomes `_res3.json`.
func BuildResponsePath(requestPath string) (string, error) {
	name := filepath.Base(requestPath)

	switch {
	case strings.HasSuffix(name, "_req3.json"):
		name = strings.TrimSuffix(name, "_req3.json") + "_res3.json"
	case strings.HasSuffix(name, "_req.json"):
		name = strings.TrimSuffix(name, "_req.json") + "_res.json"
	default:
		return "", errors.Wrapf(ErrUnrecognizedSuffix, "%s", requestPath)
	}

	return filepath.Join(filepath.Dir(requestPath), name), nil
}

// SaveResponsePayload writes payload to path as pretty-printed JSON with
// 4-space indentation and a single trailing newline, creating any missing
// parent directories. Key order in payload is preserved; an existing file is
// overwritten.
func SaveResponsePayload(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}

	out := pretty.PrettyOptions(payload, prettyOptions)
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}

	return errors.Wrapf(os.WriteFile(path, out, 0o644), "write %s", path)
}
