package enginetester

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrDirectoryNotFound     = errors.New("directory not found")
	ErrUnrecognizedSuffix    = errors.New("file name does not end with '_req.json' or '_req3.json'")
	ErrInvalidRequestJSON    = errors.New("request file is not valid JSON")
	ErrInvalidDownstreamJSON = errors.New("downstream response is not valid JSON")
)

// DownstreamStatusError reports a non-2xx response from the engine.
type DownstreamStatusError struct {
	StatusCode int
}

func (e *DownstreamStatusError) Error() string {
	return fmt.Sprintf("downstream server responded with status %d", e.StatusCode)
}
