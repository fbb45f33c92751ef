package enginetester

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ProcessedFile pairs one request file with the response file written for it.
type ProcessedFile struct {
	RequestPath  string
	ResponsePath string
}

// ProcessSummary describes a completed relay run.
type ProcessSummary struct {
	TargetURL      string
	BaseDirectory  string
	ProcessedFiles []ProcessedFile
}

func (s ProcessSummary) ProcessedCount() int {
	return len(s.ProcessedFiles)
}

// HTTPClient is the single capability the relay needs from a client: issue a
// POST and hand back the status and body. *http.Client satisfies it.
type HTTPClient interface {
	Post(url, contentType string, body io.Reader) (*http.Response, error)
}

// Relay discovers every request file under directory, POSTs each to the URL
// computed by ResolvePostURL and persists the response next to the request.
// Files are processed strictly sequentially in discovery order; the first
// failure aborts the run and no summary is returned. A nil client means the
// relay creates its own with the given timeout and releases it before
// returning; a caller-supplied client is never closed here.
func Relay(targetURL, directory string, timeout time.Duration, client HTTPClient) (ProcessSummary, error) {
	if client == nil {
		owned := &http.Client{Timeout: timeout}
		defer owned.CloseIdleConnections()
		client = owned
	}

	files, err := DiscoverRequestFiles(directory)
	if err != nil {
		return ProcessSummary{}, err
	}

	var processed []ProcessedFile
	for _, requestPath := range files {
		payload, err := os.ReadFile(requestPath)
		if err != nil {
			return ProcessSummary{}, errors.Wrapf(err, "read %s", requestPath)
		}
		if !gjson.ValidBytes(payload) {
			return ProcessSummary{}, errors.Wrapf(ErrInvalidRequestJSON, "%s", requestPath)
		}

		postURL, err := ResolvePostURL(targetURL, filepath.Base(requestPath))
		if err != nil {
			return ProcessSummary{}, err
		}

		body, err := post(client, postURL, payload)
		if err != nil {
			return ProcessSummary{}, errors.Wrapf(err, "relay %s", requestPath)
		}

		responsePath, err := BuildResponsePath(requestPath)
		if err != nil {
			return ProcessSummary{}, err
		}
		if err := SaveResponsePayload(responsePath, body); err != nil {
			return ProcessSummary{}, err
		}

		processed = append(processed, ProcessedFile{
			RequestPath:  requestPath,
			ResponsePath: responsePath,
		})
	}

	return ProcessSummary{
		TargetURL:      targetURL,
		BaseDirectory:  directory,
		ProcessedFiles: processed,
	}, nil
}

func post(client HTTPClient, url string, payload []byte) ([]byte, error) {
	res, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read downstream response")
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &DownstreamStatusError{StatusCode: res.StatusCode}
	}
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidDownstreamJSON
	}

	return body, nil
}
