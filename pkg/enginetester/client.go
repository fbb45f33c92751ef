package enginetester

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
)

// Client talks to a running engine tester service.
type Client struct {
	client http.Client
	url    string
}

// ProcessResult mirrors the body returned by the enginepost endpoint.
type ProcessResult struct {
	Status    string   `json:"status"`
	Processed int      `json:"processed"`
	Responses []string `json:"responses"`
}

func New(url string) *Client {
	return &Client{
		client: http.Client{
			Timeout: 30 * time.Second,
		},
		url: url,
	}
}

// Process asks the service to relay every request file under inputFolder to
// engineURL and returns the run result.
func (c *Client) Process(inputFolder, engineURL string) (*ProcessResult, error) {
	q := url.Values{}
	q.Add("inputfolder", inputFolder)
	q.Add("engineurl", engineURL)

	req, err := http.NewRequest("POST", strings.TrimSuffix(c.url, "/")+"/api/enginepost?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errors.New(string(body))
	}

	result := &ProcessResult{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, errors.Wrap(err, "unmarshal process result")
	}
	return result, nil
}

// WaitForReady polls the service health endpoint until it answers OK or the
// given duration elapses.
func (c *Client) WaitForReady(duration time.Duration) error {
	const delay = 100 * time.Millisecond

	attempts := uint(duration / delay)
	if attempts == 0 {
		attempts = 1
	}

	return retry.Do(func() error {
		res, err := c.client.Get(strings.TrimSuffix(c.url, "/") + "/healthz")
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return errors.Errorf("health check returned status %d", res.StatusCode)
		}
		return nil
	}, retry.Attempts(attempts), retry.Delay(delay), retry.LastErrorOnly(true))
}
