package enginetester

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCall struct {
	url  string
	body string
}

type fakeClient struct {
	status int
	body   string
	calls  []fakeCall
}

func (f *fakeClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, fakeCall{url: url, body: string(data)})

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func TestRelayCreatesResponseFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "データ", "深い", "依頼_req.json"), `{"message": "hello", "value": 42}`)

	client := &fakeClient{body: `{"result": "ok"}`}
	summary, err := Relay("http://example.com/api", root, time.Second, client)

	require.NoError(t, err)
	assert.Equal(t, "http://example.com/api", summary.TargetURL)
	assert.Equal(t, root, summary.BaseDirectory)
	require.Equal(t, 1, summary.ProcessedCount())

	require.Len(t, client.calls, 1)
	assert.Equal(t, "http://example.com/api", client.calls[0].url)
	assert.JSONEq(t, `{"message": "hello", "value": 42}`, client.calls[0].body)

	responsePath := filepath.Join(root, "データ", "深い", "依頼_res.json")
	assert.Equal(t, responsePath, summary.ProcessedFiles[0].ResponsePath)

	content, err := os.ReadFile(responsePath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result": "ok"}`, string(content))
	assert.True(t, strings.HasSuffix(string(content), "\n"))
}

func TestRelayAdjustsIdouRoutes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "03sample_req.json"), `{"foo": "bar"}`)

	client := &fakeClient{body: `{"result": "ok"}`}
	summary, err := Relay("http://example.com/idou/service", root, time.Second, client)

	require.NoError(t, err)
	require.Equal(t, 1, summary.ProcessedCount())
	require.Len(t, client.calls, 1)
	assert.Equal(t, "http://example.com/idou/service/chkkeiyakuOver", client.calls[0].url)
	assert.FileExists(t, filepath.Join(root, "03sample_res.json"))
}

func TestRelayReq3FilesSkipRouting(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "03sample_req3.json"), `{"foo": "bar"}`)

	client := &fakeClient{body: `{"result": "ok"}`}
	summary, err := Relay("http://example.com/idou/service", root, time.Second, client)

	require.NoError(t, err)
	require.Len(t, client.calls, 1)
	assert.Equal(t, "http://example.com/idou/service", client.calls[0].url)
	assert.Equal(t, filepath.Join(root, "03sample_res3.json"), summary.ProcessedFiles[0].ResponsePath)
	assert.FileExists(t, filepath.Join(root, "03sample_res3.json"))
}

func TestRelayProcessesFilesInDiscoveryOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "second_req.json"), `{}`)
	writeFile(t, filepath.Join(root, "a", "first_req.json"), `{}`)
	writeFile(t, filepath.Join(root, "third_req.json"), `{}`)

	client := &fakeClient{body: `{"result": "ok"}`}
	summary, err := Relay("http://example.com/api", root, time.Second, client)

	require.NoError(t, err)
	require.Equal(t, 3, summary.ProcessedCount())

	var requests []string
	for _, processed := range summary.ProcessedFiles {
		requests = append(requests, processed.RequestPath)
	}
	assert.Equal(t, []string{
		filepath.Join(root, "a", "first_req.json"),
		filepath.Join(root, "b", "second_req.json"),
		filepath.Join(root, "third_req.json"),
	}, requests)
}

func TestRelayInvalidRequestJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a_req.json"), `{"fine": true}`)
	writeFile(t, filepath.Join(root, "broken_req.json"), `{not json`)

	client := &fakeClient{body: `{"result": "ok"}`}
	summary, err := Relay("http://example.com/api", root, time.Second, client)

	require.ErrorIs(t, err, ErrInvalidRequestJSON)
	assert.Contains(t, err.Error(), filepath.Join(root, "broken_req.json"))
	assert.Equal(t, ProcessSummary{}, summary)
	assert.NoFileExists(t, filepath.Join(root, "broken_res.json"))
}

func TestRelayDownstreamStatusError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a_req.json"), `{}`)

	client := &fakeClient{status: http.StatusInternalServerError, body: "boom"}
	summary, err := Relay("http://example.com/api", root, time.Second, client)

	require.Error(t, err)
	var statusErr *DownstreamStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, ProcessSummary{}, summary)
	assert.NoFileExists(t, filepath.Join(root, "a_res.json"))
}

func TestRelayInvalidDownstreamJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a_req.json"), `{}`)

	client := &fakeClient{body: "<html>not json</html>"}
	summary, err := Relay("http://example.com/api", root, time.Second, client)

	require.ErrorIs(t, err, ErrInvalidDownstreamJSON)
	assert.Equal(t, ProcessSummary{}, summary)
	assert.NoFileExists(t, filepath.Join(root, "a_res.json"))
}

func TestRelayEmptyDirectory(t *testing.T) {
	root := t.TempDir()

	client := &fakeClient{body: `{"result": "ok"}`}
	summary, err := Relay("http://example.com/api", root, time.Second, client)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.ProcessedCount())
	assert.Equal(t, "http://example.com/api", summary.TargetURL)
	assert.Empty(t, client.calls)
}

func TestRelayWithOwnedClient(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a_req.json"), `{"ping": 1}`)

	var received string
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	}))
	defer downstream.Close()

	summary, err := Relay(downstream.URL, root, 5*time.Second, nil)

	require.NoError(t, err)
	require.Equal(t, 1, summary.ProcessedCount())
	assert.JSONEq(t, `{"ping": 1}`, received)

	content, err := os.ReadFile(filepath.Join(root, "a_res.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result": "ok"}`, string(content))
}
