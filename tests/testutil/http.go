package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API response wrapper with the payload left raw
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

// APIClient sends JSON requests straight into a gin engine
type APIClient struct {
	Engine  *gin.Engine
	Headers map[string]string
}

// NewAPIClient creates an APIClient for engine
func NewAPIClient(engine *gin.Engine) *APIClient {
	return &APIClient{Engine: engine, Headers: map[string]string{}}
}

// Response is a recorded API response
type Response struct {
	Code     int
	Envelope Envelope
	Recorder *httptest.ResponseRecorder
}

// Do sends method path with body encoded as JSON. A nil body sends no payload.
func (c *APIClient) Do(t *testing.T, method, path string, body any) *Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body), "Failed to marshal request body")
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c.Engine.ServeHTTP(w, req)

	resp := &Response{Code: w.Code, Recorder: w}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp.Envelope), "Failed to parse JSON response: %s", w.Body.String())
	return resp
}

// Get is shorthand for Do(t, GET, path, nil)
func (c *APIClient) Get(t *testing.T, path string) *Response {
	t.Helper()
	return c.Do(t, http.MethodGet, path, nil)
}

// Post is shorthand for Do(t, POST, path, body)
func (c *APIClient) Post(t *testing.T, path string, body any) *Response {
	t.Helper()
	return c.Do(t, http.MethodPost, path, body)
}

// DataAs asserts the response succeeded with status and decodes its data into T
func DataAs[T any](t *testing.T, resp *Response, status int) T {
	t.Helper()

	require.Equal(t, status, resp.Code, "Unexpected status code: %s", resp.Recorder.Body.String())
	require.True(t, resp.Envelope.Success, "Expected success to be true")

	var result T
	require.NoError(t, json.Unmarshal(resp.Envelope.Data, &result), "Failed to parse response data")
	return result
}

// AssertErrorResponse asserts the response is an error with status and code
func AssertErrorResponse(t *testing.T, resp *Response, status int, expectedCode string) {
	t.Helper()

	assert.Equal(t, status, resp.Code, "Unexpected status code")
	assert.False(t, resp.Envelope.Success, "Expected success to be false")
	require.NotNil(t, resp.Envelope.Error, "Expected error object in response")
	assert.Equal(t, expectedCode, resp.Envelope.Error.Code, "Unexpected error code")
}
