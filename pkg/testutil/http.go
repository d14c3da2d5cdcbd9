// Package testutil holds HTTP helpers for exercising the label endpoints.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/pkg/platform/httputil"
	"labelprint/pkg/platform/middleware/kiosk"
)

// NewPrintRequest builds a POST carrying {"code": code}, the body the kiosk
// page sends to /api/print and /api/preview.
func NewPrintRequest(t *testing.T, path, code string) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{"code": code})
	require.NoError(t, err)
	return NewRequestWithBody(t, http.MethodPost, path, string(body))
}

// NewRequestWithBody sends body as-is, for malformed or oddly typed payloads.
func NewRequestWithBody(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequest creates a request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// WithKioskToken sets the kiosk token header on req.
func WithKioskToken(req *http.Request, token string) *http.Request {
	req.Header.Set(kiosk.HeaderToken, token)
	return req
}

// DoRequest serves req and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// UnmarshalResponse decodes the JSON body into T.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result), "failed to unmarshal response: %s", rr.Body.String())
	return &result
}

// UnmarshalErrorResponse decodes the error envelope.
func UnmarshalErrorResponse(t *testing.T, rr *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	return *UnmarshalResponse[httputil.ErrorResponse](t, rr)
}

func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code: %s", rr.Body.String())
}

func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}

// AssertStatusAndError checks the status and the envelope's error code.
func AssertStatusAndError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()
	AssertStatus(t, rr, expectedStatus)
	assert.Equal(t, expectedCode, UnmarshalErrorResponse(t, rr).Error, "unexpected error code")
}

// AssertErrorResponse checks status, error code and the full description the
// kiosk shows to the operator.
func AssertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedCode, expectedDescription string) {
	t.Helper()
	AssertStatus(t, rr, expectedStatus)
	got := UnmarshalErrorResponse(t, rr)
	assert.Equal(t, expectedCode, got.Error, "unexpected error code")
	assert.Equal(t, expectedDescription, got.ErrorDescription, "unexpected error description")
}

// AssertJSONContains checks one top-level key of a JSON object body.
func AssertJSONContains(t *testing.T, rr *httptest.ResponseRecorder, key string, expectedValue any) {
	t.Helper()
	result := *UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, expectedValue, result[key], "unexpected value for key %q", key)
}

// AssertPDF checks for a 200 application/pdf response and returns the
// document bytes.
func AssertPDF(t *testing.T, rr *httptest.ResponseRecorder) []byte {
	t.Helper()
	AssertStatusOK(t, rr)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	body := rr.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte("%PDF-")), "body is not a PDF")
	return body
}
