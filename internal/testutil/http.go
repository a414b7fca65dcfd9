package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"checklist-service/pkg/config"
	"checklist-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
)

// JWTSecret signs tokens minted by GenerateTestToken
const JWTSecret = "checklist-service-test-secret"

// TestJWTConfig returns the JWT settings shared by tests and test routers
func TestJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{SigningKey: JWTSecret, ExpirationHours: 1}
}

// GenerateTestToken creates a valid bearer token for the given email
func GenerateTestToken(t *testing.T, email string) string {
	t.Helper()
	token, err := jwtutil.NewJWTUtil(TestJWTConfig()).GenerateToken("test-user-001", email)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}

// NewRequest builds a JSON request. body may be nil, a raw string, or a value
// to marshal.
func NewRequest(method, path string, body interface{}) *http.Request {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// Serve runs req through the router and records the response
func Serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

// DoRequest executes an HTTP request against the test router
func DoRequest(e *echo.Echo, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	req := NewRequest(method, path, body)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return Serve(e, req)
}

// ParseResponse parses a JSON object response body
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// ParseList parses a JSON array response body
func ParseList(w *httptest.ResponseRecorder) []interface{} {
	var result []interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// StatusIs reports a readable failure when the recorder holds another status
func StatusIs(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d (%s), got %d: %s", want, http.StatusText(want), w.Code, w.Body.String())
	}
}
