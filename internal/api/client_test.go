package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/patchstorage/patchbot/internal/api"
)

func TestBasePublicURL_EmptyWhenNoURL(t *testing.T) {
	// Client with nil baseURL (e.g. zero value) returns empty string
	c := &api.Client{}
	if got := c.BasePublicURL(); got != "" {
		t.Errorf("BasePublicURL() = %q, want empty", got)
	}
}

func TestNewClientURLNormalization(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBase string
	}{
		{
			name:     "adds https scheme",
			input:    "patchstorage.com/api/beta",
			wantBase: "https://patchstorage.com/api/beta",
		},
		{
			name:     "preserves https",
			input:    "https://patchstorage.com/api/beta",
			wantBase: "https://patchstorage.com/api/beta",
		},
		{
			name:     "preserves http",
			input:    "http://localhost:8080/api/beta",
			wantBase: "http://localhost:8080/api/beta",
		},
		{
			name:     "strips trailing slash",
			input:    "https://patchstorage.com/api/beta/",
			wantBase: "https://patchstorage.com/api/beta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := api.NewClient(tt.input)
			got := client.BasePublicURL()
			if got != tt.wantBase {
				t.Errorf("BasePublicURL() = %q, want %q", got, tt.wantBase)
			}
		})
	}
}

func TestClientSetAndGetToken(t *testing.T) {
	client := api.NewClient("https://patchstorage.com/api/beta")

	if got := client.Token(); got != "" {
		t.Errorf("Token() on new client = %q, want empty", got)
	}

	client.SetToken("test-token-123")

	if got := client.Token(); got != "test-token-123" {
		t.Errorf("Token() after SetToken = %q, want %q", got, "test-token-123")
	}
}

func TestClientDoWithPayload(t *testing.T) {
	var capturedRequest struct {
		method      string
		path        string
		contentType string
		body        []byte
		authHeader  string
		userAgent   string
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedRequest.method = r.Method
		capturedRequest.path = r.URL.Path
		capturedRequest.contentType = r.Header.Get("Content-Type")
		capturedRequest.authHeader = r.Header.Get("Authorization")
		capturedRequest.userAgent = r.Header.Get("User-Agent")
		capturedRequest.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, api.WithUserAgent("patchbot-test/1.0"))
	client.SetToken("bearer-test-token")

	var resp struct {
		Status string `json:"status"`
	}

	payload := map[string]string{"key": "value"}
	_, err := client.Do(context.Background(), "POST", "/test-endpoint", payload, &resp)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if capturedRequest.method != "POST" {
		t.Errorf("Method = %q, want POST", capturedRequest.method)
	}
	if !strings.HasSuffix(capturedRequest.path, "/test-endpoint") {
		t.Errorf("Path = %q, want suffix /test-endpoint", capturedRequest.path)
	}
	if capturedRequest.contentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", capturedRequest.contentType)
	}
	if capturedRequest.authHeader != "Bearer bearer-test-token" {
		t.Errorf("Authorization = %q, want Bearer bearer-test-token", capturedRequest.authHeader)
	}
	if capturedRequest.userAgent != "patchbot-test/1.0" {
		t.Errorf("User-Agent = %q", capturedRequest.userAgent)
	}
	if resp.Status != "ok" {
		t.Errorf("Response status = %q, want ok", resp.Status)
	}
}

func TestClientDoAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "unauthorized",
			"message": "Invalid or expired token",
			"code":    "AUTH_INVALID_TOKEN",
		})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)

	var resp map[string]interface{}
	_, err := client.Do(context.Background(), "GET", "/protected", nil, &resp)
	if err == nil {
		t.Fatal("Expected error for 401 response")
	}

	if !strings.Contains(err.Error(), "AUTH_INVALID_TOKEN") {
		t.Errorf("Error should contain error code, got: %v", err)
	}

	var apiErr *api.APIError
	if !asAPIError(err, &apiErr) {
		t.Fatalf("error type = %T, want *api.APIError", err)
	}
	if !apiErr.IsAuth() {
		t.Error("IsAuth() = false for 401")
	}
}

func asAPIError(err error, target **api.APIError) bool {
	e, ok := err.(*api.APIError)
	if ok {
		*target = e
	}
	return ok
}

func TestDo_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	client := api.NewClient(srv.URL)
	_, err := client.Do(ctx, "GET", "/", nil, nil)
	if err == nil {
		t.Fatal("expected error when context cancelled")
	}
	if !strings.Contains(err.Error(), "cancelled") && !strings.Contains(err.Error(), "context") {
		t.Errorf("error = %v", err)
	}
}

func TestClientDoContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, api.WithTimeout(100*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Do(ctx, "GET", "/slow", nil, nil)
	if err == nil {
		t.Fatal("Expected timeout error")
	}
}

func TestClientMethodNormalization(t *testing.T) {
	var capturedMethod string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)

	tests := []struct {
		input string
		want  string
	}{
		{"get", "GET"},
		{"post", "POST"},
		{"Put", "PUT"},
		{"DELETE", "DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := client.Do(context.Background(), tt.input, "/test", nil, nil)
			if err != nil {
				t.Fatalf("Do failed: %v", err)
			}
			if capturedMethod != tt.want {
				t.Errorf("Method = %q, want %q", capturedMethod, tt.want)
			}
		})
	}
}

func TestClientQueryStringHandling(t *testing.T) {
	var capturedQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)

	_, err := client.Do(context.Background(), "GET", "/patches?platforms[]=8046&limit=10", nil, nil)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if capturedQuery != "platforms[]=8046&limit=10" {
		t.Errorf("Query = %q", capturedQuery)
	}
}

func TestClientDoDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	var out struct{ X int }
	_, err := client.Do(context.Background(), "GET", "/", nil, &out)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error = %v", err)
	}
}

func TestClientDoSuccessWithNilV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ignored": true}`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	resp, err := client.Do(context.Background(), "GET", "/test", nil, nil)
	if err != nil {
		t.Fatalf("Do with v=nil err = %v", err)
	}
	if resp == nil {
		t.Fatal("resp should be non-nil")
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
}

func TestClientNewRequestEncodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	// Payload that cannot be JSON-encoded (e.g. channel type)
	ch := make(chan int)
	_, err := client.Do(context.Background(), "POST", "/test", ch, nil)
	if err == nil {
		t.Fatal("expected encode error")
	}
}

func TestClientWithHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: 5 * time.Second}
	client := api.NewClient("https://patchstorage.com/api/beta", api.WithHTTPClient(hc))
	if client == nil {
		t.Fatal("NewClient returned nil")
	}
}

func TestClientWithInsecureSkipVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, api.WithInsecureSkipVerify(true))
	if _, err := client.Do(context.Background(), "GET", "/", nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestClientWithDebug(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))
	defer srv.Close()
	client := api.NewClient(srv.URL, api.WithDebug(true))
	_, _ = client.Do(context.Background(), "GET", "/", nil, nil)
}
