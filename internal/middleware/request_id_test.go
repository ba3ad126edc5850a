package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func serveRequestID(req *http.Request) (requestID, traceID string, rec *httptest.ResponseRecorder) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = GetRequestID(r.Context())
		traceID = GetTraceID(r.Context())
	}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return requestID, traceID, rec
}

func TestRequestID_Generated(t *testing.T) {
	seen, _, rec := serveRequestID(httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected generated UUID, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("response header %q does not echo %q", rec.Header().Get(RequestIDHeader), seen)
	}
	if rec.Header().Get(TraceIDHeader) != "" {
		t.Error("trace id should not be set when the caller sent none")
	}
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	req.Header.Set(TraceIDHeader, "trace-1")

	requestID, traceID, rec := serveRequestID(req)

	if requestID != "abc" || traceID != "trace-1" {
		t.Errorf("got request_id=%q trace_id=%q", requestID, traceID)
	}
	if rec.Header().Get(TraceIDHeader) != "trace-1" {
		t.Error("trace id not echoed")
	}
}

func TestRequestID_AmznTraceFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AmznTraceIDHeader, "Root=1-67891233-abcdef012345678912345678")

	_, traceID, _ := serveRequestID(req)

	if traceID != "Root=1-67891233-abcdef012345678912345678" {
		t.Errorf("trace_id = %q", traceID)
	}
}

func TestRequestID_RejectsUnsafeIDs(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"contains space", "abc def"},
		{"contains newline", "abc\nforged=1"},
		{"too long", strings.Repeat("a", maxCorrelationIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.id)
			req.Header.Set(TraceIDHeader, tt.id)

			requestID, traceID, _ := serveRequestID(req)

			if requestID == tt.id {
				t.Error("unsafe request id was kept")
			}
			if _, err := uuid.Parse(requestID); err != nil {
				t.Errorf("expected replacement UUID, got %q", requestID)
			}
			if traceID != "" {
				t.Errorf("unsafe trace id was kept: %q", traceID)
			}
		})
	}
}
