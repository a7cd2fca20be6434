package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDGeneratesULID(t *testing.T) {
	var got string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(got) != 26 {
		t.Fatalf("expected 26-char ULID, got %q", got)
	}
	if rec.Header().Get(RequestIDHeader) != got {
		t.Fatalf("expected response header to carry request id")
	}
}

func TestRequestIDHonorsClientHeader(t *testing.T) {
	var got string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-chosen")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "client-chosen" {
		t.Fatalf("expected client id to be kept, got %q", got)
	}
}
