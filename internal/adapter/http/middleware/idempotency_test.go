package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubIdempotencyStore struct {
	seen     bool
	recorded []byte
	updated  []byte
	deleted  string
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	return s.seen, s.recorded, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.updated = response
	return nil
}

func (s *stubIdempotencyStore) Delete(ctx context.Context, key string) error {
	s.deleted = key
	return nil
}

// memoryIdempotencyStore mimics the claim semantics of the redis store so
// multi-request sequences can be tested without a server.
type memoryIdempotencyStore struct {
	claimed  map[string]bool
	recorded map[string][]byte
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{
		claimed:  make(map[string]bool),
		recorded: make(map[string][]byte),
	}
}

func (s *memoryIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if s.claimed[key] {
		return true, s.recorded[key], nil
	}

	s.claimed[key] = true
	return false, nil, nil
}

func (s *memoryIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.recorded[key] = response
	return nil
}

func (s *memoryIdempotencyStore) Delete(ctx context.Context, key string) error {
	delete(s.claimed, key)
	delete(s.recorded, key)
	return nil
}

func TestIdempotencyMiddleware_PassesThroughNewKey(t *testing.T) {
	store := &stubIdempotencyStore{}
	mw := NewIdempotencyMiddleware(store, time.Minute)

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"txn-1"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if string(store.updated) != `{"id":"txn-1"}` {
		t.Fatalf("expected response to be recorded, got %q", store.updated)
	}
}

func TestIdempotencyMiddleware_ReplaysRecordedResponse(t *testing.T) {
	store := &stubIdempotencyStore{seen: true, recorded: []byte(`{"id":"txn-1"}`)}
	mw := NewIdempotencyMiddleware(store, time.Minute)

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run for a replayed key")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header")
	}
	if rec.Body.String() != `{"id":"txn-1"}` {
		t.Fatalf("expected recorded body, got %q", rec.Body.String())
	}
}

func TestIdempotencyMiddleware_ConflictWhileInFlight(t *testing.T) {
	store := &stubIdempotencyStore{seen: true, recorded: nil}
	mw := NewIdempotencyMiddleware(store, time.Minute)

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run while the first request is in flight")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestIdempotencyMiddleware_SkipsReadsAndMissingKey(t *testing.T) {
	store := &stubIdempotencyStore{seen: true, recorded: []byte("cached")}
	mw := NewIdempotencyMiddleware(store, time.Minute)

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/abc", nil)
	getReq.Header.Set(IdempotencyKeyHeader, "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), getReq)

	postReq := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	handler.ServeHTTP(httptest.NewRecorder(), postReq)

	if calls != 2 {
		t.Fatalf("expected handler to run twice, got %d", calls)
	}
}

func TestIdempotencyMiddleware_ReleasesKeyOnFailure(t *testing.T) {
	store := &stubIdempotencyStore{}
	mw := NewIdempotencyMiddleware(store, time.Minute)

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"insufficient_funds"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if store.updated != nil {
		t.Fatalf("failed response must not be recorded, got %q", store.updated)
	}
	if store.deleted != "key-1" {
		t.Fatalf("expected key to be released, got %q", store.deleted)
	}
}

func TestIdempotencyMiddleware_RetryAfterFailureReachesHandler(t *testing.T) {
	store := newMemoryIdempotencyStore()
	mw := NewIdempotencyMiddleware(store, time.Minute)

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"insufficient_funds"}`))
			return
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"txn-1"}`))
	}))

	newRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		return req
	}

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, newRequest())
	if first.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, newRequest())

	if calls != 2 {
		t.Fatalf("expected retry to reach the handler, got %d calls", calls)
	}
	if second.Code != http.StatusCreated {
		t.Fatalf("expected 201 on retry, got %d", second.Code)
	}

	third := httptest.NewRecorder()
	handler.ServeHTTP(third, newRequest())
	if calls != 2 {
		t.Fatalf("successful response must replay without a handler call, got %d calls", calls)
	}
	if third.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header after success")
	}
}
