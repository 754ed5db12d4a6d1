package dummyjson_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"catalog_query/internal/adapters/dummyjson"
	"catalog_query/internal/domain"
)

func newClient(t *testing.T, url string) *dummyjson.Client {
	t.Helper()
	cl, err := dummyjson.New(url, 100, time.Second) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl
}

func TestNew_RequiresBase(t *testing.T) {
	if _, err := dummyjson.New("  ", 5, time.Second); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}

func TestClient_ListProducts_DecodesOptionalFields(t *testing.T) {
	var path atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"id":1,"title":"Mascara","price":9.99,"weight":4,"rating":4.5,"tags":["beauty","mascara"],"brand":"Essence"},
			{"id":2,"price":5,"weight":null,"rating":null}
		],"total":2}`))
	}))
	defer ts.Close()

	got, err := newClient(t, ts.URL+"/").ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p := path.Load(); p != "/products" {
		t.Fatalf("unexpected path: %v", p)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	first := got[0]
	if first.ID != 1 || first.Price != 9.99 || first.Weight == nil || *first.Weight != 4 ||
		first.Rating == nil || *first.Rating != 4.5 || !first.HasTag("beauty") ||
		first.Title == nil || *first.Title != "Mascara" {
		t.Fatalf("unexpected first product: %+v", first)
	}
	second := got[1]
	if second.Weight != nil || second.Rating != nil || second.Tags != nil || second.Title != nil {
		t.Fatalf("expected nil optional fields, got %+v", second)
	}

	// untyped upstream fields survive a round trip
	var raw map[string]any
	b, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["brand"] != "Essence" {
		t.Fatalf("expected brand to be preserved, got %+v", raw)
	}
}

func TestClient_ListProducts_MissingProductsIsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	got, err := newClient(t, ts.URL).ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestClient_GetProduct_PathAndReviews(t *testing.T) {
	var path atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7,"price":1.5,"reviews":[
			{"reviewerEmail":"a@example.com","rating":5},
			{"email":"b@example.com"},
			{"email":null}
		]}`))
	}))
	defer ts.Close()

	got, err := newClient(t, ts.URL).GetProduct(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p := path.Load(); p != "/products/7" {
		t.Fatalf("unexpected path: %v", p)
	}
	if got.ID != 7 || len(got.Reviews) != 3 {
		t.Fatalf("unexpected detail: %+v", got)
	}
	if got.Reviews[0].ReviewerEmail == nil || *got.Reviews[0].ReviewerEmail != "a@example.com" {
		t.Fatalf("unexpected first review: %+v", got.Reviews[0])
	}
	if got.Reviews[1].ReviewerEmail != nil || got.Reviews[1].Email == nil {
		t.Fatalf("unexpected second review: %+v", got.Reviews[1])
	}
	if got.Reviews[2].Email != nil {
		t.Fatalf("expected null email to decode as nil: %+v", got.Reviews[2])
	}
}

func TestClient_GetProduct_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := newClient(t, ts.URL).GetProduct(context.Background(), 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_ServerError_NoRetry(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down for maintenance\n"))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).ListProducts(context.Background())
	var se *domain.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusServiceUnavailable || se.Body != "down for maintenance" {
		t.Fatalf("unexpected status error: %+v", se)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected exactly 1 call, got %d", n)
	}
}

func TestClient_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products": [`))
	}))
	defer ts.Close()

	if _, err := newClient(t, ts.URL).ListProducts(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClient_CanceledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[]}`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newClient(t, ts.URL).ListProducts(ctx); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}
