package collector

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCoinGeckoFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status":{"error_message":"rate limited"}}`))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "", "usd", "")
	_, err := f.FetchSnapshot("bitcoin")
	if err == nil {
		t.Fatal("expected error on 429 response")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fe.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", fe.Status)
	}
	if !strings.Contains(fe.Error(), "rate limited") {
		t.Errorf("error should carry the response body, got: %v", fe)
	}
}

func TestCoinGeckoFetcher_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices": [[17`))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "", "usd", "")
	_, err := f.FetchHistory("bitcoin", 90)
	if err == nil {
		t.Fatal("expected error on truncated body")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("parse faults must surface as *FetchError, got %T: %v", err, err)
	}
	if fe.Status != http.StatusOK {
		t.Errorf("expected status 200 on decode failure, got %d", fe.Status)
	}
}

func TestCoinGeckoFetcher_SendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-cg-demo-api-key")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "cg-demo-123", "usd", "")
	if _, err := f.FetchCoinPage(1, 250); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "cg-demo-123" {
		t.Errorf("expected API key header, got %q", gotKey)
	}
}
