package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testNotifier(serverURL string) *TelegramNotifier {
	tn := NewTelegramNotifier("token123", "chat456", "")
	tn.apiBase = serverURL
	return tn
}

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotReq sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := testNotifier(srv.URL)
	if err := tn.Send("<b>hello</b>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/bottoken123/sendMessage" {
		t.Errorf("wrong method path: %s", gotPath)
	}
	if gotReq.ChatID != "chat456" || gotReq.Text != "<b>hello</b>" || gotReq.ParseMode != "HTML" {
		t.Errorf("wrong request payload: %+v", gotReq)
	}
}

func TestTelegramSend_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	err := testNotifier(srv.URL).Send("hi")
	if err == nil {
		t.Fatal("expected error on 400 response")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("error should carry status and body, got: %v", err)
	}
}

func TestSendWithRetry_StopsOnCancel(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testNotifier(srv.URL).SendWithRetry(ctx, "hi", 3)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single attempt before the cancelled backoff, got %d", calls)
	}
}
