package notifications

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scribe/internal/config"
)

func newConfig(topic string) *config.Config {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = topic
	cfg.Notifications.RequestTimeout = 2
	return &cfg
}

func TestNewServiceReturnsNoopWithoutTopic(t *testing.T) {
	service := NewService(newConfig(""))
	if _, ok := service.(noopService); !ok {
		t.Fatalf("expected noop service, got %T", service)
	}
	if err := service.TestNotification(context.Background()); err != nil {
		t.Errorf("noop should never fail: %v", err)
	}
}

func TestNotifyRunCompletedSendsHeadersAndBody(t *testing.T) {
	var gotTitle, gotTags, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("X-Title")
		gotTags = r.Header.Get("X-Tags")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	service := NewService(newConfig(server.URL))
	err := service.NotifyRunCompleted(context.Background(), "vid123", "/out/vid123.txt", 90*time.Second)
	if err != nil {
		t.Fatalf("NotifyRunCompleted: %v", err)
	}
	if gotTitle != "Scribe - Transcript Ready" {
		t.Errorf("title = %q", gotTitle)
	}
	if gotTags != "scribe,run,completed" {
		t.Errorf("tags = %q", gotTags)
	}
	if gotBody == "" || gotBody[:11] != "Transcribed" {
		t.Errorf("body = %q", gotBody)
	}
}

func TestNotifyRunFailedSetsPriority(t *testing.T) {
	var gotPriority string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPriority = r.Header.Get("X-Priority")
	}))
	defer server.Close()

	service := NewService(newConfig(server.URL))
	if err := service.NotifyRunFailed(context.Background(), "bad.m4a", errors.New("boom")); err != nil {
		t.Fatalf("NotifyRunFailed: %v", err)
	}
	if gotPriority != "high" {
		t.Errorf("priority = %q", gotPriority)
	}
}

func TestSendReportsRejectedNotification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	service := NewService(newConfig(server.URL))
	if err := service.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for rejected notification")
	}
}
