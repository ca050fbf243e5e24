package redis

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClientSelectsDatabaseFromURL(t *testing.T) {
	s := miniredis.RunT(t)

	ctx := context.Background()
	client, err := NewClient(ctx, fmt.Sprintf("redis://%s/3", s.Addr()))
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	if err := client.Set(ctx, "fxledger:cache:fxrate:gen:USD:PKR", "01HRATE", time.Minute).Err(); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := s.DB(3).Get("fxledger:cache:fxrate:gen:USD:PKR")
	if err != nil || got != "01HRATE" {
		t.Fatalf("expected key in db 3, got %q (%v)", got, err)
	}
	if s.DB(0).Exists("fxledger:cache:fxrate:gen:USD:PKR") {
		t.Fatalf("key must not land in db 0")
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	for _, url := range []string{"", "://bad-url", "http://localhost:6379"} {
		if _, err := NewClient(context.Background(), url); err == nil {
			t.Fatalf("expected error for URL %q", url)
		}
	}
}

func TestNewClientPingFailureNamesServer(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	_, err := NewClient(context.Background(), fmt.Sprintf("redis://%s/1", addr))
	if err == nil {
		t.Fatalf("expected ping error when server is down")
	}
	if !strings.Contains(err.Error(), addr) || !strings.Contains(err.Error(), "db 1") {
		t.Fatalf("error should name the server, got %v", err)
	}
}
