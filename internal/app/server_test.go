package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Addr:        "127.0.0.1:0",
		DBPath:      filepath.Join(t.TempDir(), "taskboard.db"),
		TokenSecret: []byte("app-test-secret"),
	}
}

func TestNewRequiresSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.TokenSecret = nil
	if _, err := New(cfg); err == nil {
		t.Fatal("expected missing secret error")
	}
}

func TestServeHandlesRequestsAndShutsDown(t *testing.T) {
	server, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	addr := server.Addr()
	if addr == "" {
		t.Fatal("expected listener address")
	}

	ctx, cancel := context.WithCancel(context.Background())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ctx)
	}()

	payload, err := json.Marshal(map[string]string{"email": "a@x.com", "password": "pw123"})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	url := fmt.Sprintf("http://%s/api/auth/register", addr)

	var resp *http.Response
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err = http.Post(url, "application/json", bytes.NewReader(payload))
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	var body struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if body.Token == "" || body.UserID == "" {
		t.Fatal("expected token and userId in response")
	}

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error on shutdown: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server failed to shut down")
	}
}

func TestOpenStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "taskboard.db")
	store, err := openStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
}
