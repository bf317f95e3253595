package openai_provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/quanda-ai/quanda/provider"
)

func sseChunk(content string) string {
	payload, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{{"delta": map[string]string{"content": content}}},
	})
	return "data: " + string(payload) + "\n\n"
}

func newTestClient(url string) provider.Provider {
	return NewClient("test-key", url, "gpt-4.1", 0.7, 256, 5*time.Second)
}

func TestStreamDeliversDeltasInOrder(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("unmarshal request: %v", err)
		}
		if !req.Stream {
			t.Errorf("expected stream=true in request")
		}
		if req.Model != "gpt-4.1" {
			t.Errorf("model = %q, want gpt-4.1", req.Model)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseChunk("Hel"))
		fmt.Fprint(w, sseChunk(""))
		fmt.Fprint(w, sseChunk("lo"))
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer ts.Close()

	var got []string
	err := newTestClient(ts.URL).Stream(context.Background(), []provider.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	}, func(delta string) error {
		got = append(got, delta)
		return nil
	})
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	// empty increments are passed through as received; skipping is the caller's job
	want := []string{"Hel", "", "lo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas = %v, want %v", got, want)
	}
}

func TestStreamIgnoresNonDataLines(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ": keep-alive comment\n\n")
		fmt.Fprint(w, "event: something\n")
		fmt.Fprint(w, sseChunk("ok"))
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer ts.Close()

	var got []string
	err := newTestClient(ts.URL).Stream(context.Background(), nil, func(delta string) error {
		got = append(got, delta)
		return nil
	})
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"ok"}) {
		t.Fatalf("deltas = %v, want [ok]", got)
	}
}

func TestStreamReturnsAPIError(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).Stream(context.Background(), nil, func(string) error { return nil })
	if err == nil {
		t.Fatalf("expected an error for a non-200 response")
	}
}

func TestStreamStopsOnCallbackError(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sseChunk("one"))
		fmt.Fprint(w, sseChunk("two"))
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer ts.Close()

	stop := errors.New("stop")
	var got []string
	err := newTestClient(ts.URL).Stream(context.Background(), nil, func(delta string) error {
		got = append(got, delta)
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Stream() error = %v, want the callback error", err)
	}
	if !reflect.DeepEqual(got, []string{"one"}) {
		t.Fatalf("deltas = %v, want delivery to stop after the first", got)
	}
}

func TestStreamHonoursCancelledContext(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sseChunk("never"))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := newTestClient(ts.URL).Stream(ctx, nil, func(string) error { return nil })
	if err == nil {
		t.Fatalf("expected an error for a cancelled context")
	}
}
