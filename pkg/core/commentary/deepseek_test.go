package commentary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeepSeekGeneratorRoundTrip(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "test-key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		var req deepseekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %+v", req.Messages)
		}
		if req.Model != "deepseek-chat" {
			t.Errorf("model = %q", req.Model)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "## Executive Summary\nSteady year."}},
			},
		})
	}))
	defer srv.Close()

	g := &DeepSeekGenerator{URL: srv.URL}
	chunks, err := g.Stream(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	var text string
	for c := range chunks {
		if c.Err != nil {
			t.Fatalf("chunk error: %v", c.Err)
		}
		text += c.Text
	}
	if text != "## Executive Summary\nSteady year." {
		t.Fatalf("text = %q", text)
	}
}

func TestDeepSeekGeneratorRequiresKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	g := &DeepSeekGenerator{}
	if _, err := g.Stream(context.Background(), "s", "u"); err == nil {
		t.Fatal("missing key should error")
	}
}

func TestDeepSeekGeneratorSurfacesAPIErrors(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "test-key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := &DeepSeekGenerator{URL: srv.URL}
	chunks, err := g.Stream(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	c, ok := <-chunks
	if !ok || c.Err == nil {
		t.Fatal("expected an error chunk")
	}
}
