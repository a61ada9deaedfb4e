package generator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateParsesInferenceResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text": " The water down there is a chilly 3.5°C. "}]`))
	}))
	defer srv.Close()

	gen := NewHuggingFace(srv.Client(), "test-key", "")
	gen.baseURL = srv.URL

	text, err := gen.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "The water down there is a chilly 3.5°C." {
		t.Errorf("unexpected text %q", text)
	}
}

func TestGenerateEmptyPayloadIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	gen := NewHuggingFace(srv.Client(), "test-key", "")
	gen.baseURL = srv.URL

	if _, err := gen.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected an error for an empty payload")
	}
}

func TestGenerateWithoutKeyIsError(t *testing.T) {
	gen := NewHuggingFace(http.DefaultClient, "", "")
	if _, err := gen.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected an error when no key is configured")
	}
}

func TestGenerateBadStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gen := NewHuggingFace(srv.Client(), "test-key", "")
	gen.baseURL = srv.URL
	gen.httpCfg.Backoff.MaxRetries = 0

	if _, err := gen.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected an error for a 5xx response")
	}
}
