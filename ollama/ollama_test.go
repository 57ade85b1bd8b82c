package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/a-h/jsonapi"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("the prompt is sent as a non-streaming generate request", func(t *testing.T) {
		var actual GenerateRequest
		var contentType string
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/api/generate" {
				t.Errorf("expected /api/generate, got %s", r.URL.Path)
			}
			contentType = r.Header.Get("Content-Type")
			if err := json.NewDecoder(r.Body).Decode(&actual); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			_, _ = io.WriteString(w, `{"model":"phi","response":"  Hello there!\n","done":true}`)
		}))
		defer s.Close()

		c := New(s.URL+"/api/generate", DefaultModel, DefaultTimeout)
		reply, err := c.Generate(ctx, "API Documentation:\nC\n\nUser: hello\nAI:")
		require.NoError(t, err)
		require.Equal(t, "Hello there!", reply)
		require.Equal(t, "application/json", contentType)

		expected := GenerateRequest{
			Model:  "phi",
			Prompt: "API Documentation:\nC\n\nUser: hello\nAI:",
			Stream: false,
		}
		if diff := cmp.Diff(expected, actual); diff != "" {
			t.Error(diff)
		}
	})
	t.Run("the stream flag is always present in the body", func(t *testing.T) {
		var raw map[string]any
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&raw)
			_, _ = io.WriteString(w, `{"response":"ok"}`)
		}))
		defer s.Close()

		_, err := New(s.URL, "mistral", DefaultTimeout).Generate(ctx, "p")
		require.NoError(t, err)
		if diff := cmp.Diff(map[string]any{"model": "mistral", "prompt": "p", "stream": false}, raw); diff != "" {
			t.Error(diff)
		}
	})
	t.Run("a missing response field is an empty reply", func(t *testing.T) {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"done":true}`)
		}))
		defer s.Close()

		reply, err := New(s.URL, DefaultModel, DefaultTimeout).Generate(ctx, "p")
		require.NoError(t, err)
		require.Equal(t, "", reply)
	})
	t.Run("non-success status codes are a status error", func(t *testing.T) {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"model 'phi' not found"}`, http.StatusNotFound)
		}))
		defer s.Close()

		_, err := New(s.URL, DefaultModel, DefaultTimeout).Generate(ctx, "p")
		var oe *Error
		require.ErrorAs(t, err, &oe)
		require.Equal(t, ReasonStatus, oe.Reason)

		var ise jsonapi.InvalidStatusError
		require.True(t, errors.As(err, &ise))
		require.Equal(t, http.StatusNotFound, ise.Status)
	})
	t.Run("malformed bodies are a decode error", func(t *testing.T) {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"response": "unterminated`)
		}))
		defer s.Close()

		_, err := New(s.URL, DefaultModel, DefaultTimeout).Generate(ctx, "p")
		var oe *Error
		require.ErrorAs(t, err, &oe)
		require.Equal(t, ReasonDecode, oe.Reason)
	})
	t.Run("unreachable servers are a request error", func(t *testing.T) {
		s := httptest.NewServer(http.NotFoundHandler())
		url := s.URL
		s.Close()

		_, err := New(url, DefaultModel, DefaultTimeout).Generate(ctx, "p")
		var oe *Error
		require.ErrorAs(t, err, &oe)
		require.Equal(t, ReasonRequest, oe.Reason)
		require.NotEmpty(t, err.Error())
	})
	t.Run("slow servers are a timeout error", func(t *testing.T) {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		defer s.Close()

		start := time.Now()
		_, err := New(s.URL, DefaultModel, 50*time.Millisecond).Generate(ctx, "p")
		require.Less(t, time.Since(start), 5*time.Second)
		var oe *Error
		require.ErrorAs(t, err, &oe)
		require.Equal(t, ReasonTimeout, oe.Reason)
	})
}
