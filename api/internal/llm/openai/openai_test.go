package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestComplete(t *testing.T) {
	var (
		got     chatRequest
		gotPath string
		gotAuth string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","model":"mixtral-8x7b-32768",`+
			`"choices":[{"index":0,"message":{"role":"assistant","content":"a\n\nb\n\nc"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	e := New("groq", "gsk_test", "mixtral-8x7b-32768", srv.URL+"/openai/v1/", 5*time.Second)
	assert.Equal(t, "groq", e.Name())
	assert.Equal(t, "mixtral-8x7b-32768", e.GetModel())

	reply, err := e.Complete(context.Background(), "You are a helpful assistant.", "fix my essay")
	require.NoError(t, err)

	assert.Equal(t, "a\n\nb\n\nc", reply)
	assert.Equal(t, "/openai/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer gsk_test", gotAuth)
	assert.Equal(t, "mixtral-8x7b-32768", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "You are a helpful assistant.", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "fix my essay", got.Messages[1].Content)
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","choices":[]}`)
	}))
	defer srv.Close()

	e := New("openai", "k", "gpt-4o-mini", srv.URL, 0)
	_, err := e.Complete(context.Background(), "s", "u")
	assert.ErrorContains(t, err, "empty response")
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`)
	}))
	defer srv.Close()

	e := New("groq", "bad", "m", srv.URL, 0)
	_, err := e.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "groq completion 401")
}
