// Package testutil provides test helpers shared across packages: a stub
// chat-completion server and claim fixtures.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// Response is one canned reply from ChatServer.
type Response struct {
	Body   string
	Status int
	Delay  time.Duration
}

// RecordedRequest captures what the client sent.
type RecordedRequest struct {
	Header http.Header
	Body   ChatRequest
	Path   string
	Method string
}

// ChatRequest mirrors the JSON body of a chat-completion request.
type ChatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// ChatServer is an httptest server speaking the chat-completion protocol.
// Replies are served in order; the last one repeats once the list runs out.
type ChatServer struct {
	*httptest.Server
	responses []Response
	requests  []RecordedRequest
	mu        sync.Mutex
}

// NewChatServer starts a server that is closed when the test ends.
func NewChatServer(t *testing.T, responses ...Response) *ChatServer {
	t.Helper()
	if len(responses) == 0 {
		responses = []Response{OK(`{}`)}
	}

	s := &ChatServer{responses: responses}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *ChatServer) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body ChatRequest
	_ = json.Unmarshal(raw, &body)

	s.mu.Lock()
	idx := len(s.requests)
	s.requests = append(s.requests, RecordedRequest{
		Header: r.Header.Clone(),
		Body:   body,
		Path:   r.URL.Path,
		Method: r.Method,
	})
	resp := s.responses[len(s.responses)-1]
	if idx < len(s.responses) {
		resp = s.responses[idx]
	}
	s.mu.Unlock()

	if resp.Delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(resp.Delay):
		}
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, resp.Body)
}

// Requests returns a copy of the requests received so far.
func (s *ChatServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls returns the number of requests received so far.
func (s *ChatServer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// BaseURL is the value to use for LLMConfig.BaseURL.
func (s *ChatServer) BaseURL() string {
	return s.URL + "/v1"
}

// OK is a 200 reply whose first choice carries content.
func OK(content string) Response {
	return Response{Status: http.StatusOK, Body: CompletionBody(content)}
}

// Fail is a reply with the given status and a JSON error body.
func Fail(status int) Response {
	return Response{Status: status, Body: `{"error":{"message":"upstream failure"}}`}
}

// CompletionBody renders a chat-completion response body with content as the
// first choice's message.
func CompletionBody(content string) string {
	body := map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5},
	}
	data, _ := json.Marshal(body)
	return string(data)
}
