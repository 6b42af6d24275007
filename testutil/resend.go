package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
)

// Message is an email received by the fake Resend API.
type Message struct {
	Authorization string   `json:"-"`
	From          string   `json:"from"`
	To            []string `json:"to"`
	Subject       string   `json:"subject"`
	HTML          string   `json:"html"`
	Text          string   `json:"text"`
}

// Resend is an in-process stand-in for the Resend API. It accepts
// POST /emails and GET /domains.
type Resend struct {
	// APIKey, when set, makes requests with any other bearer token fail
	// with 401.
	APIKey string

	mu       sync.Mutex
	srv      *httptest.Server
	messages []Message
	failures []int
	ids      int
}

// NewResend returns a stopped fake.
func NewResend() *Resend { return &Resend{} }

// Name implements TestComponent.
func (r *Resend) Name() string { return "resend" }

// Start serves the fake on a local port.
func (r *Resend) Start(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.srv != nil {
		return fmt.Errorf("resend fake already started")
	}
	r.srv = httptest.NewServer(http.HandlerFunc(r.serve))
	return nil
}

// Stop shuts the server down.
func (r *Resend) Stop(context.Context) error {
	r.mu.Lock()
	srv := r.srv
	r.srv = nil
	r.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

// Reset forgets received messages and queued failures.
func (r *Resend) Reset(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages, r.failures, r.ids = nil, nil, 0
	return nil
}

// Snapshot returns the received messages.
func (r *Resend) Snapshot(context.Context) (any, error) {
	return r.Messages(), nil
}

// Restore replaces the received messages.
func (r *Resend) Restore(_ context.Context, snapshot any) error {
	msgs, ok := snapshot.([]Message)
	if !ok {
		return fmt.Errorf("resend fake: snapshot is %T, want []Message", snapshot)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = slices.Clone(msgs)
	return nil
}

// URL is the base URL of the running fake.
func (r *Resend) URL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.srv == nil {
		return ""
	}
	return r.srv.URL
}

// Messages returns the accepted messages in arrival order.
func (r *Resend) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.messages)
}

// FailNext makes the next n send requests fail with status.
func (r *Resend) FailNext(status, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for range n {
		r.failures = append(r.failures, status)
	}
}

type apiError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (r *Resend) serve(w http.ResponseWriter, req *http.Request) {
	auth := req.Header.Get("Authorization")
	if r.APIKey != "" && auth != "Bearer "+r.APIKey {
		reply(w, http.StatusUnauthorized, apiError{401, "missing_api_key", "API key is invalid"})
		return
	}
	switch {
	case req.Method == http.MethodGet && req.URL.Path == "/domains":
		reply(w, http.StatusOK, map[string]any{"data": []any{}})
	case req.Method == http.MethodPost && req.URL.Path == "/emails":
		r.send(w, req, auth)
	default:
		reply(w, http.StatusNotFound, apiError{404, "not_found", "no route " + req.URL.Path})
	}
}

func (r *Resend) send(w http.ResponseWriter, req *http.Request, auth string) {
	var m Message
	if err := json.NewDecoder(req.Body).Decode(&m); err != nil {
		reply(w, http.StatusBadRequest, apiError{400, "invalid_body", err.Error()})
		return
	}
	m.Authorization = strings.TrimPrefix(auth, "Bearer ")

	r.mu.Lock()
	if len(r.failures) > 0 {
		status := r.failures[0]
		r.failures = r.failures[1:]
		r.mu.Unlock()
		reply(w, status, apiError{status, "application_error", "injected failure"})
		return
	}
	r.messages = append(r.messages, m)
	r.ids++
	id := fmt.Sprintf("msg-%d", r.ids)
	r.mu.Unlock()
	reply(w, http.StatusOK, map[string]string{"id": id})
}
