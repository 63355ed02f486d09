package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// MockReply is one scripted response of a MockTransport.
type MockReply struct {
	Status int
	Header http.Header
	Body   string
	Err    error
}

// MockRequest records a call received by a MockTransport.
type MockRequest struct {
	Method  string
	URL     string
	Params  map[string]string
	Headers map[string]string
}

// MockTransport is a scripted Transport for testing. Replies registered for
// a method and URL are served in order; the last one repeats.
type MockTransport struct {
	mu sync.Mutex

	routes map[string][]MockReply

	// Call tracking
	Requests []MockRequest
}

var _ Transport = (*MockTransport)(nil)

// NewMockTransport creates an empty MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{routes: make(map[string][]MockReply)}
}

func routeKey(method, url string) string {
	return method + " " + url
}

// On appends replies for method and url.
func (m *MockTransport) On(method, url string, replies ...MockReply) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := routeKey(method, url)
	m.routes[key] = append(m.routes[key], replies...)
	return m
}

// OnJSON registers a single 200 reply carrying body.
func (m *MockTransport) OnJSON(method, url, body string) *MockTransport {
	return m.On(method, url, MockReply{Status: http.StatusOK, Body: body})
}

// Calls counts the requests received for method and url.
func (m *MockTransport) Calls(method, url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.Requests {
		if r.Method == method && r.URL == url {
			n++
		}
	}
	return n
}

// Total counts every request received.
func (m *MockTransport) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

func (m *MockTransport) serve(method, url string, params, headers map[string]string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, MockRequest{
		Method:  method,
		URL:     url,
		Params:  copyMap(params),
		Headers: copyMap(headers),
	})

	key := routeKey(method, url)
	replies := m.routes[key]
	if len(replies) == 0 {
		return nil, fmt.Errorf("mock transport: no reply for %s", key)
	}
	reply := replies[0]
	if len(replies) > 1 {
		m.routes[key] = replies[1:]
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	header := reply.Header
	if header == nil {
		header = http.Header{}
	}
	return &Result{StatusCode: reply.Status, Header: header, Body: []byte(reply.Body)}, nil
}

// Get implements Transport.
func (m *MockTransport) Get(_ context.Context, url string, params, headers map[string]string) (*Result, error) {
	return m.serve(http.MethodGet, url, params, headers)
}

// PostForm implements Transport.
func (m *MockTransport) PostForm(_ context.Context, url string, form, headers map[string]string) (*Result, error) {
	return m.serve(http.MethodPost, url, form, headers)
}

func copyMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
