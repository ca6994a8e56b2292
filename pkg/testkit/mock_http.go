// Package testkit holds helpers shared by the package tests: a stubbing
// RoundTripper for outgoing HTTP and JSON assertions.
package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// ─── MockTransport ────────────────────────────────────────────────────────────

// Stub is one canned response. Method may be empty to match any method;
// URL is matched as a prefix.
type Stub struct {
	Method string
	URL    string
	Status int
	Body   string
	Err    error
}

// Call is a recorded outgoing request.
type Call struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Form parses a form-encoded request body.
func (c Call) Form() url.Values {
	v, _ := url.ParseQuery(string(c.Body))
	return v
}

// MockTransport implements http.RoundTripper. Install it on the shared
// client before the test:
//
//	mt := testkit.NewMockTransport(testkit.Stub{URL: "https://api.stripe.com/v1/charges", Body: `{...}`})
//	http.DefaultClient.Transport = mt
//	defer http.ResetTransport()
//	...
//	mt.AssertAllCalled(t)
type MockTransport struct {
	mu     sync.Mutex
	stubs  []Stub
	counts []int
	calls  []Call
}

func NewMockTransport(stubs ...Stub) *MockTransport {
	return &MockTransport{stubs: stubs, counts: make([]int, len(stubs))}
}

// RoundTrip answers with the first matching stub. Unmatched requests fail,
// so a test can never reach the network.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.calls = append(mt.calls, Call{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
	})

	for i, s := range mt.stubs {
		if s.Method != "" && !strings.EqualFold(s.Method, req.Method) {
			continue
		}
		if !strings.HasPrefix(req.URL.String(), s.URL) {
			continue
		}
		mt.counts[i]++
		if s.Err != nil {
			return nil, s.Err
		}
		return buildResponse(req, s), nil
	}

	return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call to %s %s", req.Method, req.URL)
}

// Calls returns the recorded requests in order.
func (mt *MockTransport) Calls() []Call {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	out := make([]Call, len(mt.calls))
	copy(out, mt.calls)
	return out
}

// AssertAllCalled fails t for every stub that was never used.
func (mt *MockTransport) AssertAllCalled(t testing.TB) {
	t.Helper()
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for i, s := range mt.stubs {
		if mt.counts[i] == 0 {
			t.Errorf("testkit: stub %s %q was never called", s.Method, s.URL)
		}
	}
}

func buildResponse(req *http.Request, s Stub) *http.Response {
	code := s.Status
	if code == 0 {
		code = http.StatusOK
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(s.Body))),
		Request:    req,
	}
}
