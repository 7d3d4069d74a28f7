package restconf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Request is one RESTCONF exchange as seen by a Transport. Path is relative
// to the transport's base URL.
type Request struct {
	Method  string
	Path    string
	Header  http.Header
	Body    []byte
	Timeout time.Duration
}

// Response is what a Transport returns.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the response media type.
func (r *Response) ContentType() string { return r.Header.Get("Content-Type") }

// Transport sends requests. The client never opens sockets itself.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) { return f(ctx, req) }

// StatusError reports a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("restconf: %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// HTTPTransport sends requests with net/http.
type HTTPTransport struct {
	BaseURL  string
	Client   *http.Client
	Username string
	Password string
}

// Do implements Transport.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	hr, err := http.NewRequestWithContext(ctx, req.Method, strings.TrimRight(t.BaseURL, "/")+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("restconf: build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	if t.Username != "" {
		hr.SetBasicAuth(t.Username, t.Password)
	}
	hc := t.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(hr)
	if err != nil {
		return nil, fmt.Errorf("restconf: %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("restconf: read body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}
