package restconf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"go.uber.org/zap"

	yangwire "github.com/reoring/yangwire"
)

// DefaultTimeout bounds one request unless WithTimeout says otherwise.
const DefaultTimeout = 60 * time.Second

// DefaultBase is the RESTCONF root resource used by OpenDaylight.
const DefaultBase = "/rests"

// Result describes a read or an RPC call.
type Result struct {
	Found    bool
	LeafList bool
	// Issues lists fields dropped while encoding or decoding.
	Issues yangwire.Issues
}

// Client reads and writes typed values through a Transport.
type Client struct {
	mapper    *yangwire.Mapper
	paths     *PathBuilder
	codec     Codec
	transport Transport
	base      string
	header    http.Header
	timeout   time.Duration
	log       *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCodec sets the payload codec; the default is JSON.
func WithCodec(c Codec) Option { return func(cl *Client) { cl.codec = c } }

// WithBase sets the RESTCONF root resource.
func WithBase(base string) Option { return func(cl *Client) { cl.base = base } }

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option { return func(cl *Client) { cl.timeout = d } }

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(cl *Client) { cl.header.Add(key, value) }
}

// WithPathOptions configures the client's path builder.
func WithPathOptions(opts ...PathOption) Option {
	return func(cl *Client) { cl.paths = NewPathBuilder(cl.mapper, opts...) }
}

// WithLogger sets the logger; the default is yangwire.Logger().
func WithLogger(l *zap.Logger) Option { return func(cl *Client) { cl.log = l } }

// NewClient returns a client encoding with m and sending through t.
func NewClient(m *yangwire.Mapper, t Transport, opts ...Option) *Client {
	c := &Client{
		mapper:    m,
		transport: t,
		base:      DefaultBase,
		header:    http.Header{},
		timeout:   DefaultTimeout,
	}
	c.paths = NewPathBuilder(m)
	c.codec = JSON(m.Registry())
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = yangwire.Logger()
	}
	return c
}

// Paths returns the client's path builder.
func (c *Client) Paths() *PathBuilder { return c.paths }

// Read fetches id into out, a pointer to a registered struct. A 404 yields
// Found=false and no error.
func (c *Client) Read(ctx context.Context, id Identifier, nodeID string, out any) (Result, error) {
	rp, err := c.paths.Build(id, nodeID)
	if err != nil {
		return Result{}, err
	}
	if rp.LeafList {
		return Result{LeafList: true}, fmt.Errorf("restconf: %s addresses a leaf-list, use ReadLeaves", id)
	}
	if t := targetType(out); t != id.Target() {
		return Result{}, fmt.Errorf("restconf: cannot read %s into %v", id, t)
	}
	resp, err := c.send(ctx, http.MethodGet, rp.Path, nil)
	if err != nil {
		return Result{}, err
	}
	if resp == nil {
		return Result{}, nil
	}
	root, err := c.codec.Unmarshal(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("restconf: decode %s: %w", rp.Path, err)
	}
	issues, err := c.mapper.Decode(root, out)
	if err != nil {
		return Result{}, err
	}
	return Result{Found: true, Issues: issues}, nil
}

// ReadLeaves fetches a complete leaf-list.
func ReadLeaves[T any](ctx context.Context, c *Client, id Identifier, nodeID string) ([]T, Result, error) {
	rp, err := c.paths.Build(id, nodeID)
	if err != nil {
		return nil, Result{}, err
	}
	resp, err := c.send(ctx, http.MethodGet, rp.Path, nil)
	if err != nil || resp == nil {
		return nil, Result{LeafList: rp.LeafList}, err
	}
	roots, err := c.codec.UnmarshalAll(resp.Body)
	if err != nil {
		return nil, Result{}, fmt.Errorf("restconf: decode %s: %w", rp.Path, err)
	}
	vals, issues := yangwire.DecodeLeaves[T](c.mapper, roots)
	return vals, Result{Found: true, LeafList: rp.LeafList, Issues: issues}, nil
}

// Put replaces the resource at id with v.
func (c *Client) Put(ctx context.Context, id Identifier, nodeID string, v any) (Result, error) {
	return c.write(ctx, http.MethodPut, id, nodeID, v)
}

// Merge merges v into the resource at id (RFC 8040 plain patch).
func (c *Client) Merge(ctx context.Context, id Identifier, nodeID string, v any) (Result, error) {
	return c.write(ctx, http.MethodPatch, id, nodeID, v)
}

// Delete removes the resource at id. Deleting a missing resource is not an
// error.
func (c *Client) Delete(ctx context.Context, id Identifier, nodeID string) error {
	rp, err := c.paths.Build(id, nodeID)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, http.MethodDelete, rp.Path, nil)
	return err
}

// Invoke calls rpc ("module:name") with input, which may be nil, and decodes
// the reply's output into output when both are present.
func (c *Client) Invoke(ctx context.Context, rpc, nodeID string, input, output any) (Result, error) {
	rp := c.paths.Operation(rpc, nodeID)
	var (
		body []byte
		res  Result
	)
	if input != nil {
		doc, err := c.mapper.EncodeInput(input)
		if err != nil {
			return Result{}, err
		}
		res.Issues = doc.Issues
		if body, err = c.codec.Marshal(doc.Root); err != nil {
			return Result{}, fmt.Errorf("restconf: encode input: %w", err)
		}
	}
	resp, err := c.send(ctx, http.MethodPost, rp.Path, body)
	if err != nil {
		return res, err
	}
	if resp == nil {
		return res, &StatusError{Method: http.MethodPost, Path: rp.Path, StatusCode: http.StatusNotFound}
	}
	res.Found = true
	if output == nil || len(resp.Body) == 0 {
		return res, nil
	}
	root, err := c.codec.Unmarshal(resp.Body)
	if err != nil {
		return res, fmt.Errorf("restconf: decode output: %w", err)
	}
	issues, err := c.mapper.Decode(root, output)
	res.Issues = append(res.Issues, issues...)
	return res, err
}

func (c *Client) write(ctx context.Context, method string, id Identifier, nodeID string, v any) (Result, error) {
	rp, err := c.paths.Build(id, nodeID)
	if err != nil {
		return Result{}, err
	}
	doc, err := c.mapper.Encode(v)
	if err != nil {
		return Result{}, err
	}
	body, err := c.codec.Marshal(doc.Root)
	if err != nil {
		return Result{}, fmt.Errorf("restconf: encode %s: %w", rp.Path, err)
	}
	resp, err := c.send(ctx, method, rp.Path, body)
	if err != nil {
		return Result{Issues: doc.Issues}, err
	}
	return Result{Found: resp != nil, Issues: doc.Issues}, nil
}

// send performs one exchange. It returns a nil response for 404.
func (c *Client) send(ctx context.Context, method, path string, body []byte) (*Response, error) {
	req := &Request{
		Method:  method,
		Path:    c.base + path,
		Header:  c.header.Clone(),
		Body:    body,
		Timeout: c.timeout,
	}
	req.Header.Set("Accept", c.codec.ContentType())
	if len(body) > 0 {
		req.Header.Set("Content-Type", c.codec.ContentType())
	}
	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		c.log.Debug("restconf request failed",
			zap.String("method", method),
			zap.String("path", req.Path),
			zap.Error(err))
		return nil, err
	}
	c.log.Debug("restconf request",
		zap.String("method", method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{Method: method, Path: req.Path, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	return resp, nil
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// targetType returns the struct type out points to.
func targetType(out any) reflect.Type {
	t := reflect.TypeOf(out)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
