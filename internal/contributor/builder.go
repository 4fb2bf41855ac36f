package contributor

import (
	"net/http"
	"sort"
)

// Builder accumulates entries for a single request's GraphQL context.
// It is owned by one request and must not be shared between goroutines.
type Builder struct {
	values map[string]any
}

// NewBuilder returns an empty builder
func NewBuilder() *Builder {
	return &Builder{values: make(map[string]any)}
}

// Put stores value under key, replacing any previous value.
func (b *Builder) Put(key string, value any) {
	b.values[key] = value
}

// Len returns how many entries have been put so far.
func (b *Builder) Len() int {
	return len(b.values)
}

// Build finalizes the builder into an immutable Context bound to req.
// The builder may keep being used afterwards without affecting the result.
func (b *Builder) Build(req *RequestData) *Context {
	values := make(map[string]any, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}

	return &Context{values: values, req: req}
}

// Context is the finalized, read-only GraphQL context of one request.
// A nil *Context behaves as an empty context.
type Context struct {
	values map[string]any
	req    *RequestData
}

// Value returns the entry stored under key.
func (c *Context) Value(key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	v, ok := c.values[key]
	return v, ok
}

// String returns the entry stored under key when it is a string.
func (c *Context) String(key string) (string, bool) {
	v, ok := c.Value(key)
	if !ok {
		return "", false
	}

	s, ok := v.(string)
	return s, ok
}

// Keys returns all keys in ascending order.
func (c *Context) Keys() []string {
	if c == nil {
		return []string{}
	}

	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Len returns the number of entries.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}

	return len(c.values)
}

// RequestHeader returns the first value of the named header of the request
// this context was built for, or "" when there was no request.
func (c *Context) RequestHeader(name string) string {
	v, _ := c.LookupRequestHeader(name)
	return v
}

// LookupRequestHeader is like RequestHeader but reports whether the header
// was present, so a header sent with an empty value can be told apart
// from a missing one.
func (c *Context) LookupRequestHeader(name string) (string, bool) {
	if c == nil {
		return "", false
	}

	return c.req.LookupHeader(name)
}

// RequestData is the read-only view of an inbound request handed to contributors.
// A nil *RequestData means the operation did not arrive over HTTP.
type RequestData struct {
	Header http.Header
}

// NewRequestData wraps h, returning nil when h is nil.
func NewRequestData(h http.Header) *RequestData {
	if h == nil {
		return nil
	}

	return &RequestData{Header: h}
}

// FirstHeader returns the first value of the header name.
// Header names are matched case-insensitively.
func (r *RequestData) FirstHeader(name string) string {
	v, _ := r.LookupHeader(name)
	return v
}

// LookupHeader returns the first value of the header name and whether
// the header was sent at all.
func (r *RequestData) LookupHeader(name string) (string, bool) {
	if r == nil || r.Header == nil {
		return "", false
	}

	if vs := r.Header.Values(name); len(vs) > 0 {
		return vs[0], true
	}

	// headers set without canonicalization, e.g. h["context-contributor-header"]
	for k, vs := range r.Header {
		if len(vs) > 0 && http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(name) {
			return vs[0], true
		}
	}

	return "", false
}
