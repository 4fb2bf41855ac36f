// Package contributor assembles the per-request GraphQL context.
//
// Contributors run once per operation, before any resolver, and may add
// entries to a Builder. The finalized Context travels to resolvers inside
// the standard context.Context.
package contributor

import "context"

// Contributor adds entries to the GraphQL context of one request.
//
// extensions are the GraphQL request extensions and may be nil.
// req is nil when the operation was not received over HTTP.
type Contributor interface {
	Contribute(b *Builder, extensions map[string]any, req *RequestData)
}

// Func adapts a plain function to Contributor.
type Func func(b *Builder, extensions map[string]any, req *RequestData)

// Contribute calls f
func (f Func) Contribute(b *Builder, extensions map[string]any, req *RequestData) {
	f(b, extensions, req)
}

// Chain runs its contributors in order against one builder.
type Chain []Contributor

// Default returns the contributors the service registers at startup.
func Default() Chain {
	return Chain{HeaderContributor{}}
}

// Build runs every contributor against a fresh builder and finalizes it.
func (c Chain) Build(extensions map[string]any, req *RequestData) *Context {
	b := NewBuilder()
	for _, ctb := range c {
		if ctb == nil {
			continue
		}

		ctb.Contribute(b, extensions, req)
	}

	return b.Build(req)
}

type ctxKey struct{}

// WithContext attaches gctx to ctx
func WithContext(ctx context.Context, gctx *Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, ctxKey{}, gctx)
}

// FromContext returns the GraphQL context attached to ctx, or nil.
func FromContext(ctx context.Context) *Context {
	if ctx == nil {
		return nil
	}

	gctx, _ := ctx.Value(ctxKey{}).(*Context)
	return gctx
}
