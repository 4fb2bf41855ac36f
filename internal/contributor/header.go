package contributor

const (
	// HeaderName is the request header HeaderContributor inspects.
	HeaderName = "context-contributor-header"
	// HeaderValue is the exact header value that enables the marker.
	HeaderValue = "enabled"
	// EnabledKey is the context key of the marker entry.
	EnabledKey = "contributorEnabled"
	// EnabledValue is the context value of the marker entry.
	EnabledValue = "true"
)

// HeaderContributor puts EnabledKey=EnabledValue into the context
// when the request carries HeaderName: HeaderValue.
type HeaderContributor struct{}

// Contribute implements Contributor. extensions are ignored.
func (HeaderContributor) Contribute(b *Builder, _ map[string]any, req *RequestData) {
	if req == nil {
		return
	}

	if req.FirstHeader(HeaderName) == HeaderValue {
		b.Put(EnabledKey, EnabledValue)
	}
}
