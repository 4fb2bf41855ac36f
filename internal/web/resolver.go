package web

import (
	"context"

	"github.com/Laisky/graphql-context-example/internal/contributor"
)

// Resolver is the root resolver. Every field reads the GraphQL context
// built by the contributors for the current operation.
type Resolver struct{}

// NewResolver new root resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

func (r *Resolver) Query() *queryResolver {
	return &queryResolver{r}
}

// ===========================
// query
// ===========================

type queryResolver struct{ *Resolver }

func (r *queryResolver) Hello(ctx context.Context) (string, error) {
	return "hello, world", nil
}

// ContributorEnabled returns the marker set by contributor.HeaderContributor, if any.
func (r *queryResolver) ContributorEnabled(ctx context.Context) (*string, error) {
	v, ok := contributor.FromContext(ctx).String(contributor.EnabledKey)
	if !ok {
		return nil, nil
	}

	return &v, nil
}

func (r *queryResolver) RequestHeader(ctx context.Context, name string) (*string, error) {
	v, ok := contributor.FromContext(ctx).LookupRequestHeader(name)
	if !ok {
		return nil, nil
	}

	return &v, nil
}

func (r *queryResolver) ContextKeys(ctx context.Context) ([]string, error) {
	return contributor.FromContext(ctx).Keys(), nil
}
