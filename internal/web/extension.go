package web

import (
	"context"
	"net/http"

	"github.com/99designs/gqlgen/graphql"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/Laisky/graphql-context-example/internal/contributor"
)

// requestScope carries request-level inputs that gqlgen does not keep
// on the operation context, so they can reach the contributors.
type requestScope struct {
	extensions map[string]any
}

type requestScopeKey struct{}

func withRequestScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestScopeKey{}, &requestScope{})
}

func requestScopeFromContext(ctx context.Context) *requestScope {
	scope, _ := ctx.Value(requestScopeKey{}).(*requestScope)
	return scope
}

// requestScopeHandler wraps next so every HTTP request owns a requestScope
func requestScopeHandler(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(withRequestScope(r.Context())))
	}
}

// contributorExtension builds the GraphQL context once per operation,
// before any resolver runs.
type contributorExtension struct {
	chain contributor.Chain
}

var _ interface {
	graphql.HandlerExtension
	graphql.OperationParameterMutator
	graphql.OperationInterceptor
} = contributorExtension{}

func newContributorExtension(chain contributor.Chain) contributorExtension {
	return contributorExtension{chain: chain}
}

func (contributorExtension) ExtensionName() string {
	return "ContextContributors"
}

func (contributorExtension) Validate(graphql.ExecutableSchema) error {
	return nil
}

func (contributorExtension) MutateOperationParameters(ctx context.Context, rawParams *graphql.RawParams) *gqlerror.Error {
	if scope := requestScopeFromContext(ctx); scope != nil {
		scope.extensions = rawParams.Extensions
	}

	return nil
}

func (e contributorExtension) InterceptOperation(ctx context.Context, next graphql.OperationHandler) graphql.ResponseHandler {
	var extensions map[string]any
	if scope := requestScopeFromContext(ctx); scope != nil {
		extensions = scope.extensions
	}

	opCtx := graphql.GetOperationContext(ctx)
	gctx := e.chain.Build(extensions, contributor.NewRequestData(opCtx.Headers))
	gmw.GetLogger(ctx).Debug("graphql context built",
		zap.String("operation", opCtx.OperationName),
		zap.Strings("keys", gctx.Keys()),
	)

	return next(contributor.WithContext(ctx, gctx))
}
