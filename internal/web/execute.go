package web

import (
	"context"
	"net/http"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/executor"

	"github.com/Laisky/graphql-context-example/internal/contributor"
)

// LocalExecutor runs GraphQL documents in process, without an HTTP request.
type LocalExecutor struct {
	exec *executor.Executor
}

// NewLocalExecutor new executor sharing the schema and contributors of the HTTP server
func NewLocalExecutor(resolver *Resolver, contributors contributor.Chain) *LocalExecutor {
	exec := executor.New(NewExecutableSchema(resolver))
	exec.Use(newContributorExtension(contributors))
	exec.SetErrorPresenter(presentGraphQLError)

	return &LocalExecutor{exec: exec}
}

// Execute runs query with variables.
//
// header stands in for the inbound request headers. Pass nil to execute
// as a non-HTTP invocation, in which case contributors see no request.
func (e *LocalExecutor) Execute(ctx context.Context,
	query string,
	variables map[string]any,
	header http.Header,
) *graphql.Response {
	start := graphql.Now()
	ctx = withRequestScope(graphql.StartOperationTrace(ctx))
	params := &graphql.RawParams{
		Query:     query,
		Variables: variables,
		Headers:   header,
		ReadTime: graphql.TraceTiming{
			Start: start,
			End:   graphql.Now(),
		},
	}

	opCtx, errs := e.exec.CreateOperationContext(ctx, params)
	if errs != nil {
		return e.exec.DispatchError(graphql.WithOperationContext(ctx, opCtx), errs)
	}

	responses, ctx := e.exec.DispatchOperation(ctx, opCtx)
	return responses(ctx)
}
