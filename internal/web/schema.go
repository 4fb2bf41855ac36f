package web

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/99designs/gqlgen/graphql"
	"github.com/Laisky/errors/v2"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

//go:embed schema.graphqls
var schemaSDL string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSDL})

var queryImplementors = []string{"Query"}

type executableSchema struct {
	resolver *Resolver
}

// NewExecutableSchema binds resolver to the service schema
func NewExecutableSchema(resolver *Resolver) graphql.ExecutableSchema {
	return &executableSchema{resolver: resolver}
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

func (e *executableSchema) Complexity(ctx context.Context, typeName, field string, childComplexity int, rawArgs map[string]any) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)

	switch opCtx.Operation.Operation {
	case ast.Query:
		first := true
		return func(ctx context.Context) *graphql.Response {
			if !first {
				return nil
			}
			first = false

			data := e.execQuery(ctx, opCtx, opCtx.Operation.SelectionSet)
			var buf bytes.Buffer
			data.MarshalGQL(&buf)

			return &graphql.Response{Data: buf.Bytes()}
		}
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}
}

// execQuery resolves every selected Query field in document order.
// A failed non-null field nulls the whole data object.
func (e *executableSchema) execQuery(ctx context.Context, opCtx *graphql.OperationContext, sel ast.SelectionSet) graphql.Marshaler {
	fields := graphql.CollectFields(opCtx, sel, queryImplementors)
	out := graphql.NewFieldSet(fields)
	q := e.resolver.Query()

	for i, field := range fields {
		v, err := e.resolveQueryField(ctx, opCtx, q, field)
		if err != nil {
			graphql.AddError(ctx, gqlerror.WrapPath(ast.Path{ast.PathName(field.Alias)}, err))
			if field.Definition != nil && field.Definition.Type.NonNull {
				return graphql.Null
			}

			out.Values[i] = graphql.Null
			continue
		}

		out.Values[i] = v
	}

	return out
}

func (e *executableSchema) resolveQueryField(ctx context.Context,
	opCtx *graphql.OperationContext,
	q *queryResolver,
	field graphql.CollectedField,
) (graphql.Marshaler, error) {
	switch field.Name {
	case "__typename":
		return graphql.MarshalString("Query"), nil
	case "hello":
		v, err := q.Hello(ctx)
		if err != nil {
			return nil, err
		}
		return graphql.MarshalString(v), nil
	case "contributorEnabled":
		v, err := q.ContributorEnabled(ctx)
		if err != nil {
			return nil, err
		}
		return marshalOptionalString(v), nil
	case "requestHeader":
		name, ok := field.ArgumentMap(opCtx.Variables)["name"].(string)
		if !ok {
			return nil, errors.New("argument `name` must be a string")
		}

		v, err := q.RequestHeader(ctx, name)
		if err != nil {
			return nil, err
		}
		return marshalOptionalString(v), nil
	case "contextKeys":
		keys, err := q.ContextKeys(ctx)
		if err != nil {
			return nil, err
		}

		arr := make(graphql.Array, 0, len(keys))
		for _, k := range keys {
			arr = append(arr, graphql.MarshalString(k))
		}
		return arr, nil
	default:
		return nil, errors.Errorf("field `%s` is not supported on Query", field.Name)
	}
}

func marshalOptionalString(v *string) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}

	return graphql.MarshalString(*v)
}
