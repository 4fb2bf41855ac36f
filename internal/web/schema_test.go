package web

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecutableSchema(t *testing.T) {
	t.Parallel()

	es := NewExecutableSchema(NewResolver())
	query := es.Schema().Query
	require.NotNil(t, query)

	names := make([]string, 0, len(query.Fields))
	for _, f := range query.Fields {
		names = append(names, f.Name)
	}
	require.Subset(t, names, []string{"hello", "contributorEnabled", "requestHeader", "contextKeys"})
	require.True(t, query.Fields.ForName("hello").Type.NonNull)
	require.False(t, query.Fields.ForName("contributorEnabled").Type.NonNull)

	_, ok := es.Complexity(context.Background(), "Query", "hello", 0, nil)
	require.False(t, ok)
}

func TestResolverWithoutGraphQLContext(t *testing.T) {
	t.Parallel()

	q := NewResolver().Query()
	ctx := context.Background()

	v, err := q.ContributorEnabled(ctx)
	require.NoError(t, err)
	require.Nil(t, v)

	h, err := q.RequestHeader(ctx, "anything")
	require.NoError(t, err)
	require.Nil(t, h)

	keys, err := q.ContextKeys(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)
}
