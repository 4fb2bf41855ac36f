package web

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/graphql-context-example/internal/contributor"
)

func executeLocal(t *testing.T, chain contributor.Chain, query string, header http.Header) gqlResponse {
	t.Helper()

	resp := NewLocalExecutor(NewResolver(), chain).Execute(context.Background(), query, nil, header)
	require.NotNil(t, resp)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var out gqlResponse
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestLocalExecutorWithoutRequest(t *testing.T) {
	t.Parallel()

	var sawRequest bool
	chain := contributor.Chain{
		contributor.HeaderContributor{},
		contributor.Func(func(_ *contributor.Builder, _ map[string]any, req *contributor.RequestData) {
			sawRequest = req != nil
		}),
	}

	resp := executeLocal(t, chain, "{ hello contributorEnabled contextKeys }", nil)
	require.Empty(t, resp.Errors)
	require.False(t, sawRequest)
	require.Equal(t, "hello, world", resp.Data["hello"])
	require.Nil(t, resp.Data["contributorEnabled"])
	require.Equal(t, []any{}, resp.Data["contextKeys"])
}

func TestLocalExecutorWithHeader(t *testing.T) {
	t.Parallel()

	header := http.Header{}
	header.Set(contributor.HeaderName, contributor.HeaderValue)

	resp := executeLocal(t, contributor.Default(), "{ contributorEnabled }", header)
	require.Empty(t, resp.Errors)
	require.Equal(t, "true", resp.Data["contributorEnabled"])

	header.Set(contributor.HeaderName, "disabled")
	resp = executeLocal(t, contributor.Default(), "{ contributorEnabled }", header)
	require.Empty(t, resp.Errors)
	require.Nil(t, resp.Data["contributorEnabled"])
}

func TestLocalExecutorIdempotent(t *testing.T) {
	t.Parallel()

	header := http.Header{}
	header.Set(contributor.HeaderName, contributor.HeaderValue)
	exec := NewLocalExecutor(NewResolver(), contributor.Default())

	var bodies []string
	for i := 0; i < 2; i++ {
		resp := exec.Execute(context.Background(), "{ contributorEnabled contextKeys }", nil, header)
		bodies = append(bodies, string(resp.Data))
	}

	require.JSONEq(t, `{"contributorEnabled":"true","contextKeys":["contributorEnabled"]}`, bodies[0])
	require.Equal(t, bodies[0], bodies[1])
}

func TestLocalExecutorValidationError(t *testing.T) {
	t.Parallel()

	resp := executeLocal(t, contributor.Default(), "{ notAField }", nil)
	require.NotEmpty(t, resp.Errors)
	require.Contains(t, resp.Errors[0].Message, "notAField")
}

func TestLocalExecutorUnsupportedOperation(t *testing.T) {
	t.Parallel()

	resp := executeLocal(t, contributor.Default(), "mutation { hello }", nil)
	require.NotEmpty(t, resp.Errors)
}
