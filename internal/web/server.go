// Package web gin server hosting the GraphQL API
package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/Laisky/graphql-context-example/internal/contributor"
	"github.com/Laisky/graphql-context-example/library/log"
)

type serverOption struct {
	logger     logSDK.Logger
	corsHosts  []string
	metric     bool
	playground bool
}

// ServerOption configures NewServer
type ServerOption func(*serverOption) error

// WithLogger sets the server logger
func WithLogger(logger logSDK.Logger) ServerOption {
	return func(opt *serverOption) error {
		if logger == nil {
			return errors.New("logger is nil")
		}

		opt.logger = logger
		return nil
	}
}

// WithCORSHosts allows cross-origin requests from these hosts and their subdomains
func WithCORSHosts(hosts ...string) ServerOption {
	return func(opt *serverOption) error {
		for _, host := range hosts {
			host = strings.ToLower(strings.TrimSpace(host))
			if host == "" {
				continue
			}
			if strings.Contains(host, "/") {
				return errors.Errorf("invalid cors host `%s`", host)
			}

			opt.corsHosts = append(opt.corsHosts, host)
		}

		return nil
	}
}

// WithMetric enables the prometheus endpoint
func WithMetric(enable bool) ServerOption {
	return func(opt *serverOption) error {
		opt.metric = enable
		return nil
	}
}

// WithPlayground serves the GraphQL playground at /ui/.
// Off by default: the schema does not answer introspection, so the
// playground cannot offer completion or docs.
func WithPlayground(enable bool) ServerOption {
	return func(opt *serverOption) error {
		opt.playground = enable
		return nil
	}
}

// NewServer builds the gin engine serving the GraphQL API.
// contributors run once per GraphQL operation.
func NewServer(resolver *Resolver, contributors contributor.Chain, opts ...ServerOption) (*gin.Engine, error) {
	opt := &serverOption{
		logger: log.Logger,
	}
	for _, f := range opts {
		if err := f(opt); err != nil {
			return nil, errors.Wrap(err, "apply option")
		}
	}

	server := gin.New()
	server.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLogger(opt.logger.Named("gin")),
		),
		newCORSMiddleware(opt.corsHosts),
	)

	if opt.metric {
		if err := gmw.EnableMetric(server); err != nil {
			return nil, errors.Wrap(err, "enable metric server")
		}
	}

	server.Any("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world")
	})
	status := newStatusHandler()
	server.GET("/status", status)
	server.HEAD("/status", status)
	server.OPTIONS("/status", status)

	h := newGraphQLHandler(resolver, contributors)
	if opt.playground {
		server.Any("/ui/", gmw.FromStd(playground.Handler("GraphQL playground", "/query/")))
	}
	server.Any("/query/", gmw.FromStd(requestScopeHandler(h)))
	server.Any("/graphql", gmw.FromStd(requestScopeHandler(h)))

	return server, nil
}

// RunServer blocks serving on addr
func RunServer(addr string, resolver *Resolver, contributors contributor.Chain, opts ...ServerOption) error {
	server, err := NewServer(resolver, contributors, opts...)
	if err != nil {
		return errors.Wrap(err, "new server")
	}

	log.Logger.Info("listening on http", zap.String("addr", addr))
	return errors.Wrap(server.Run(addr), "httpServer exit")
}

func newGraphQLHandler(resolver *Resolver, contributors contributor.Chain) *handler.Server {
	h := handler.New(NewExecutableSchema(resolver))
	h.AddTransport(transport.Options{})
	h.AddTransport(transport.GET{})
	h.AddTransport(transport.POST{})
	h.AddTransport(transport.MultipartForm{})
	h.Use(newContributorExtension(contributors))
	h.SetErrorPresenter(presentGraphQLError)

	return h
}

func presentGraphQLError(ctx context.Context, e error) *gqlerror.Error {
	err := graphql.DefaultErrorPresenter(ctx, e)

	if client, reason := classifyGraphQLClientError(e.Error()); client {
		gmw.GetLogger(ctx).Debug("graphql client error",
			zap.String("reason", reason),
			zap.Error(err.Err))
	} else {
		// gqlgen wraps the origin error, log the unwrapped one to keep its stack
		gmw.GetLogger(ctx).Error("graphql server", zap.Error(err.Err))
	}

	return err
}

// classifyGraphQLClientError reports whether errMsg is caused by the caller
// and a short reason for logs.
func classifyGraphQLClientError(errMsg string) (bool, string) {
	msg := strings.ToLower(errMsg)
	switch {
	case strings.Contains(msg, "is not supported on query"):
		return true, "unsupported_field"
	case strings.Contains(msg, "unsupported graphql operation"):
		return true, "unsupported_operation"
	case strings.Contains(msg, "argument `"):
		return true, "invalid_argument"
	default:
		return false, "server_error"
	}
}

func newStatusHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Allow", "GET, HEAD, OPTIONS")
		if ctx.Request.Method != http.MethodGet {
			ctx.Status(http.StatusOK)
			return
		}

		ctx.String(http.StatusOK, "ok")
	}
}

func newCORSMiddleware(allowedHosts []string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		origin := strings.TrimSpace(ctx.Request.Header.Get("Origin"))
		allowedOrigin := ""

		if origin != "" {
			parsedOriginURL, err := url.Parse(origin)
			if err == nil && isAllowedHost(strings.ToLower(parsedOriginURL.Hostname()), allowedHosts) {
				allowedOrigin = origin
			}
		}

		if allowedOrigin != "" {
			ctx.Header("Access-Control-Allow-Origin", allowedOrigin)
			ctx.Header("Access-Control-Allow-Credentials", "true")
			ctx.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS, HEAD")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, "+contributor.HeaderName)
			ctx.Header("Access-Control-Max-Age", "86400") // 24 hours
			ctx.Header("Vary", "Origin")

			if ctx.Request.Method == http.MethodOptions {
				ctx.AbortWithStatus(http.StatusNoContent)
				return
			}
		} else if origin != "" && ctx.Request.Method == http.MethodOptions {
			// deny preflight from disallowed origins
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}

		ctx.Next()
	}
}

func isAllowedHost(host string, allowedHosts []string) bool {
	if host == "" {
		return false
	}

	for _, allowed := range allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}

	return false
}
