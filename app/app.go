// Package app wires configuration, logging, the feed client, the optional
// cache and the router into the lambda handler.
package app

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"github.com/prognoshealth/fpdsproxy/cache"
	"github.com/prognoshealth/fpdsproxy/config"
	"github.com/prognoshealth/fpdsproxy/fpds"
	"github.com/prognoshealth/fpdsproxy/lambdautils"
	"github.com/prognoshealth/fpdsproxy/logging"
	"github.com/prognoshealth/fpdsproxy/metrics"
	"github.com/prognoshealth/fpdsproxy/proxy"
	"github.com/prognoshealth/fpdsproxy/search"
	"go.uber.org/zap"
)

// SearchPattern matches the search endpoint and its /search alias.
const SearchPattern = "/api/fpds(?:/search)?"

// App is the assembled proxy.
type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Service *search.Service
	Router  *proxy.Router
}

// Load reads the configuration from the environment and builds the App.
func Load() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	return New(cfg, logger, nil)
}

// New builds the App from cfg. fetcher may be nil, in which case an HTTP
// fetcher with the configured timeout is used, wrapped by the dynamodb cache
// when one is configured.
func New(cfg config.Config, logger *zap.Logger, fetcher fpds.Fetcher) (*App, error) {
	f := fetcher
	if f == nil {
		f = fpds.NewHTTPFetcher(nil, cfg.Timeout())
	}

	if cfg.CacheEnabled() {
		store, err := cache.NewFeedCache(cfg.Cache.Region, cfg.Cache.Table, cfg.Cache.TTLSec)
		if err != nil {
			return nil, errors.Wrap(err, "failed building feed cache")
		}
		f = cache.NewFetcher(f, store)
	}

	service := search.NewService(
		fpds.NewQueryBuilder(cfg.Window()),
		fpds.NewEndpoint(cfg.Feed.BaseURL, cfg.Feed.Name, cfg.Feed.UserAgent),
		f,
	)

	router := NewRouter(search.NewHandler(service, cfg.HTTP.StrictErrors), cfg.HTTP.CORSOrigin)
	if !router.Valid() {
		return nil, router.BuildErrors()
	}

	metrics.Register()

	return &App{Config: cfg, Logger: logger, Service: service, Router: router}, nil
}

// NewRouter returns the router of the proxy: the search endpoint, CORS preflight
// for every path and enveloped 404 and 500 answers.
func NewRouter(h *search.Handler, corsOrigin string) *proxy.Router {
	router := &proxy.Router{Headers: proxy.DefaultCORS(corsOrigin).Headers()}

	router.GET(SearchPattern, h.Search)
	router.OPTIONS(".*", proxy.Preflight)
	router.AddCatchAllHandler(h.NotFound)
	router.AddErrorHandler(h.Error)

	return router
}

// Handle is the lambda handler. It scopes a logger to the invocation and routes
// the request.
func (a *App) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	log := lambdautils.Logger(ctx, a.Logger).With(
		zap.String("method", request.RequestContext.HTTP.Method),
		zap.String("path", request.RawPath),
	)

	return a.Router.Route(logging.WithLogger(ctx, log), request)
}
