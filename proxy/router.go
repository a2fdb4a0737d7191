package proxy

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// ErrorHandler defines the function interface the router uses to handle any
// error that occurs while processing routes.
type ErrorHandler func(context.Context, events.APIGatewayV2HTTPRequest, error) (events.APIGatewayProxyResponse, error)

// CatchAllHandler defines the function interface the router uses to handle any
// request that doesn't match a route.
type CatchAllHandler func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error)

// ErrNotFound is returned by Route when nothing matches and no CatchAll is set.
var ErrNotFound = errors.New("route not found")

// Router routes an events.APIGatewayV2HTTPRequest to the first matching route.
//
// A request that matches no route goes to CatchAll when set. An error returned
// by a route, or by CatchAll, goes to CatchError when set. Headers are added to
// every response, including the ones produced by CatchAll and CatchError, unless
// the response sets the header itself.
//
// Example:
//
//	router := &proxy.Router{Headers: proxy.DefaultCORS("").Headers()}
//	router.GET("/api/fpds(?:/search)?", searchHandler)
//	router.OPTIONS(".*", proxy.Preflight)
//
//	if !router.Valid() {
//		return router.BuildErrors()
//	}
//
//	lambda.Start(router.Route)
type Router struct {
	Routes     []*Route
	CatchAll   CatchAllHandler
	CatchError ErrorHandler
	Headers    map[string]string

	errors []error
}

// Valid returns true if every route was built successfully.
func (router *Router) Valid() bool {
	return len(router.errors) == 0
}

// AddRoute appends route to the list of routes used for request matching.
func (router *Router) AddRoute(route *Route) {
	router.Routes = append(router.Routes, route)
}

// AddBuildError records an error found while building the router.
func (router *Router) AddBuildError(err error) {
	router.errors = append(router.errors, err)
}

// BuildErrors returns a single error describing every build error, or nil.
func (router *Router) BuildErrors() error {
	if router.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(router.errors))
	for _, err := range router.errors {
		msgs = append(msgs, err.Error())
	}

	return errors.Errorf("failed building router: %s", strings.Join(msgs, "; "))
}

// AddRouteIfNoError appends the route, or records err when it is set.
func (router *Router) AddRouteIfNoError(route *Route, err error) {
	if err != nil {
		router.AddBuildError(err)
		return
	}

	router.AddRoute(route)
}

// Handle adds a route for method with the specified pattern and handler.
func (router *Router) Handle(method HttpMethod, match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(method, match, handler))
}

// GET adds a new GET route with the specified pattern match and handler.
func (router *Router) GET(match string, handler RouteHandler) {
	router.Handle(GET, match, handler)
}

// HEAD adds a new HEAD route with the specified pattern match and handler.
func (router *Router) HEAD(match string, handler RouteHandler) {
	router.Handle(HEAD, match, handler)
}

// OPTIONS adds a new OPTIONS route with the specified pattern match and handler.
func (router *Router) OPTIONS(match string, handler RouteHandler) {
	router.Handle(OPTIONS, match, handler)
}

// AddCatchAllHandler attaches a catchall handler to the router.
func (router *Router) AddCatchAllHandler(handler CatchAllHandler) {
	router.CatchAll = handler
}

// AddErrorHandler attaches an error handler to the router.
func (router *Router) AddErrorHandler(handler ErrorHandler) {
	router.CatchError = handler
}

func (router *Router) routeInternal(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	for _, route := range router.Routes {
		if matched, groups := route.IsMatch(request); matched {
			return route.Follow(ctx, request, groups)
		}
	}

	if router.CatchAll != nil {
		return router.CatchAll(ctx, request)
	}

	return events.APIGatewayProxyResponse{}, errors.Wrapf(ErrNotFound, "'%s %s'", request.RequestContext.HTTP.Method, requestPath(request))
}

// Route dispatches the request and returns the response with the router's
// headers added. Its signature fits lambda.Start.
func (router *Router) Route(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	response, err := router.routeInternal(ctx, request)

	if err != nil && router.CatchError != nil {
		response, err = router.CatchError(ctx, request, err)
	}

	if err != nil {
		return response, err
	}

	return withHeaders(response, router.Headers), nil
}
