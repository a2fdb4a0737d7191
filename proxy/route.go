package proxy

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// RouteHandler defines the function interface the route uses to execute a
// request when the route is matched.
type RouteHandler func(*RouteContext) (events.APIGatewayProxyResponse, error)

// Route pairs a HttpMethod and a path regex. When both match an incoming
// request the handler is called.
type Route struct {
	Method  HttpMethod
	Regex   *regexp.Regexp
	Handler RouteHandler
}

// NewRoute returns a Route for the specified method, pattern and handler. The
// pattern is anchored and accepts an optional trailing slash.
func NewRoute(method HttpMethod, pattern string, handler RouteHandler) (*Route, error) {
	rx, err := regexp.Compile("^" + pattern + "/?$")
	if err != nil {
		return nil, errors.Wrapf(err, "failed compiling regex pattern '%s'", pattern)
	}

	return &Route{Method: method, Regex: rx, Handler: handler}, nil
}

func (route *Route) String() string {
	return fmt.Sprintf("%s %s", route.Method, route.Regex)
}

// IsMatch reports whether the request matches and returns the regex groups.
func (route *Route) IsMatch(request events.APIGatewayV2HTTPRequest) (bool, []string) {
	if !strings.EqualFold(route.Method.String(), request.RequestContext.HTTP.Method) {
		return false, nil
	}

	groups := route.Regex.FindStringSubmatch(requestPath(request))
	if len(groups) == 0 {
		return false, nil
	}

	return true, groups
}

// Context builds the RouteContext handed to the handler.
func (route *Route) Context(ctx context.Context, request events.APIGatewayV2HTTPRequest, groups []string) (*RouteContext, error) {
	if len(groups) == 0 {
		return nil, errors.Errorf("no matches for route %v", route)
	}

	params := make(map[string]string, len(request.QueryStringParameters)+len(request.PathParameters))

	for k, v := range request.QueryStringParameters {
		params[k] = v
	}

	for k, v := range request.PathParameters {
		params[k] = v
	}

	for i, name := range route.Regex.SubexpNames() {
		if i != 0 && name != "" && i < len(groups) && groups[i] != "" {
			params[name] = groups[i]
		}
	}

	return &RouteContext{Context: ctx, Request: request, Params: params}, nil
}

// Follow builds the route context and executes the route's handler.
func (route *Route) Follow(ctx context.Context, request events.APIGatewayV2HTTPRequest, groups []string) (events.APIGatewayProxyResponse, error) {
	rctx, err := route.Context(ctx, request, groups)
	if err != nil {
		return events.APIGatewayProxyResponse{}, errors.Wrapf(err, "failed getting context for route %v", route.Regex)
	}

	return route.Handler(rctx)
}

func requestPath(request events.APIGatewayV2HTTPRequest) string {
	if request.RawPath != "" {
		return request.RawPath
	}

	return request.RequestContext.HTTP.Path
}
