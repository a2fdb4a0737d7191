package proxy

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// RouteContext contains all the request information for a route when matched.
//
// Params merges, in increasing priority, the query string parameters, the path
// parameters set by api gateway and the named groups of the route pattern.
type RouteContext struct {
	Context context.Context
	Request events.APIGatewayV2HTTPRequest
	Params  map[string]string
}

// Param returns the named parameter and whether it was supplied.
func (ctx *RouteContext) Param(name string) (string, bool) {
	v, ok := ctx.Params[name]
	return v, ok
}

// Path returns the raw request path.
func (ctx *RouteContext) Path() string {
	return requestPath(ctx.Request)
}
