// Package proxy routes API Gateway v2 (http) requests inside a lambda function.
// A Router matches the request method and raw path against regex routes in the
// order they were added and hands the matched route a RouteContext holding the
// request parameters. Responses are plain events.APIGatewayProxyResponse values;
// headers configured on the router, such as CORS headers, are added to every one
// of them.
package proxy
