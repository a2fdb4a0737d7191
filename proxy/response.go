package proxy

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// CORS holds the cross origin headers a router adds to its responses.
type CORS struct {
	AllowOrigin  string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       int
}

// DefaultCORS allows GET and OPTIONS from origin, or from anywhere when origin is empty.
func DefaultCORS(origin string) CORS {
	if origin == "" {
		origin = "*"
	}

	return CORS{
		AllowOrigin:  origin,
		AllowMethods: []string{GET.String(), OPTIONS.String()},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       86400,
	}
}

// Headers renders the Access-Control-* response headers.
func (c CORS) Headers() map[string]string {
	headers := map[string]string{
		"Access-Control-Allow-Origin":  c.AllowOrigin,
		"Access-Control-Allow-Methods": strings.Join(c.AllowMethods, ", "),
		"Access-Control-Allow-Headers": strings.Join(c.AllowHeaders, ", "),
	}

	if c.MaxAge > 0 {
		headers["Access-Control-Max-Age"] = strconv.Itoa(c.MaxAge)
	}

	return headers
}

// JSON returns a response with v marshalled as the body.
func JSON(status int, v interface{}) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{}, errors.Wrap(err, "failed marshalling response body")
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

// Empty returns a response without a body.
func Empty(status int) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{StatusCode: status}
}

// Preflight answers CORS preflight requests with an empty 200.
func Preflight(*RouteContext) (events.APIGatewayProxyResponse, error) {
	return Empty(http.StatusOK), nil
}

// withHeaders adds headers the response does not set itself.
func withHeaders(response events.APIGatewayProxyResponse, headers map[string]string) events.APIGatewayProxyResponse {
	if len(headers) == 0 {
		return response
	}

	merged := make(map[string]string, len(headers)+len(response.Headers))
	for k, v := range headers {
		merged[k] = v
	}

	for k, v := range response.Headers {
		merged[k] = v
	}

	response.Headers = merged
	return response
}
