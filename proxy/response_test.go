package proxy

import (
	"math"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCORS_Headers(t *testing.T) {
	expected := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
		"Access-Control-Max-Age":       "86400",
	}

	assert.Equal(t, expected, DefaultCORS("").Headers())
}

func TestCORS_Headers_origin(t *testing.T) {
	headers := CORS{AllowOrigin: "https://example.org", AllowMethods: []string{"GET"}}.Headers()

	assert.Equal(t, "https://example.org", headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "GET", headers["Access-Control-Allow-Methods"])
	assert.NotContains(t, headers, "Access-Control-Max-Age")
}

func TestJSON(t *testing.T) {
	response, err := JSON(201, map[string]interface{}{"success": true, "count": 2})

	require.NoError(t, err)
	assert.Equal(t, 201, response.StatusCode)
	assert.Equal(t, "application/json", response.Headers["Content-Type"])
	assert.JSONEq(t, `{"success": true, "count": 2}`, response.Body)
}

func TestJSON_error(t *testing.T) {
	_, err := JSON(200, math.NaN())

	assert.EqualError(t, err, "failed marshalling response body: json: unsupported value: NaN")
}

func TestPreflight(t *testing.T) {
	response, err := Preflight(&RouteContext{})

	require.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
	assert.Empty(t, response.Body)
}

func TestWithHeaders(t *testing.T) {
	response := events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json", "X-Own": "route"},
	}

	merged := withHeaders(response, map[string]string{"X-Own": "router", "X-Router": "yes"})

	expected := map[string]string{
		"Content-Type": "application/json",
		"X-Own":        "route",
		"X-Router":     "yes",
	}
	assert.Equal(t, expected, merged.Headers)

	assert.Equal(t, response, withHeaders(response, nil))
}
