package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/prognoshealth/fpdsproxy/cache"
	"github.com/prognoshealth/fpdsproxy/config"
	"github.com/prognoshealth/fpdsproxy/fpds"
	"github.com/prognoshealth/fpdsproxy/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const feed = `<feed xmlns="http://www.w3.org/2005/Atom"><entry><content>
<ns1:award><ns1:PIID>ABC123</ns1:PIID><ns1:vendorName>ACME SOFTWARE LLC</ns1:vendorName></ns1:award>
</content></entry></feed>`

type stubFetcher struct {
	body string
	url  string
}

func (s *stubFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (string, error) {
	s.url = url
	return s.body, nil
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.ApplyDefaults()
	return cfg
}

func request(method, path string, params map[string]string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath:               path,
		QueryStringParameters: params,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: method, Path: path},
		},
	}
}

func TestNew(t *testing.T) {
	a, err := New(testConfig(), zap.NewNop(), nil)
	require.NoError(t, err)

	assert.IsType(t, &fpds.HTTPFetcher{}, a.Service.Fetcher)
	assert.Equal(t, fpds.DefaultTimeout, a.Service.Fetcher.(*fpds.HTTPFetcher).Timeout)
	assert.Equal(t, fpds.DefaultWindow, a.Service.Builder.Window)
	assert.Len(t, a.Router.Routes, 2)
}

func TestNew_withCache(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Table = "fpds-feed-cache"
	cfg.Cache.Region = "us-east-1"

	a, err := New(cfg, zap.NewNop(), nil)
	require.NoError(t, err)

	require.IsType(t, &cache.Fetcher{}, a.Service.Fetcher)
	store := a.Service.Fetcher.(*cache.Fetcher).Store.(*cache.FeedCache)
	assert.Equal(t, "fpds-feed-cache", store.Table)
	assert.Equal(t, int64(300), store.TTL)
}

func TestApp_Handle(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	fetcher := &stubFetcher{body: feed}

	cfg := testConfig()
	cfg.HTTP.CORSOrigin = "https://app.example.org"

	a, err := New(cfg, zap.New(core), fetcher)
	require.NoError(t, err)

	response, err := a.Handle(context.Background(), request("GET", "/api/fpds/", map[string]string{"naics": "541511"}))
	require.NoError(t, err)

	assert.Equal(t, 200, response.StatusCode)
	assert.Equal(t, "https://app.example.org", response.Headers["Access-Control-Allow-Origin"])
	assert.Contains(t, fetcher.url, "q=PRINCIPAL_NAICS_CODE%3A%22541511%22+SIGNED_DATE%3A%5B")

	var env search.Envelope
	require.NoError(t, json.Unmarshal([]byte(response.Body), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.Count)
	assert.Equal(t, "ACME SOFTWARE LLC", *env.Data[0].VendorName)

	entries := logs.FilterMessage("search completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/fpds/", fields["path"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestApp_Handle_unknownRoute(t *testing.T) {
	a, err := New(testConfig(), zap.NewNop(), &stubFetcher{})
	require.NoError(t, err)

	response, err := a.Handle(context.Background(), request("POST", "/api/fpds", nil))
	require.NoError(t, err)

	assert.Equal(t, 404, response.StatusCode)
	assert.Equal(t, "*", response.Headers["Access-Control-Allow-Origin"])
}

func TestApp_Handle_preflight(t *testing.T) {
	a, err := New(testConfig(), zap.NewNop(), &stubFetcher{})
	require.NoError(t, err)

	response, err := a.Handle(context.Background(), request("OPTIONS", "/api/fpds", nil))
	require.NoError(t, err)

	assert.Equal(t, 200, response.StatusCode)
	assert.Empty(t, response.Body)
}
