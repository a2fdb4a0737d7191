package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/prognoshealth/fpdsproxy/fpds"
	"github.com/prognoshealth/fpdsproxy/proxy"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	body    string
	err     error
	url     string
	headers map[string]string
	panics  bool
}

func (s *stubFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (string, error) {
	if s.panics {
		panic("fetcher exploded")
	}

	s.url = url
	s.headers = headers
	return s.body, s.err
}

func readFeed(t *testing.T, name string) string {
	t.Helper()

	b, err := os.ReadFile(filepath.Join("..", "fpds", "testdata", name))
	require.NoError(t, err)

	return string(b)
}

// testService builds a service with a zero default window so queries are stable.
func testService(fetcher fpds.Fetcher) *Service {
	return NewService(fpds.NewQueryBuilder(0), fpds.NewEndpoint("", "", ""), fetcher)
}

func testRouter(h *Handler) *proxy.Router {
	r := &proxy.Router{Headers: proxy.DefaultCORS("").Headers()}
	r.GET("/api/fpds(?:/search)?", h.Search)
	r.OPTIONS(".*", proxy.Preflight)
	r.AddCatchAllHandler(h.NotFound)
	r.AddErrorHandler(h.Error)
	return r
}

func searchRequest(path string, params map[string]string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath:               path,
		QueryStringParameters: params,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: "GET",
				Path:   path,
			},
			TimeEpoch: time.Now().UnixMilli(),
		},
	}
}
