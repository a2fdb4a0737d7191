package search

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prognoshealth/fpdsproxy/fpds"
	"github.com/prognoshealth/fpdsproxy/logging"
	"github.com/prognoshealth/fpdsproxy/metrics"
	"go.uber.org/zap"
)

// Service turns filters into a feed request and the answer into records.
type Service struct {
	Builder  *fpds.QueryBuilder
	Endpoint fpds.Endpoint
	Fetcher  fpds.Fetcher
}

// Result is the outcome of a search. Query and URL are set as soon as they are
// known, also when the search fails.
type Result struct {
	Query   fpds.Query
	URL     string
	Records []fpds.ContractRecord
}

// NewService returns a Service.
func NewService(builder *fpds.QueryBuilder, endpoint fpds.Endpoint, fetcher fpds.Fetcher) *Service {
	return &Service{Builder: builder, Endpoint: endpoint, Fetcher: fetcher}
}

// Query builds the query and url for filters without fetching anything.
func (s *Service) Query(filters fpds.Filters) (Result, error) {
	res := Result{Query: s.Builder.Build(filters)}

	url, err := s.Endpoint.URL(res.Query)
	if err != nil {
		return res, errors.Wrap(err, "failed building feed url")
	}

	res.URL = url
	return res, nil
}

// Search fetches the feed once for filters and assembles the records.
func (s *Service) Search(ctx context.Context, filters fpds.Filters) (Result, error) {
	res, err := s.Query(filters)
	if err != nil {
		return res, err
	}

	log := logging.FromContext(ctx).With(zap.String("query", string(res.Query)))

	start := time.Now()
	body, err := s.Fetcher.Fetch(ctx, res.URL, s.Endpoint.Headers())
	elapsed := time.Since(start)

	if err != nil {
		metrics.ObserveUpstream(outcome(err), elapsed)
		return res, err
	}

	if !fpds.IsFeed(body) {
		metrics.ObserveUpstream(metrics.OutcomeMalformed, elapsed)
		log.Debug("feed body without feed root", zap.Int("bytes", len(body)))
		return res, errors.Wrapf(ErrMalformedResponse, "%d byte body", len(body))
	}

	metrics.ObserveUpstream(metrics.OutcomeOK, elapsed)

	res.Records = fpds.ParseFeed(body)
	metrics.ObserveRecords(len(res.Records))

	log.Debug("feed parsed", zap.Duration("elapsed", elapsed), zap.Int("records", len(res.Records)))
	return res, nil
}

func outcome(err error) string {
	var herr *fpds.HTTPError

	switch {
	case errors.Is(err, fpds.ErrTimeout):
		return metrics.OutcomeTimeout
	case errors.As(err, &herr):
		return metrics.OutcomeHTTPError
	default:
		return metrics.OutcomeError
	}
}
