package fpds

import (
	"net/url"

	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is the public FPDS ATOM feed endpoint.
	DefaultBaseURL = "https://www.fpds.gov/ezsearch/FEEDS/ATOM"

	// DefaultFeedName selects the public contract feed.
	DefaultFeedName = "PUBLIC"

	// DefaultUserAgent identifies this proxy to the feed.
	DefaultUserAgent = "fpdsproxy/1.0"
)

// Endpoint describes where and as whom the feed is requested.
type Endpoint struct {
	BaseURL   string
	FeedName  string
	UserAgent string
}

// NewEndpoint returns an Endpoint with empty settings replaced by defaults.
func NewEndpoint(baseURL, feedName, userAgent string) Endpoint {
	e := Endpoint{BaseURL: baseURL, FeedName: feedName, UserAgent: userAgent}

	if e.BaseURL == "" {
		e.BaseURL = DefaultBaseURL
	}

	if e.FeedName == "" {
		e.FeedName = DefaultFeedName
	}

	if e.UserAgent == "" {
		e.UserAgent = DefaultUserAgent
	}

	return e
}

// URL returns the feed URL for q: the base URL with the feed name and the url-encoded
// query added to any parameters it already has.
func (e Endpoint) URL(q Query) (string, error) {
	u, err := url.Parse(e.BaseURL)
	if err != nil {
		return "", errors.Wrapf(err, "failed parsing feed base url '%s'", e.BaseURL)
	}

	params := u.Query()
	params.Set("FEEDNAME", e.FeedName)
	params.Set("q", string(q))
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// Headers returns the fixed request headers sent with every feed request.
func (e Endpoint) Headers() map[string]string {
	return map[string]string{
		"User-Agent": e.UserAgent,
		"Accept":     "application/atom+xml, application/xml;q=0.9, */*;q=0.8",
	}
}
