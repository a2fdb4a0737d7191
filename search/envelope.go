// Package search runs contract searches against the feed and renders their
// outcome, success or failure, as a uniform JSON envelope.
package search

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/prognoshealth/fpdsproxy/fpds"
)

// ErrorType classifies a failed search.
type ErrorType string

const (
	TransportTimeout          ErrorType = "TransportTimeout"
	UpstreamHTTPError         ErrorType = "UpstreamHttpError"
	UpstreamMalformedResponse ErrorType = "UpstreamMalformedResponse"
	UnexpectedError           ErrorType = "UnexpectedError"
	RouteNotFound             ErrorType = "RouteNotFound"
)

// ErrMalformedResponse is returned when the feed answers with a body that is not
// an Atom feed.
var ErrMalformedResponse = errors.New("feed response is not an atom feed")

// longest upstream body excerpt copied into an envelope
const detailsLimit = 512

// Envelope is the JSON shape of every search response.
type Envelope struct {
	Success bool                  `json:"success"`
	Count   int                   `json:"count"`
	Data    []fpds.ContractRecord `json:"data"`
	Query   string                `json:"query,omitempty"`
	Error   string                `json:"error,omitempty"`
	Details string                `json:"details,omitempty"`
	Type    ErrorType             `json:"type,omitempty"`
}

// Success wraps the records of a completed search. Data is never null.
func Success(query fpds.Query, records []fpds.ContractRecord) Envelope {
	if records == nil {
		records = []fpds.ContractRecord{}
	}

	return Envelope{
		Success: true,
		Count:   len(records),
		Data:    records,
		Query:   string(query),
	}
}

// Failure renders err as a failed envelope. Data is null.
func Failure(query fpds.Query, err error) Envelope {
	typ, msg, details := Classify(err)

	return Envelope{
		Query:   string(query),
		Error:   msg,
		Details: details,
		Type:    typ,
	}
}

// Classify maps err to its ErrorType, a short message and details for the caller.
func Classify(err error) (ErrorType, string, string) {
	var herr *fpds.HTTPError

	switch {
	case errors.Is(err, fpds.ErrTimeout):
		return TransportTimeout, "FPDS request timed out", err.Error()
	case errors.As(err, &herr):
		details := strings.TrimSpace(herr.Body)
		if len(details) > detailsLimit {
			details = details[:detailsLimit]
		}
		return UpstreamHTTPError, fmt.Sprintf("FPDS returned HTTP %d", herr.Status), details
	case errors.Is(err, ErrMalformedResponse):
		return UpstreamMalformedResponse, "FPDS returned an unreadable response", err.Error()
	default:
		details := ""
		if err != nil {
			details = err.Error()
		}
		return UnexpectedError, "Unexpected error querying FPDS", details
	}
}
