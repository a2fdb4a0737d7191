package proxy

import (
	"strings"

	"github.com/pkg/errors"
)

// HttpMethod is an enum of the standard Http Methods.
type HttpMethod int

const (
	GET HttpMethod = iota
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
)

var methodNames = [...]string{"GET", "HEAD", "POST", "PUT", "DELETE", "CONNECT", "OPTIONS", "TRACE", "PATCH"}

func (m HttpMethod) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "UNKNOWN"
	}

	return methodNames[m]
}

// ParseHttpMethod returns the HttpMethod named by s, ignoring case.
func ParseHttpMethod(s string) (HttpMethod, error) {
	for i, name := range methodNames {
		if strings.EqualFold(name, s) {
			return HttpMethod(i), nil
		}
	}

	return 0, errors.Errorf("unknown http method '%s'", s)
}
