// Package lambdautils reads the lambda invocation context and turns it into
// log fields and request ids. Outside lambda every value is empty and request
// ids are generated.
package lambdautils
