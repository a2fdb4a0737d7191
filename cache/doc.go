// Package cache keeps recent feed bodies in dynamodb so that repeated searches
// within the TTL do not hit the feed again.
//
// The table needs a string partition key named "id". The "expire" attribute
// holds the epoch second after which an item is stale; enable dynamodb TTL on it
// to have stale items removed.
package cache
