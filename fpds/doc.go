// Package fpds talks to the FPDS ATOM feed: it turns search filters into a feed query,
// requests the feed and assembles ContractRecords from the entries of the answer.
package fpds
