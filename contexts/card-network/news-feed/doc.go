// Package newsfeed implements the append-only announcement feed inside
// keygate. Items are created over the operator command channel and read by
// any caller; display order is newest-first with ties broken by insertion
// order.
package newsfeed
