// Package middleware provides HTTP middleware for the ekkles status API.
//
// Request logging uses the W3C Extended Log Format and Prometheus metrics
// are labelled by route template so that ids in paths do not create new
// series.
package middleware
