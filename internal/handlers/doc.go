// Package handlers provides the read-only HTTP API of ekkles.
//
// It includes handlers for:
//   - Playlists, their parts and their resolved slide sequences
//   - The song and translation library
//   - The live presentation as both surfaces see it
//   - Health checks, version information and Prometheus metrics
package handlers
