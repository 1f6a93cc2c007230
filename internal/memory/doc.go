// Package memory sets the Go runtime memory limit for containerised
// deployments.
//
// GOMAXPROCS follows cgroup CPU limits on its own; GOMEMLIMIT does not.
// Call [ConfigureLimit] first thing in main:
//
//	memory.ConfigureLimit(os.Getenv)
//
// Environment variables:
//
//   - GOMEMLIMIT: standard Go variable, applied by the runtime itself and
//     left untouched here
//   - MEMORY_LIMIT: container limit in bytes, usually from the Kubernetes
//     Downward API (resources.limits.memory)
//   - MEMORY_RATIO: share of MEMORY_LIMIT given to the Go heap, between 0
//     and 1 (default 0.85)
package memory
