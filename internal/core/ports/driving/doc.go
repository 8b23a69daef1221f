// Package driving defines the interfaces through which the outer
// shell (CLI, watcher) drives the core pipeline.
package driving
