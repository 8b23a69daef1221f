// Package driven defines the interfaces the core pipeline depends on:
// format converters, the corpus scanner, the analysis engines, report
// exporters and the settings store. Adapters implement these.
package driven
