// Package services implements the core pipeline logic: content-hash
// deduplication, parallel extraction and the run orchestrator that
// sequences scanning, extraction, vectorization, clustering and
// projection into a single AnalysisReport.
package services
