// Package domain defines the core data model of the cataloguing
// pipeline: source files, extracted documents, the deduplicated
// corpus, feature and distance matrices, the linkage tree, the
// projection and the final analysis report.
//
// Types here carry no behaviour beyond validation; algorithms live in
// the analysis packages and services.
package domain
