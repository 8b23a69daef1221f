// Package converters provides implementations of the Converter
// interface for various file formats. Each converter knows how to
// extract normalized plain text from a specific format; the external
// command converter covers everything else by shelling out to a
// configured tool.
//
// Converters are registered with the Registry at startup.
package converters
