// Package datefind assigns a best-guess capture date to media files.
//
// Dates are drawn from five evidence sources consulted in a fixed priority
// order: embedded EXIF metadata, the takeout JSON sidecar, filename patterns,
// enclosing directory names, and finally the filesystem modification time.
// The modification time never fails, so resolution always terminates with a
// concrete date.
package datefind
