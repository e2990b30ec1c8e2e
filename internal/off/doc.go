// Package off writes concrete polytopes as OFF files, one file per
// result, with file names normalized to NFC and stripped of characters
// that are unsafe in paths.
package off
