// Package jobfile loads faceting job definitions. Two formats are
// supported, selected by file extension: CUE (.cue), validated against
// an embedded schema before decoding, and YAML (.yaml/.yml) for quick
// hand-written jobs. Both decode into the same Job struct.
package jobfile
