// Package cli implements the facet command line: run (enumerate a
// job), validate (check a job file), and symmetry (report the derived
// group). Commands return ExitErrors so main can map failures to exit
// codes.
package cli
