// Package orbit partitions indexed items into orbits under a symmetry
// group given as a vertex map: a list of rows, each a permutation of
// vertex indices realizing one symmetry of the point configuration.
// The identity permutation must be present as a row.
//
// Orbits are reported deterministically: representatives are the
// lowest unvisited index in scan order, and members appear in the
// order the rows produce them.
package orbit
