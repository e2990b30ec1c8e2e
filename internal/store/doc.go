// Package store is the optional SQLite catalog of faceting runs. Each
// run gets a UUIDv7 id and a row describing the job; every discovered
// faceting is recorded against its run. Writes are idempotent so a
// re-run of the same job into the same catalog does not duplicate
// rows.
package store
