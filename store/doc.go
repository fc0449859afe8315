// Package store persists evaluated cost matrices in SQLite.
//
// The schema is managed with golang-migrate from embedded SQL files; the
// driver is modernc.org/sqlite, so no cgo toolchain is required.
//
// A run is one saved matrix: the animation name, the operation label, the
// timeline it covers and one entries row per computed window. Pending
// windows are not stored and load back as pending.
package store
