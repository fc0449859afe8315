// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Each flag is per-instance and fixed at construction.
package matrix

// Defaults (single source of truth).
const (
	// DefaultAllowInf permits +Inf under validation.
	DefaultAllowInf = false
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	allowInf bool // DefaultAllowInf
}

// WithAllowInf permits +Inf entries. NaN and -Inf remain rejected.
func WithAllowInf() Option {
	return func(o *Options) { o.allowInf = true }
}

// gatherOptions resolves opts over the documented defaults.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := Options{allowInf: DefaultAllowInf}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
