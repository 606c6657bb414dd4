// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for CSR construction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strict validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Every instance owns its settings; nothing is shared between matrices.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package sparse

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the zero threshold used at construction: a dense cell
	// is stored iff |v| > tolerance. Zero keeps every non-zero cell.
	DefaultTolerance = 0.0

	// DefaultValidateNaNInf rejects NaN and ±Inf at construction and in ChangeValue.
	DefaultValidateNaNInf = true
)

const panicToleranceInvalid = "sparse: WithTolerance: tolerance must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	tol            float64 // >= 0; DefaultTolerance
	validateNaNInf bool    // DefaultValidateNaNInf
}

// WithTolerance sets the construction threshold.
// Implementation:
//   - Stage 1: validate tol is finite and ≥ 0.
//   - Stage 2: return a setter writing tol into Options.
//
// Behavior highlights:
//   - A cell exactly equal to tol is excluded (strict > comparison).
//   - Tolerance is fixed for the lifetime of the matrix; ChangeValue removes
//     only exact zeros.
//
// Errors:
//   - Panics with a stable message when tol is negative, NaN or ±Inf.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation on construction and mutation.
// NaN cells are then stored as-is (NaN is never <= tolerance).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// gatherOptions applies setters on top of the defaults, last-writer-wins.
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		tol:            DefaultTolerance,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
