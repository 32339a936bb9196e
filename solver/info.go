// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "time"

// ExitCode classifies how a Solve call ended.
type ExitCode int

const (
	// ExitConverged: the residual norm fell below the requested tolerance.
	ExitConverged ExitCode = 0
	// ExitMaxIterations: maxit was reached without reaching tol; e still
	// holds the best iterate found, which callers may choose to accept.
	ExitMaxIterations ExitCode = 1
	// ExitDiverged: the residual norm grew past the divergence threshold.
	ExitDiverged ExitCode = 2
	// ExitStagnated: successive residual norms stopped improving.
	ExitStagnated ExitCode = 3
	// ExitInvalidInput: Config.Validate (or an equivalent precondition)
	// failed before any iteration ran.
	ExitInvalidInput ExitCode = -1
	// ExitInternalError: an unexpected failure inside a Krylov back end.
	ExitInternalError ExitCode = -2
)

// String names an exit code for logging.
func (o ExitCode) String() string {
	switch o {
	case ExitConverged:
		return "converged"
	case ExitMaxIterations:
		return "max-iterations"
	case ExitDiverged:
		return "diverged"
	case ExitStagnated:
		return "stagnated"
	case ExitInvalidInput:
		return "invalid-input"
	case ExitInternalError:
		return "internal-error"
	default:
		return "unknown"
	}
}

// Info collects the telemetry of one Solve call: a run-record of
// multigrid residual histories and exit status.
type Info struct {
	Exit ExitCode

	// Residuals is the ℓ2 residual norm after every outer iteration,
	// index 0 being the norm of the initial residual.
	Residuals []float64

	// NormRHS is ‖b‖, fixed once at the start of the solve. Convergence
	// is measured relative to this, not to the initial residual: with a
	// caller-supplied e0 the two differ, and ‖b‖ is the reference that
	// does not move as e0 changes.
	NormRHS float64

	// RdirHistory/LdirHistory record the semicoarsening/line-relaxation
	// code used on each outer iteration.
	RdirHistory []int
	LdirHistory []int

	OuterIterations int
	InnerIterations int // Krylov matvecs, when an SSLSolver is active

	WallTime time.Duration
}

// converged reports whether the latest residual satisfies tol relative to
// ‖b‖ (NormRHS), not the initial residual.
func (o *Info) converged(tol float64) bool {
	n := len(o.Residuals)
	if n < 2 {
		return false
	}
	return o.Residuals[n-1] <= tol*o.NormRHS
}

// diverged reports whether the residual has grown beyond ten times its
// initial value.
func (o *Info) diverged() bool {
	n := len(o.Residuals)
	if n < 2 {
		return false
	}
	return o.Residuals[n-1] > 10*o.Residuals[0]
}

// stagnated reports whether the last three residual reductions each made
// less than 1% progress, signalling the cycle is no longer helping: a
// looser window than a strict single-step ‖r‖_k ≥ ‖r‖_{k-1} test, chosen
// to avoid tripping on one noisy iteration inside an otherwise-converging
// run.
func (o *Info) stagnated() bool {
	n := len(o.Residuals)
	if n < 4 {
		return false
	}
	for i := n - 3; i < n; i++ {
		if o.Residuals[i] < 0.99*o.Residuals[i-1] {
			return false
		}
	}
	return true
}
