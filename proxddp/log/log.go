// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log provides the solver's structured, text-only iteration
// telemetry, grounded on the teacher's optimize.Settings.Recorder/Stats
// pattern but narrowed to a single Log(IterInfo) call writing one line of
// plain text per outer iteration, matching the "text telemetry only; no
// binary output" contract.
package log

import (
	"fmt"
	"io"
	"os"
)

// Verbosity selects how much per-iteration detail is written.
type Verbosity int

const (
	// Quiet writes nothing.
	Quiet Verbosity = iota
	// Verbose writes one line per AL (outer) iteration.
	Verbose
	// VeryVerbose additionally writes one line per inner Newton iteration.
	VeryVerbose
)

// IterInfo is one outer- or inner-iteration's telemetry snapshot.
type IterInfo struct {
	ALIter    int
	InnerIter int // 0 for an outer-iteration-level record
	Mu        float64
	Reg       float64
	PrimalInf float64
	DualInf   float64
	Merit     float64
	StepSize  float64
	Accepted  bool
}

// Logger writes IterInfo records as plain text to an io.Writer, filtered
// by Verbosity.
type Logger struct {
	Level Verbosity
	W     io.Writer
}

// New returns a Logger writing to os.Stderr at the given verbosity.
func New(level Verbosity) *Logger {
	return &Logger{Level: level, W: os.Stderr}
}

// Log writes info as one line of text if the logger's level admits it:
// outer-iteration records (InnerIter == 0) are written at Verbose and
// above, inner-iteration records only at VeryVerbose.
func (l *Logger) Log(info IterInfo) {
	if l == nil || l.Level == Quiet {
		return
	}
	if info.InnerIter != 0 && l.Level < VeryVerbose {
		return
	}
	if info.InnerIter == 0 {
		fmt.Fprintf(l.W, "al_iter=%-3d mu=%-10.3e reg=%-10.3e primal_inf=%-10.3e dual_inf=%-10.3e merit=%-10.3e step=%-8.3f accepted=%v\n",
			info.ALIter, info.Mu, info.Reg, info.PrimalInf, info.DualInf, info.Merit, info.StepSize, info.Accepted)
		return
	}
	fmt.Fprintf(l.W, "  inner=%-3d merit=%-10.3e step=%-8.3f accepted=%v\n",
		info.InnerIter, info.Merit, info.StepSize, info.Accepted)
}
