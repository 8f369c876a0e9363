// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workpool provides the fixed-size fork-join task pool used by the
// solver's per-stage evaluate/computeDerivatives sweep (the parallel
// Riccati leg dispatch in gar does not use it). It is deliberately simpler
// than a general-purpose scheduler: a Pool is created once per Solver and
// only records its worker count; each Run call starts one goroutine per
// span, at most that many at a time, so no goroutines persist between
// calls. Tasks own disjoint index ranges and disjoint workspace slices,
// and a Run call is a hard barrier — it returns only once every
// dispatched task has completed, matching the "no coroutines, no
// suspension" and "each outer iteration is a barrier" rules of the
// concurrency model. The goroutine fan-out itself is grounded on the
// worker/dispatch loop in the teacher's optimize.minimizeGlobal, simplified
// here because reductions across tasks are always explicit in the caller
// rather than combined by the pool.
package workpool

import (
	"runtime"
	"sync"
)

// Pool bounds how many span tasks run at once; it holds no goroutines of
// its own between Run calls. The zero value is not usable; construct one
// with New.
type Pool struct {
	n int
}

// New returns a Pool sized to n workers. If n <= 0, runtime.GOMAXPROCS(0) is
// used, matching the solver's "num_threads configured at solve start"
// contract (spec.md §5) with a sane default.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return &Pool{n: n}
}

// NumWorkers returns the configured worker count.
func (p *Pool) NumWorkers() int { return p.n }

// Span is a contiguous, exclusive range of indices [Lo, Hi) assigned to one
// task, per spec.md's make_span_from_indices.
type Span struct {
	Lo, Hi int
}

// Len returns the number of indices in the span.
func (s Span) Len() int { return s.Hi - s.Lo }

// MakeSpans splits [0, n) into at most nWorkers contiguous, disjoint spans
// of near-equal size. It never returns more spans than nWorkers, and never
// an empty span.
func MakeSpans(n, nWorkers int) []Span {
	if nWorkers > n {
		nWorkers = n
	}
	if nWorkers <= 0 {
		return nil
	}
	spans := make([]Span, 0, nWorkers)
	base := n / nWorkers
	rem := n % nWorkers
	lo := 0
	for i := 0; i < nWorkers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		spans = append(spans, Span{Lo: lo, Hi: lo + size})
		lo += size
	}
	return spans
}

// Run dispatches fn(span) for each span on the pool and blocks until every
// call has returned. It is a barrier: no span's task observes any other
// span's result, matching "no inter-task dependencies" within a parallel
// region.
func (p *Pool) Run(spans []Span, fn func(Span)) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.n)
	wg.Add(len(spans))
	for _, s := range spans {
		sem <- struct{}{}
		go func(s Span) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(s)
		}(s)
	}
	wg.Wait()
}
