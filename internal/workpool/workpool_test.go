// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package workpool

import (
	"sync/atomic"
	"testing"
)

func TestMakeSpansCoversExactlyOnce(t *testing.T) {
	for _, test := range []struct {
		n, workers int
	}{
		{20, 4}, {21, 4}, {3, 8}, {1, 4}, {0, 4},
	} {
		spans := MakeSpans(test.n, test.workers)
		covered := make([]bool, test.n)
		for _, s := range spans {
			if s.Len() == 0 {
				t.Errorf("n=%d workers=%d: empty span", test.n, test.workers)
			}
			for i := s.Lo; i < s.Hi; i++ {
				if covered[i] {
					t.Fatalf("n=%d workers=%d: index %d covered twice", test.n, test.workers, i)
				}
				covered[i] = true
			}
		}
		for i, ok := range covered {
			if !ok {
				t.Errorf("n=%d workers=%d: index %d never covered", test.n, test.workers, i)
			}
		}
	}
}

func TestPoolRunVisitsEverySpan(t *testing.T) {
	p := New(4)
	spans := MakeSpans(17, 4)
	var count int64
	p.Run(spans, func(s Span) {
		atomic.AddInt64(&count, int64(s.Len()))
	})
	if count != 17 {
		t.Fatalf("got %d want 17", count)
	}
}
