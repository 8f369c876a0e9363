// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogQuietWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Level: Quiet, W: &buf}
	l.Log(IterInfo{ALIter: 1})
	if buf.Len() != 0 {
		t.Errorf("Quiet logger wrote %q, want nothing", buf.String())
	}
}

func TestLogVerboseWritesOuterOnly(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Level: Verbose, W: &buf}
	l.Log(IterInfo{ALIter: 2, Mu: 0.1})
	l.Log(IterInfo{ALIter: 2, InnerIter: 3})
	out := buf.String()
	if !strings.Contains(out, "al_iter=2") {
		t.Errorf("missing outer-iteration line: %q", out)
	}
	if strings.Contains(out, "inner=3") {
		t.Errorf("Verbose level should not write inner-iteration lines: %q", out)
	}
}

func TestLogVeryVerboseWritesInner(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Level: VeryVerbose, W: &buf}
	l.Log(IterInfo{ALIter: 1, InnerIter: 2, StepSize: 0.5})
	if !strings.Contains(buf.String(), "inner=2") {
		t.Errorf("missing inner-iteration line: %q", buf.String())
	}
}

func TestLogNilLoggerNoop(t *testing.T) {
	var l *Logger
	l.Log(IterInfo{ALIter: 1})
}
