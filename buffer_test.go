// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package qxalign

import "testing"

func TestBuffersGrowMonotonically(t *testing.T) {
	b := newBuffers()
	alloc := defaultAllocator{}

	if err := b.ensure(alloc, 3, 3); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	firstCap := b.traceCap
	if firstCap < traceBaseSize {
		t.Errorf("trace capacity %d below base chunk size %d", firstCap, traceBaseSize)
	}

	if err := b.ensure(alloc, 2, 2); err != nil {
		t.Fatalf("ensure (shrink): %v", err)
	}
	if b.traceCap != firstCap {
		t.Errorf("shrinking changed allocated capacity: %d -> %d", firstCap, b.traceCap)
	}
	if b.m != 2 || b.n != 2 {
		t.Errorf("active dims after shrink = (%d,%d), want (2,2)", b.m, b.n)
	}

	big := traceBaseSize * 2
	if err := b.ensure(alloc, big, big); err != nil {
		t.Fatalf("ensure (grow past base chunk): %v", err)
	}
	if b.traceCap <= firstCap {
		t.Errorf("capacity did not grow for a larger request: %d", b.traceCap)
	}
	if b.traceCap < (big+1)*(big+1) {
		t.Errorf("capacity %d too small for (%d+1)^2 cells", b.traceCap, big)
	}
}

func TestBuffersIndexing(t *testing.T) {
	b := newBuffers()
	alloc := defaultAllocator{}
	if err := b.ensure(alloc, 2, 3); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	c := NewCigarOp(OpEqual, 5)
	b.setTrace(1, 2, c)
	if got := b.getTrace(1, 2); got != c {
		t.Errorf("getTrace(1,2) = %v, want %v", got, c)
	}
	if got := b.getTrace(0, 0); got != 0 {
		t.Errorf("getTrace(0,0) = %v, want zero value on a fresh buffer", got)
	}
}

func TestRollingRowsGrowAndPreserveContent(t *testing.T) {
	row := ensureRow(nil, 4)
	row[0], row[3] = 7, 9
	grown := ensureRow(row, 10)
	if grown[0] != 7 || grown[3] != 9 {
		t.Errorf("ensureRow did not preserve existing content on growth: %v", grown)
	}
	if len(grown) != 10 {
		t.Errorf("len(grown) = %d, want 10", len(grown))
	}
}
