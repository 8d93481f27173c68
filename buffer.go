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

import "github.com/pkg/errors"

// traceCell is one cell of the trace matrix. It shares CigarOp's packing
// (run length in the upper 28 bits, opcode in the low 4) since a trace cell
// and an emitted CIGAR element are the same shape.
type traceCell = CigarOp

// traceBaseSize is the smallest trace-matrix allocation; subsequent growth
// doubles from it. Most reads are short, so most Aligner instances never
// grow past it.
const traceBaseSize = 2048

// rowBaseSize is the smallest rolling-row allocation.
const rowBaseSize = 256

// buffers owns every piece of mutable, resizable state an Aligner sweeps
// during one alignment: the full trace matrix (Θ(m·n), routed through the
// allocator seam) and the rolling score/insertion rows (O(n), plain
// slices).
type buffers struct {
	trace      []traceCell
	traceCap   int // allocated length of trace, grown by doubling
	m, n       int // active dimensions: subquery length, subdb length

	vecPenPrev, vecPenCur []int32
	vecInsPrev, vecInsCur []int32
	iExtPrev, iExtCur     []uint32
}

func newBuffers() *buffers {
	return &buffers{}
}

// idx maps a (row, col) pair in the active m×n trace matrix to a flat index.
// Valid only after ensure has set b.n to the current alignment's subdb
// length — the stride varies call to call even though the backing slice's
// capacity only ever grows.
func (b *buffers) idx(row, col int) int {
	return row*(b.n+1) + col
}

func (b *buffers) getTrace(row, col int) traceCell {
	return b.trace[b.idx(row, col)]
}

func (b *buffers) setTrace(row, col int, c traceCell) {
	b.trace[b.idx(row, col)] = c
}

// ensure resizes the trace matrix and rolling rows for a new (m, n) pair,
// growing monotonically per dimension. Shrinking along either axis simply
// narrows the active window (b.m, b.n) into the existing, larger-capacity
// backing slices: buffers grow to the high-water mark and are not shrunk
// aggressively, which amortises allocation to near zero once a stream of
// short reads has warmed the Aligner up.
func (b *buffers) ensure(alloc Allocator, m, n int) error {
	needed := (m + 1) * (n + 1)
	if needed > b.traceCap {
		newCap := b.traceCap
		if newCap == 0 {
			newCap = traceBaseSize
		}
		for newCap < needed {
			newCap *= 2
		}
		grown, err := alloc.Realloc(b.trace, newCap)
		if err != nil {
			return errors.Wrap(ErrOutOfMemory, "resize trace matrix")
		}
		b.trace = grown
		b.traceCap = newCap
	}
	b.m, b.n = m, n

	b.vecPenPrev = ensureRow(b.vecPenPrev, n+1)
	b.vecPenCur = ensureRow(b.vecPenCur, n+1)
	b.vecInsPrev = ensureRow(b.vecInsPrev, n+1)
	b.vecInsCur = ensureRow(b.vecInsCur, n+1)
	b.iExtPrev = ensureUintRow(b.iExtPrev, n+1)
	b.iExtCur = ensureUintRow(b.iExtCur, n+1)
	return nil
}

func ensureRow(row []int32, n int) []int32 {
	if n <= cap(row) {
		return row[:n]
	}
	newCap := cap(row)
	if newCap == 0 {
		newCap = rowBaseSize
	}
	for newCap < n {
		newCap *= 2
	}
	grown := make([]int32, newCap)
	copy(grown, row)
	return grown[:n]
}

func ensureUintRow(row []uint32, n int) []uint32 {
	if n <= cap(row) {
		return row[:n]
	}
	newCap := cap(row)
	if newCap == 0 {
		newCap = rowBaseSize
	}
	for newCap < n {
		newCap *= 2
	}
	grown := make([]uint32, newCap)
	copy(grown, row)
	return grown[:n]
}

// swapRows exchanges the roles of the prev/cur rolling rows at the end of a
// DP row — the cur row just filled becomes prev for the next row.
func (b *buffers) swapRows() {
	b.vecPenPrev, b.vecPenCur = b.vecPenCur, b.vecPenPrev
	b.vecInsPrev, b.vecInsCur = b.vecInsCur, b.vecInsPrev
	b.iExtPrev, b.iExtCur = b.iExtCur, b.iExtPrev
}
