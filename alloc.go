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

// Allocator backs the trace matrix, the dominant memory cost of an Aligner.
// Tests substitute a fake implementation to force ErrOutOfMemory
// deterministically, since a real allocation failure is not reliably
// observable from inside a garbage-collected process.
type Allocator interface {
	// Alloc returns a zeroed slice of length n.
	Alloc(n int) ([]traceCell, error)
	// Realloc returns a slice of length n whose prefix equal to
	// min(n, len(old)) is copied from old; the remainder is zeroed.
	Realloc(old []traceCell, n int) ([]traceCell, error)
	// Free releases buf. The default allocator treats this as a no-op and
	// lets the garbage collector reclaim it.
	Free(buf []traceCell)
}

// defaultAllocator backs New unless the caller supplies its own via
// NewWithAllocator.
type defaultAllocator struct{}

func (defaultAllocator) Alloc(n int) ([]traceCell, error) {
	return make([]traceCell, n), nil
}

func (defaultAllocator) Realloc(old []traceCell, n int) ([]traceCell, error) {
	buf := make([]traceCell, n)
	copy(buf, old)
	return buf, nil
}

func (defaultAllocator) Free(buf []traceCell) {}
