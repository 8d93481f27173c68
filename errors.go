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

// The three error kinds the engine ever returns. Callers distinguish them
// with errors.Is; call sites wrap these with errors.Wrapf to attach which
// operation and which argument failed.
var (
	// ErrOutOfMemory is returned when the allocator fails to grow the trace
	// matrix. The Aligner remains destroyable afterward, but its
	// dimensions may be left at an intermediate size — a subsequent Prepare
	// must not assume the last requested dimensions were reached.
	ErrOutOfMemory = errors.New("qxalign: allocation failed")

	// ErrInvalidArgument is returned up front, with no side effects, for
	// malformed preparation or alignment requests (clip lengths exceeding
	// a sequence, mismatched quality length, zero-length subdb/subquery).
	ErrInvalidArgument = errors.New("qxalign: invalid argument")

	// ErrCorruptTrace is returned by Trace when it encounters a trace cell
	// carrying an opcode outside {=, X, I, D}. It indicates a bug in the DP
	// core, not a caller error, and aborts only the current traceback.
	ErrCorruptTrace = errors.New("qxalign: corrupt trace cell")
)
