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

import (
	"strings"

	"github.com/pkg/errors"
)

// ShowCigar renders the current CIGAR as the concatenation of
// decimal-length + opcode-letter pairs, e.g. "3=1X2=", with no separator
// between elements — the conventional SAM/BAM rendering.
func (a *Aligner) ShowCigar() string {
	var b strings.Builder
	for _, c := range a.CigarOps() {
		b.WriteString(c.String())
	}
	return b.String()
}

// AlignmentStart maps Offset, which is relative to subdb, into an
// absolute coordinate in a larger reference numbering scheme: base is the
// caller's own coordinate origin (e.g. a contig start), and
// (subdb - db) is the head-clip this Aligner's db view was prepared with.
func (a *Aligner) AlignmentStart(base int) int {
	start := base
	if start < 0 {
		start = 0
	}
	return start + a.offset + a.dbHead
}

// ParseCigar decodes a textual CIGAR such as "3=1X2=" into packed elements.
// All nine SAM opcodes are accepted, including N, which the engine itself
// never emits.
func ParseCigar(s string) ([]CigarOp, error) {
	var ops []CigarOp
	var length uint32
	var haveLen bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			length = length*10 + uint32(c-'0')
			haveLen = true
			continue
		}
		op, ok := opFromByte(c)
		if !ok || !haveLen {
			return nil, errors.Wrapf(ErrInvalidArgument, "ParseCigar: bad element at byte %d of %q", i, s)
		}
		ops = append(ops, NewCigarOp(op, length))
		length, haveLen = 0, false
	}
	if haveLen {
		return nil, errors.Wrapf(ErrInvalidArgument, "ParseCigar: trailing length in %q", s)
	}
	return ops, nil
}

// Result is an immutable snapshot of one alignment's score, offset, and
// CIGAR, decoupled from the Aligner so it can outlive the next Prepare/
// Align/Trace call on the same instance.
type Result struct {
	Score  int32
	Offset int
	Cigar  []CigarOp
}

// Snapshot copies the Aligner's current score/offset/CIGAR into a Result
// the caller can keep around after the Aligner is reused for another pair.
func (a *Aligner) Snapshot() Result {
	ops := a.CigarOps()
	cigar := make([]CigarOp, len(ops))
	copy(cigar, ops)
	return Result{
		Score:  a.optScore,
		Offset: a.offset,
		Cigar:  cigar,
	}
}

// ShowCigar renders r's CIGAR the same way Aligner.ShowCigar does.
func (r Result) ShowCigar() string {
	var b strings.Builder
	for _, c := range r.Cigar {
		b.WriteString(c.String())
	}
	return b.String()
}
