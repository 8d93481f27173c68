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

// cigarSlack is the extra room reserved in the CIGAR scratch buffer, split
// evenly between its two ends, for the clip operations SoftclipTrace/
// AppendSoftclip/AppendHardclip may prepend or append in place.
const cigarSlack = 4

// Trace walks the trace matrix from (subquery_len, opt_score_col) back
// to row 0, emitting a reverse CIGAR into a’s scratch buffer. Consecutive
// identical '=' or 'X' cells are absorbed into one run as they are walked;
// 'I' and 'D' cells are emitted as-is. The final reference column reached
// is recorded as Offset.
func (a *Aligner) Trace() error {
	m := len(a.subquery)
	n := len(a.subdb)

	need := m + n + cigarSlack
	if cap(a.cigar) < need {
		a.cigar = make([]CigarOp, need)
	} else {
		a.cigar = a.cigar[:need]
	}

	end := len(a.cigar) - cigarSlack/2
	pos := end
	row, col := m, a.optScoreCol

	for row > 0 {
		cell := a.buf.getTrace(row, col)
		switch cell.Op() {
		case OpEqual, OpMismatch:
			op := cell.Op()
			var total uint32
			for row > 0 && col > 0 {
				c := a.buf.getTrace(row, col)
				if c.Op() != op {
					break
				}
				l := c.Len()
				total += l
				row -= int(l)
				col -= int(l)
			}
			pos--
			a.cigar[pos] = NewCigarOp(op, total)
		case OpI:
			l := cell.Len()
			row -= int(l)
			pos--
			a.cigar[pos] = cell
		case OpD:
			l := cell.Len()
			col -= int(l)
			pos--
			a.cigar[pos] = cell
		default:
			return errors.Wrapf(ErrCorruptTrace, "Trace: opcode %d at (row=%d, col=%d)", cell.Op(), row, col)
		}
	}

	a.offset = col
	a.cigarBegin = pos
	a.cigarEnd = end
	return nil
}
