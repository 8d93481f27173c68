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

// Align runs the DP over the currently prepared subdb/subquery and returns
// the minimum score found in the last row. semi selects semiglobal-on-
// reference mode (free start/end within the reference) over global (the
// alignment must consume the reference from column 0).
func (a *Aligner) Align(semi bool) (int32, error) {
	m, n := len(a.subquery), len(a.subdb)
	if m == 0 || n == 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "Align: empty subquery (%d) or subdb (%d)", m, n)
	}
	if err := a.buf.ensure(a.alloc, m, n); err != nil {
		return 0, err
	}

	if semi {
		a.initSemiglobal()
	} else {
		a.initGlobal()
	}
	for row := 1; row <= m; row++ {
		a.fillRow(row)
		a.buf.swapRows()
	}
	a.locateOptimum()
	return a.optScore, nil
}

// initGlobal seeds row 0 forcing the alignment to consume the
// reference from its start: cell (0, n) costs as if n deletions had
// accumulated, one gap-extend each.
func (a *Aligner) initGlobal() {
	n := len(a.subdb)
	q0 := a.qualityAt(0)
	gext := a.penalties.GapExtend // deletion costs are raw scalars, not quality-indexed — see fillRow

	a.buf.vecPenPrev[0] = 0
	a.buf.setTrace(0, 0, NewCigarOp(OpEqual, 0))
	for col := 1; col <= n; col++ {
		a.buf.vecPenPrev[col] = a.buf.vecPenPrev[col-1] + gext
		a.buf.setTrace(0, col, NewCigarOp(OpD, uint32(col)))
	}
	a.seedInsertionRow(q0)
}

// initSemiglobal seeds row 0 allowing the alignment to begin at any
// reference column without penalty; the skipped prefix is still recorded
// per-column as a deletion run so a traceback landing off-column-0 in row 0
// can reconstruct it.
func (a *Aligner) initSemiglobal() {
	n := len(a.subdb)
	q0 := a.qualityAt(0)

	a.buf.vecPenPrev[0] = 0
	a.buf.setTrace(0, 0, NewCigarOp(OpEqual, 0))
	for col := 1; col <= n; col++ {
		a.buf.vecPenPrev[col] = 0
		a.buf.setTrace(0, col, NewCigarOp(OpD, uint32(col)))
	}
	a.seedInsertionRow(q0)
}

// seedInsertionRow seeds the row-0 insertion row so that an insertion
// descending into row 1 pays the full open cost on its first step.
func (a *Aligner) seedInsertionRow(q0 int) {
	n := len(a.subdb)
	delta := a.tables.GapOpen[q0] - a.tables.GapExt[q0]
	for col := 0; col <= n; col++ {
		a.buf.vecInsPrev[col] = a.buf.vecPenPrev[col] + delta
		a.buf.iExtPrev[col] = 0
	}
}

// fillRow computes one row of the inverse-score affine-gap recurrence:
// for each cell, the best of opening/extending a deletion, opening/
// extending an insertion, and a diagonal match/mismatch move, with ties
// broken in favor of extension over opening, and a per-cell trace written
// in favor of match over insertion over deletion.
func (a *Aligner) fillRow(row int) {
	buf := a.buf
	n := len(a.subdb)
	cq := a.subquery[row-1]
	q := a.qualityAt(row - 1)

	gapOpenExtend := a.penalties.GapOpenExtend
	gext := a.penalties.GapExtend
	gopenQ := a.tables.GapOpen[q]
	gextQ := a.tables.GapExt[q]

	// Left edge: only a vertical (insertion) move is possible.
	cI := buf.iExtPrev[0] + 1
	penCol0 := buf.vecInsPrev[0] + gextQ
	buf.vecPenCur[0] = penCol0
	buf.vecInsCur[0] = penCol0
	buf.iExtCur[0] = cI
	buf.setTrace(row, 0, NewCigarOp(OpI, cI))
	storedDel := penCol0 + (gapOpenExtend - gext)
	delRun := uint32(0)

	for col := 1; col <= n; col++ {
		cr := a.subdb[col-1]

		wDOpen := buf.vecPenCur[col-1] + gapOpenExtend
		wDExtend := storedDel + gext
		var wD int32
		var cD uint32
		if wDExtend <= wDOpen {
			wD = wDExtend
			cD = delRun + 1
		} else {
			wD = wDOpen
			cD = 1
		}

		wIOpen := buf.vecPenPrev[col] + gopenQ
		wIExtend := buf.vecInsPrev[col] + gextQ
		var wI int32
		var cIRun uint32
		if wIExtend <= wIOpen {
			wI = wIExtend
			cIRun = buf.iExtPrev[col] + 1
		} else {
			wI = wIOpen
			cIRun = 1
		}

		var matchCost int32
		if isMatch(cr, cq) {
			matchCost = a.tables.Match[q]
		} else {
			matchCost = a.tables.Mismatch[q]
		}
		wM := buf.vecPenPrev[col-1] + matchCost

		var cell int32
		switch {
		case wM <= wI && wM <= wD:
			cell = wM
			if isMatch(cr, cq) {
				buf.setTrace(row, col, NewCigarOp(OpEqual, 1))
			} else {
				buf.setTrace(row, col, NewCigarOp(OpMismatch, 1))
			}
		case wI <= wD:
			cell = wI
			buf.setTrace(row, col, NewCigarOp(OpI, cIRun))
		default:
			cell = wD
			buf.setTrace(row, col, NewCigarOp(OpD, cD))
		}

		buf.vecPenCur[col] = cell
		buf.vecInsCur[col] = wI
		buf.iExtCur[col] = cIRun
		storedDel = wD
		delRun = cD
	}
}

// locateOptimum scans the last filled row left to right and records the
// smallest score and its column, first occurrence winning ties.
func (a *Aligner) locateOptimum() {
	row := a.buf.vecPenPrev // holds the last row after the final swapRows
	best := row[0]
	bestCol := 0
	for col := 1; col < len(row); col++ {
		if row[col] < best {
			best = row[col]
			bestCol = col
		}
	}
	a.optScore = best
	a.optScoreCol = bestCol
}
