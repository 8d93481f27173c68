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

import "math"

// qualityRange is the Sanger PHRED range this engine indexes penalty tables
// over: 0..93 inclusive.
const qualityRange = 94

// qN is the per-base error contribution of an ambiguous ("N") base call,
// -10*log10(0.75), folded into the quality-weight curve below.
var qN = -10 * math.Log10(0.75)

// Penalties is the four scalar costs an Aligner is configured with. All four
// are costs to minimize, including match: a caller porting a conventional
// maximize-score scheme (e.g. match = -10) hands its scalars in unmodified;
// a negative scalar yields table entries below the +10 floor, and below
// zero at high quality once the scalar is under -10.
type Penalties struct {
	Match         int32
	Mismatch      int32
	GapOpenExtend int32
	GapExtend     int32
}

// PenaltyTables holds four quality-indexed cost tables, one entry per PHRED
// value in [0, qualityRange). Built once at construction and rebuilt whenever
// the four scalars change.
type PenaltyTables struct {
	Match    [qualityRange]int32
	Mismatch [qualityRange]int32
	GapOpen  [qualityRange]int32
	GapExt   [qualityRange]int32
}

// buildPenaltyTables is a pure function of the four scalars: low-quality
// positions are cheap to edit, high-quality positions are costly to edit,
// and the +10 floor keeps q=0 from costing nothing at all.
func buildPenaltyTables(p Penalties) *PenaltyTables {
	t := &PenaltyTables{}
	for q := 0; q < qualityRange; q++ {
		w := weight(q)
		t.Match[q] = scaledCost(w, p.Match)
		t.Mismatch[q] = scaledCost(w, p.Mismatch)
		t.GapOpen[q] = scaledCost(w, p.GapOpenExtend)
		t.GapExt[q] = scaledCost(w, p.GapExtend)
	}
	return t
}

// weight computes w(q) = 1 - 10^(-(q+qN)/10), the fraction of the scalar
// penalty a base at this quality actually incurs.
func weight(q int) float64 {
	return 1 - math.Pow(10, -(float64(q)+qN)/10)
}

func scaledCost(w float64, scalar int32) int32 {
	return 10 + int32(math.Round(w*float64(scalar)))
}
