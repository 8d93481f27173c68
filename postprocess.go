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

// SoftclipTrace converts leading/trailing non-match
// edits into soft clips. From the right it sums trailing X and I lengths up
// to the first '=' (passing over H and D, neither of which consumes a query
// base) and collapses them into one trailing S. From the left it does the
// symmetric sum, additionally advancing Offset by the length of each D and
// X it skips, since those consumed reference that now precedes the clipped
// start.
func (a *Aligner) SoftclipTrace() {
	a.softclipRight()
	a.softclipLeft()
}

func (a *Aligner) softclipLeft() {
	i := a.cigarBegin
	for i < a.cigarEnd && a.cigar[i].Op() == OpH {
		i++
	}
	hasLeadingH := i > a.cigarBegin
	var sum uint32
	for i < a.cigarEnd {
		op := a.cigar[i].Op()
		if op == OpEqual {
			break
		}
		l := a.cigar[i].Len()
		switch op {
		case OpMismatch:
			sum += l
			a.offset += int(l)
		case OpI:
			sum += l
		case OpD:
			a.offset += int(l)
		}
		i++
	}
	if sum == 0 {
		return
	}
	newStart := i - 1
	a.cigar[newStart] = NewCigarOp(OpS, sum)
	if !hasLeadingH {
		a.cigarBegin = newStart
		return
	}
	a.cigar[newStart-1] = a.cigar[a.cigarBegin]
	a.cigarBegin = newStart - 1
}

func (a *Aligner) softclipRight() {
	i := a.cigarEnd
	for i > a.cigarBegin && a.cigar[i-1].Op() == OpH {
		i--
	}
	hasTrailingH := i < a.cigarEnd
	end := i
	var sum uint32
	for i > a.cigarBegin {
		op := a.cigar[i-1].Op()
		if op == OpEqual {
			break
		}
		switch op {
		case OpMismatch, OpI:
			sum += a.cigar[i-1].Len()
		}
		i--
	}
	if sum == 0 {
		return
	}
	newEnd := i + 1
	a.cigar[newEnd-1] = NewCigarOp(OpS, sum)
	if !hasTrailingH {
		a.cigarEnd = newEnd
		return
	}
	a.cigar[newEnd] = a.cigar[end]
	a.cigarEnd = newEnd + 1
}

// refConsumed sums the lengths of all reference-consuming ops in the
// current CIGAR slice.
func (a *Aligner) refConsumed() int {
	var total uint32
	for _, c := range a.cigar[a.cigarBegin:a.cigarEnd] {
		if c.Op().consumesRef() {
			total += c.Len()
		}
	}
	return int(total)
}

// AppendSoftclip represents the query regions trimmed
// by PrepareQuery's head/tail clip as leading/trailing soft clips. If the
// CIGAR already begins/ends in S, its length is simply extended. If it
// begins/ends in a match run, AppendSoftclip first tries to contract the
// clip by walking backward/forward comparing clipped query bases against
// the reference immediately outside the aligned region — each matching
// pair grows the match run and shrinks the clip. Remaining clip bases are
// prepended/appended as a single S.
func (a *Aligner) AppendSoftclip() {
	a.appendLeadingSoftclip()
	a.appendTrailingSoftclip()
}

func (a *Aligner) appendLeadingSoftclip() {
	clip := a.qHead
	if clip == 0 {
		return
	}
	first := a.cigar[a.cigarBegin].Op()
	if first == OpS {
		c := a.cigar[a.cigarBegin]
		a.cigar[a.cigarBegin] = c.withLen(c.Len() + uint32(clip))
		return
	}

	var matched uint32
	if first == OpEqual || first == OpM {
		for clip > 0 && a.offset > 0 {
			qb := a.query[a.qHead-int(matched)-1]
			rb := a.subdb[a.offset-1]
			if !isMatch(rb, qb) {
				break
			}
			matched++
			clip--
			a.offset--
		}
		if matched > 0 {
			c := a.cigar[a.cigarBegin]
			a.cigar[a.cigarBegin] = c.withLen(c.Len() + matched)
		}
	}
	if clip > 0 {
		a.cigarBegin--
		a.cigar[a.cigarBegin] = NewCigarOp(OpS, uint32(clip))
	}
}

func (a *Aligner) appendTrailingSoftclip() {
	clip := a.qTail
	if clip == 0 {
		return
	}
	lastIdx := a.cigarEnd - 1
	last := a.cigar[lastIdx].Op()
	if last == OpS {
		c := a.cigar[lastIdx]
		a.cigar[lastIdx] = c.withLen(c.Len() + uint32(clip))
		return
	}

	refEnd := a.offset + a.refConsumed()
	var matched uint32
	if last == OpEqual || last == OpM {
		for clip > 0 && refEnd+int(matched) < len(a.subdb) {
			qb := a.query[a.qHead+len(a.subquery)+int(matched)]
			rb := a.subdb[refEnd+int(matched)]
			if !isMatch(rb, qb) {
				break
			}
			matched++
			clip--
		}
		if matched > 0 {
			c := a.cigar[lastIdx]
			a.cigar[lastIdx] = c.withLen(c.Len() + matched)
		}
	}
	if clip > 0 {
		a.cigarEnd++
		a.cigar[a.cigarEnd-1] = NewCigarOp(OpS, uint32(clip))
	}
}

// AppendHardclip merges with an existing leading/
// trailing H or prepends/appends a new one. Hard clips never consume query
// bases and are never contracted — head and tail are applied independently,
// so AppendHardclip(h, 0) followed by AppendHardclip(0, t) is equivalent to
// one call to AppendHardclip(h, t).
func (a *Aligner) AppendHardclip(head, tail uint32) {
	if head > 0 {
		if a.cigar[a.cigarBegin].Op() == OpH {
			c := a.cigar[a.cigarBegin]
			a.cigar[a.cigarBegin] = c.withLen(c.Len() + head)
		} else {
			a.cigarBegin--
			a.cigar[a.cigarBegin] = NewCigarOp(OpH, head)
		}
	}
	if tail > 0 {
		lastIdx := a.cigarEnd - 1
		if a.cigar[lastIdx].Op() == OpH {
			c := a.cigar[lastIdx]
			a.cigar[lastIdx] = c.withLen(c.Len() + tail)
		} else {
			a.cigarEnd++
			a.cigar[a.cigarEnd-1] = NewCigarOp(OpH, tail)
		}
	}
}

// CompactTrace coalesces every maximal run of '=' and
// 'X' elements into a single M, leaving I, D, S, H untouched. Running it
// twice is a no-op the second time: no two adjacent '='/'X' elements
// survive the first pass.
func (a *Aligner) CompactTrace() {
	src := a.cigar[a.cigarBegin:a.cigarEnd]
	write := 0
	i := 0
	for i < len(src) {
		op := src[i].Op()
		if op == OpEqual || op == OpMismatch {
			var sum uint32
			for i < len(src) {
				o := src[i].Op()
				if o != OpEqual && o != OpMismatch {
					break
				}
				sum += src[i].Len()
				i++
			}
			src[write] = NewCigarOp(OpM, sum)
			write++
			continue
		}
		src[write] = src[i]
		write++
		i++
	}
	a.cigarEnd = a.cigarBegin + write
}
