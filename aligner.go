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

// Package qxalign implements a quality-aware pairwise aligner for short
// reads against a reference window, under an affine-gap scoring model in
// which match/mismatch/gap costs are modulated by the query's per-base
// PHRED quality. It emits a SAM/BAM-style CIGAR run-length edit script and
// the reference offset the alignment begins at.
package qxalign

import "github.com/pkg/errors"

// defaultPhredOffset is the conventional Sanger/Illumina 1.8+ ASCII base.
const defaultPhredOffset = 33

// Aligner is the single long-lived object this package exposes. Construct
// one with New, reuse it across many (reference, query) pairs by calling
// Prepare/Align/Trace repeatedly. An Aligner is not safe for concurrent use:
// it owns mutable rolling buffers, a growing trace matrix, and CIGAR scratch
// space, all touched non-atomically — create one Aligner per goroutine.
// Independent Aligner values in different goroutines are safe.
type Aligner struct {
	penalties   Penalties
	tables      *PenaltyTables
	phredOffset byte

	alloc Allocator
	buf   *buffers

	db             []byte
	dbHead, dbTail int
	subdb          []byte

	query, qual    []byte
	qHead, qTail   int
	subquery       []byte
	subqual        []byte

	optScore    int32
	optScoreCol int
	offset      int

	cigar                []CigarOp
	cigarBegin, cigarEnd int
}

// New constructs an Aligner with the given four scalar penalties, backed by
// the default (plain make/append) allocator.
func New(match, mismatch, gapOpenExtend, gapExtend int32) *Aligner {
	return NewWithAllocator(match, mismatch, gapOpenExtend, gapExtend, defaultAllocator{})
}

// NewWithAllocator is New, but routes the trace matrix's allocations through
// alloc. Tests use this to inject allocation failures deterministically.
func NewWithAllocator(match, mismatch, gapOpenExtend, gapExtend int32, alloc Allocator) *Aligner {
	a := &Aligner{
		phredOffset: defaultPhredOffset,
		alloc:       alloc,
		buf:         newBuffers(),
	}
	a.SetPenalties(match, mismatch, gapOpenExtend, gapExtend)
	return a
}

// SetPhredOffset changes the ASCII offset subtracted from incoming quality
// bytes before indexing the penalty tables. It takes effect the next time
// Align runs — qualities are reinterpreted at alignment time, not at
// preparation time.
func (a *Aligner) SetPhredOffset(offset byte) {
	a.phredOffset = offset
}

// SetPenalties reinitialises the four quality-indexed penalty tables from
// new scalar costs. All four are costs to minimize; see Penalties.
func (a *Aligner) SetPenalties(match, mismatch, gapOpenExtend, gapExtend int32) {
	a.penalties = Penalties{
		Match:         match,
		Mismatch:      mismatch,
		GapOpenExtend: gapOpenExtend,
		GapExtend:     gapExtend,
	}
	a.tables = buildPenaltyTables(a.penalties)
}

// PrepareDB installs the reference window to align against. headClip and
// tailClip trim a hard-clipped prefix/suffix the engine never sees; the
// engine aligns only the interior [headClip, len(ref)-tailClip).
func (a *Aligner) PrepareDB(ref []byte, headClip, tailClip int) error {
	if headClip < 0 || tailClip < 0 || headClip+tailClip > len(ref) {
		return errors.Wrapf(ErrInvalidArgument, "PrepareDB: head=%d tail=%d exceeds len=%d", headClip, tailClip, len(ref))
	}
	a.db = ref
	a.dbHead, a.dbTail = headClip, tailClip
	a.subdb = ref[headClip : len(ref)-tailClip]
	return nil
}

// PrepareQuery installs the query and its per-base qualities, with the same
// head/tail hard-clip convention as PrepareDB. qual must be the same length
// as query.
func (a *Aligner) PrepareQuery(query, qual []byte, headClip, tailClip int) error {
	if headClip < 0 || tailClip < 0 || headClip+tailClip > len(query) {
		return errors.Wrapf(ErrInvalidArgument, "PrepareQuery: head=%d tail=%d exceeds len=%d", headClip, tailClip, len(query))
	}
	if len(qual) != len(query) {
		return errors.Wrapf(ErrInvalidArgument, "PrepareQuery: quality length %d does not match query length %d", len(qual), len(query))
	}
	a.query, a.qual = query, qual
	a.qHead, a.qTail = headClip, tailClip
	a.subquery = query[headClip : len(query)-tailClip]
	a.subqual = qual[headClip : len(qual)-tailClip]
	return nil
}

// Prepare is the combined form of PrepareDB and PrepareQuery.
func (a *Aligner) Prepare(ref, query, qual []byte, dbHead, dbTail, qHead, qTail int) error {
	if err := a.PrepareDB(ref, dbHead, dbTail); err != nil {
		return err
	}
	return a.PrepareQuery(query, qual, qHead, qTail)
}

// Offset returns the column in subdb where the alignment begins, valid
// after Trace.
func (a *Aligner) Offset() int { return a.offset }

// OptimalScore returns the minimum score Align found in the last row.
func (a *Aligner) OptimalScore() int32 { return a.optScore }

// OptimalScoreColumn returns the column in the last row Align's optimum was
// found at.
func (a *Aligner) OptimalScoreColumn() int { return a.optScoreCol }

// CigarOps returns the current CIGAR element slice, valid after Trace and
// any subsequent post-processing calls.
func (a *Aligner) CigarOps() []CigarOp {
	return a.cigar[a.cigarBegin:a.cigarEnd]
}

// qualityAt returns the query's PHRED-offset-adjusted quality at subquery
// position i, clamped into the table's domain so a stray quality byte
// cannot index outside the penalty tables.
func (a *Aligner) qualityAt(i int) int {
	q := int(a.subqual[i]) - int(a.phredOffset)
	if q < 0 {
		q = 0
	} else if q >= qualityRange {
		q = qualityRange - 1
	}
	return q
}

// isMatch implements the asymmetric base-equality convention: a reference N
// is a wildcard, a query N is literal and matches only a literal reference
// N.
func isMatch(ref, query byte) bool {
	return ref == query || ref == 'N' || ref == 'n'
}
