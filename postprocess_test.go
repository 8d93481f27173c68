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

// TestAppendSoftclipAttachesClippedPrefix covers the common case where the
// clipped query region was trimmed from a larger read: it should appear as
// a leading S of exactly the clipped length when it does not happen to
// match the reference immediately before the alignment.
func TestAppendSoftclipAttachesClippedPrefix(t *testing.T) {
	a := New(0, 4, 6, 2)
	ref := []byte("TTTTACGT")
	fullQuery := []byte("GGACGT")
	fullQual := qual(40, len(fullQuery))

	// The real alignment only ever sees "ACGT"; "GG" is a head clip that
	// does not match the two reference bases before it ("TT").
	if err := a.Prepare(ref, fullQuery, fullQual, 0, 0, 2, 0); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, err := a.Align(false); err != nil {
		t.Fatalf("Align: %v", err)
	}
	if err := a.Trace(); err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if cigar := a.ShowCigar(); cigar != "4=" {
		t.Fatalf("setup cigar = %q, want 4=", cigar)
	}

	a.AppendSoftclip()
	if got := a.ShowCigar(); got != "2S4=" {
		t.Errorf("cigar after AppendSoftclip = %q, want 2S4=", got)
	}
}

// TestAppendSoftclipContractsMatchingPrefix covers the contraction case:
// when the clipped bases happen to match the reference immediately before
// the alignment start, AppendSoftclip should fold them into the match run
// and walk offset backward instead of leaving them clipped.
func TestAppendSoftclipContractsMatchingPrefix(t *testing.T) {
	a := New(0, 4, 6, 2)
	ref := []byte("ACACGT")
	fullQuery := []byte("ACACGT")
	fullQual := qual(40, len(fullQuery))

	if err := a.Prepare(ref, fullQuery, fullQual, 0, 0, 2, 0); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, err := a.Align(false); err != nil {
		t.Fatalf("Align: %v", err)
	}
	if err := a.Trace(); err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if a.Offset() != 2 {
		t.Fatalf("setup offset = %d, want 2", a.Offset())
	}

	a.AppendSoftclip()
	if got := a.ShowCigar(); got != "6=" {
		t.Errorf("cigar after contracting AppendSoftclip = %q, want 6=", got)
	}
	if a.Offset() != 0 {
		t.Errorf("offset after contracting AppendSoftclip = %d, want 0", a.Offset())
	}
}

// TestSoftclipTrailingOnlyLeavesOffset pins the walk asymmetry: clipping a
// trailing mismatch must not move the alignment start, only a leading one
// does that.
func TestSoftclipTrailingOnlyLeavesOffset(t *testing.T) {
	a := New(0, 4, 6, 2)
	cigar := mustAlign(t, a, []byte("ACGT"), []byte("ACGA"), qual(40, 4), false)
	if cigar != "3=1X" {
		t.Fatalf("setup cigar = %q, want 3=1X", cigar)
	}
	before := a.Offset()
	a.SoftclipTrace()
	if got := a.ShowCigar(); got != "3=1S" {
		t.Errorf("softclipped cigar = %q, want 3=1S", got)
	}
	if a.Offset() != before {
		t.Errorf("trailing softclip moved offset: %d -> %d", before, a.Offset())
	}
}

func TestFullPostProcessingPipeline(t *testing.T) {
	a := New(0, 4, 6, 2)
	if err := a.Prepare([]byte("ACGT"), []byte("TCGT"), qual(40, 4), 0, 0, 0, 0); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, err := a.Align(false); err != nil {
		t.Fatalf("Align: %v", err)
	}
	if err := a.Trace(); err != nil {
		t.Fatalf("Trace: %v", err)
	}
	a.SoftclipTrace()
	a.AppendSoftclip()
	a.CompactTrace()
	if got := a.ShowCigar(); got != "1S3M" {
		t.Errorf("pipeline result = %q, want 1S3M", got)
	}
}
