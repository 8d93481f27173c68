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

import "fmt"

// Op is a CIGAR operation code, ordered to match the SAM/BAM convention.
type Op uint32

const (
	OpM        Op = iota // generic match/mismatch
	OpI                   // insertion in query
	OpD                   // deletion in query
	OpN                   // reference skip, reserved but never emitted
	OpS                   // soft clip
	OpH                   // hard clip
	OpP                   // pad, unused
	OpEqual               // sequence match
	OpMismatch            // sequence mismatch
)

var opLetters = [...]byte{'M', 'I', 'D', 'N', 'S', 'H', 'P', '=', 'X'}

func (o Op) String() string {
	if int(o) >= len(opLetters) {
		return "?"
	}
	return string(opLetters[o])
}

// consumesQuery reports whether an op of this type advances the query axis.
func (o Op) consumesQuery() bool {
	switch o {
	case OpM, OpI, OpS, OpEqual, OpMismatch:
		return true
	default:
		return false
	}
}

// consumesRef reports whether an op of this type advances the reference axis.
func (o Op) consumesRef() bool {
	switch o {
	case OpM, OpD, OpN, OpEqual, OpMismatch:
		return true
	default:
		return false
	}
}

// opFromByte decodes a single CIGAR letter, for round-tripping externally
// constructed CIGAR strings. Used only outside the DP/traceback path.
func opFromByte(b byte) (Op, bool) {
	switch b {
	case 'M':
		return OpM, true
	case 'I':
		return OpI, true
	case 'D':
		return OpD, true
	case 'N':
		return OpN, true
	case 'S':
		return OpS, true
	case 'H':
		return OpH, true
	case 'P':
		return OpP, true
	case '=':
		return OpEqual, true
	case 'X':
		return OpMismatch, true
	default:
		return 0, false
	}
}

// CigarOp is one packed CIGAR element: a run length in the upper 28 bits and
// an opcode in the low 4 bits. The same packing is used for every cell of
// the trace matrix (see traceCell in buffer.go, a type alias of CigarOp).
type CigarOp uint32

const (
	opBits = 4
	opMask = uint32(1)<<opBits - 1
	maxRun = uint32(1)<<(32-opBits) - 1
)

// NewCigarOp packs an opcode and a run length into one word. The caller is
// responsible for keeping length within maxRun (2^28-1); callers pushing
// runs built incrementally (see traceback.go) never exceed it for sequences
// at the scale this engine targets.
func NewCigarOp(op Op, length uint32) CigarOp {
	return CigarOp(length<<opBits | uint32(op)&opMask)
}

// Op returns the opcode packed into this element.
func (c CigarOp) Op() Op { return Op(uint32(c) & opMask) }

// Len returns the run length packed into this element.
func (c CigarOp) Len() uint32 { return uint32(c) >> opBits }

func (c CigarOp) String() string {
	return fmt.Sprintf("%d%s", c.Len(), c.Op())
}

// withLen returns a copy of c with its run length replaced.
func (c CigarOp) withLen(length uint32) CigarOp {
	return NewCigarOp(c.Op(), length)
}
