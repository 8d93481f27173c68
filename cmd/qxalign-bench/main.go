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

// Command qxalign-bench is a throughput harness, not a host binding: it
// hardcodes its scoring and quality, takes no scoring flags, and
// exists only to report how many (ref, query) pairs per second the engine
// sweeps through.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shenwei356/qxalign"
)

// benchQuality is the uniform PHRED value synthetic/unqualified benchmark
// input is scored at, since neither the positional arguments nor the
// two-lines-per-pair input format carry a quality string.
const benchQuality = 40

func main() {
	app := filepath.Base(os.Args[0])
	usage := fmt.Sprintf(`
qxalign throughput benchmark

Usage:
  1. Align two sequences from the positional arguments.

        %s [options] <reference seq> <query seq>

  2. Align sequence pairs from an input file, one pair per two lines,
     '>' prefixing the reference line and '<' prefixing the query line
     (https://github.com/smarco/WFA-paper#41-introduction-to-benchmarking-wfa-simple-tests).

        %s [options] -i input.txt

Options:
`, app, app)

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	infile := flag.String("i", "", "input file of reference/query pairs")
	repeat := flag.Int("n", 1, "repeat each pair this many times")
	semi := flag.Bool("s", false, "use semiglobal-on-reference alignment")
	quiet := flag.Bool("q", false, "suppress per-pair CIGAR output")
	help := flag.Bool("h", false, "print help message")
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	var pairs [][2]string
	if *infile == "" {
		if flag.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "error: give two sequences, or -i an input file")
			os.Exit(1)
		}
		pairs = [][2]string{{flag.Arg(0), flag.Arg(1)}}
	} else {
		var err error
		pairs, err = readPairs(*infile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	a := qxalign.New(0, 4, 6, 2)

	start := time.Now()
	var aligned int
	for i := 0; i < *repeat; i++ {
		for _, p := range pairs {
			ref, query := []byte(p[0]), []byte(p[1])
			q := make([]byte, len(query))
			for j := range q {
				q[j] = benchQuality + 33
			}
			if err := a.Prepare(ref, query, q, 0, 0, 0, 0); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
			if _, err := a.Align(*semi); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
			if err := a.Trace(); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
			a.SoftclipTrace()
			a.CompactTrace()
			aligned++
			if !*quiet {
				fmt.Fprintf(out, "score=%d offset=%d cigar=%s\n", a.OptimalScore(), a.Offset(), a.ShowCigar())
			}
		}
	}

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "aligned %d pairs in %s (%.0f pairs/s)\n", aligned, elapsed, float64(aligned)/elapsed.Seconds())
}

func readPairs(path string) ([][2]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %s", path)
	}
	defer fh.Close()

	var pairs [][2]string
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		ref := scanner.Text()
		if !scanner.Scan() {
			break
		}
		query := scanner.Text()
		if len(ref) < 1 || len(query) < 1 {
			continue
		}
		pairs = append(pairs, [2]string{ref[1:], query[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("something wrong reading file: %s", path)
	}
	return pairs, nil
}
