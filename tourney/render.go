package tourney

import (
	"fmt"
	"io"
	"strings"
)

// WriteAsString writes a one line summary of this Result, followed by its adjacency matrix
// when the Result qualifies (or opts.MatrixAlways is set).
func (r *Result) WriteAsString(out io.Writer, opts PrintOpts) {
	b := strings.Builder{}
	b.Grow(128)

	if len(opts.Label) > 0 {
		b.WriteString(opts.Label)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "tournament %06d: %d triangles", r.Index, r.Triangles)
	if r.Skipped {
		b.WriteString(", skipped")
	} else {
		fmt.Fprintf(&b, ", minimum reachability count %d", r.Score)
		if r.Exact {
			fmt.Fprintf(&b, " (exact, %d colorings)", r.Colorings)
		} else {
			fmt.Fprintf(&b, " (early exit after %d colorings)", r.Colorings)
		}
		if r.Qualifies {
			fmt.Fprintf(&b, " > %d", QualifyingScore(r.Order))
		}
	}
	b.WriteByte('\n')

	if !r.Skipped && (r.Qualifies || opts.MatrixAlways) {
		r.WriteMatrix(&b, opts.Matrix)
	}

	io.WriteString(out, b.String())
}

// WriteMatrix writes the 0/1 adjacency matrix of this Result's tournament.
//
// RenderLatex emits tabular rows, e.g. "$0$ & $1$ & $0$ \\".
func (r *Result) WriteMatrix(out io.Writer, format RenderFormat) {
	if format == RenderNone {
		return
	}

	b := strings.Builder{}
	q := r.Order
	for i := 0; i < q; i++ {
		for j := 0; j < q; j++ {
			bit := byte('0')
			if r.Beats(i, j) {
				bit = '1'
			}
			switch format {
			case RenderLatex:
				b.WriteByte('$')
				b.WriteByte(bit)
				b.WriteByte('$')
				if j < q-1 {
					b.WriteString(" & ")
				} else {
					b.WriteString(" \\\\")
				}
			case RenderAscii:
				b.WriteByte(bit)
				if j < q-1 {
					b.WriteByte(' ')
				}
			}
		}
		b.WriteByte('\n')
	}
	io.WriteString(out, b.String())
}
