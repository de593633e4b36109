package tourney

import (
	"fmt"
	"io"
	"strings"
)

// ResultStream carries Results from one pipeline stage to the next.
// Each stage runs in its own goroutine and forwards Results in the order received.
type ResultStream struct {
	Outlet chan *Result
}

func NewResultStream() *ResultStream {
	stream := &ResultStream{
		Outlet: make(chan *Result, 1),
	}
	return stream
}

func (stream *ResultStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// PullAll drains the stream and returns the number of Results seen.
func (stream *ResultStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains the stream and returns all Results in order.
func (stream *ResultStream) Collect() []*Result {
	var results []*Result
	for r := range stream.Outlet {
		results = append(results, r)
	}
	return results
}

// Print writes each Result to out and passes it along.
func (stream *ResultStream) Print(
	out io.Writer,
	opts PrintOpts) *ResultStream {

	next := NewResultStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for r := range stream.Outlet {
			if !r.Skipped || opts.IncludeSkipped {
				count++
				lineOpts := opts
				lineOpts.Label = fmt.Sprintf("%s[%d]", opts.Label, count)
				r.WriteAsString(&buf, lineOpts)
				io.WriteString(out, buf.String())
				buf.Reset()
			}
			next.Outlet <- r
		}
		next.Close()
	}()

	return next
}

// AddTo offers each Result to target and passes along only those that were added.
func (stream *ResultStream) AddTo(target ResultAdder) *ResultStream {
	next := NewResultStream()

	go func() {
		for r := range stream.Outlet {
			if target.TryAddResult(r) {
				next.Outlet <- r
			}
		}
		next.Close()
	}()

	return next
}

// Tap calls onResult for each Result before passing it along.
func (stream *ResultStream) Tap(onResult func(r *Result)) *ResultStream {
	next := NewResultStream()

	go func() {
		for r := range stream.Outlet {
			onResult(r)
			next.Outlet <- r
		}
		next.Close()
	}()

	return next
}

// Select passes along only the Results selected by sel.
func (stream *ResultStream) Select(sel ResultSelector) *ResultStream {
	next := NewResultStream()

	go func() {
		for r := range stream.Outlet {
			if sel.SelectsResult(r) {
				next.Outlet <- r
			}
		}
		next.Close()
	}()

	return next
}

// SelectFromCatalog streams the Results of cat selected by sel.
func SelectFromCatalog(cat Catalog, sel ResultSelector) *ResultStream {
	next := NewResultStream()

	onHit := make(chan *Result, 4)

	go func() {
		cat.Select(sel, onHit)
		close(onHit)
	}()

	go func() {
		for r := range onHit {
			if sel.SelectsResult(r) {
				next.Outlet <- r
			}
		}
		next.Close()
	}()

	return next
}
