package tourney

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// SelectsResult is a convenience function used to see if a Result is selected according to a ResultSelector.
func (sel *ResultSelector) SelectsResult(r *Result) bool {
	if r.Order != sel.Order {
		return false
	}
	if r.Skipped {
		return sel.IncludeSkipped
	}
	if r.Score < sel.MinScore || r.Score > sel.MaxScore {
		return false
	}
	if sel.ExactOnly && !r.Exact {
		return false
	}
	if sel.QualifyingOnly && !r.Qualifies {
		return false
	}
	return true
}

// ParseRenderFormat maps "latex", "ascii", or "none" to a RenderFormat.
func ParseRenderFormat(name string) (RenderFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latex", "tex", "":
		return RenderLatex, nil
	case "ascii", "text":
		return RenderAscii, nil
	case "none", "off":
		return RenderNone, nil
	}
	return RenderNone, errors.Wrapf(ErrConfiguration, "unknown render format %q", name)
}

func (f RenderFormat) String() string {
	switch f {
	case RenderLatex:
		return "latex"
	case RenderAscii:
		return "ascii"
	}
	return "none"
}

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.Closing()
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
	closeOnce    sync.Once
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Closing() <-chan struct{} {
	return ctx.closing
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	ctx.closeOnce.Do(func() {
		close(ctx.closing)
		ctx.mu.Lock()
		open := make([]Catalog, 0, len(ctx.openCatalogs))
		for cat := range ctx.openCatalogs {
			open = append(open, cat)
		}
		ctx.mu.Unlock()

		// Catalog.Close() detaches itself, which needs ctx.mu
		for _, cat := range open {
			go cat.Close()
		}
	})
}
