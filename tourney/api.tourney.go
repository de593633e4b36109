package tourney

const (

	// MaxOrder is the largest tournament order with a known database count.
	MaxOrder = 10

	// DefaultNumColors is the number of edge colors used by the search.
	DefaultNumColors = 2

	// MaxNumColors bounds the color labels a Coloring may hold.
	MaxNumColors = 127

	// Arc markers used by the tournament database and by Result.Arcs.
	MarkerBeats  byte = '1' // i beats j
	MarkerBeaten byte = '0' // j beats i
)

// numTournaments is the number of non-isomorphic tournaments on q vertices (OEIS A000568).
var numTournaments = [MaxOrder + 1]int{1, 1, 1, 2, 4, 12, 56, 456, 6880, 191536, 9733056}

// NumTournaments returns the number of tournaments in the database for order q.
func NumTournaments(q int) (int, bool) {
	if q < 0 || q > MaxOrder {
		return 0, false
	}
	return numTournaments[q], true
}

// NumEdges returns q(q-1)/2, the number of vertex pairs of an order q tournament.
func NumEdges(q int) int {
	return q * (q - 1) / 2
}

// EdgeIndex returns the row-major index of the pair {i, j} among all pairs i<j.
// Edge 0 is always the pair {0, 1}.
func EdgeIndex(q, i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*(2*q-i-1)/2 + (j - i - 1)
}

// QualifyingScore is the bound 2q(q-1)/3 that s(Q) must strictly exceed for Q to be of interest.
func QualifyingScore(q int) int {
	return 2 * q * (q - 1) / 3
}

// Result is the outcome of searching the colorings of one tournament.
type Result struct {
	Order     int    // tournament order q
	Index     int    // zero-based index in the tournament database
	Triangles int    // number of directed triangles
	Score     int    // minimum reachability count found (see Exact)
	Exact     bool   // if set, Score is s(Q); otherwise the search stopped early and Score only bounds s(Q) from above
	Skipped   bool   // set if the triangle filter excluded this tournament (Score is 0)
	Qualifies bool   // set if Exact and Score > QualifyingScore(Order)
	Colorings uint64 // number of colorings scored
	Arcs      []byte // one MarkerBeats or MarkerBeaten per pair i<j in row-major order
}

// Beats returns true if vertex i beats vertex j in the tournament this Result was computed for.
func (r *Result) Beats(i, j int) bool {
	if i == j {
		return false
	}
	beats := r.Arcs[EdgeIndex(r.Order, i, j)] == MarkerBeats
	if i > j {
		return !beats
	}
	return beats
}

// ResultSelector is an operator that either selects a given Result or not.
type ResultSelector struct {
	Order          int  // tournament order to select from
	MinScore       int  // lower score bound (inclusive)
	MaxScore       int  // upper score bound (inclusive)
	ExactOnly      bool // only select results where Score is s(Q)
	QualifyingOnly bool // only select results that exceed QualifyingScore
	IncludeSkipped bool // also select tournaments excluded by the triangle filter
}

// DefaultResultSelector selects all evaluated results of the given order.
func DefaultResultSelector(q int) ResultSelector {
	return ResultSelector{
		Order:    q,
		MinScore: 0,
		MaxScore: q * (q - 1),
	}
}

// OnResultHit is used to return Results meeting a set of selection criteria.
// Ownership of a Result also travels through the channel.
type OnResultHit chan<- *Result

// ResultAdder is a sink for search Results.
type ResultAdder interface {

	// Tries to add the given Result.
	// If true is returned, the Result was not already present and was added.
	TryAddResult(r *Result) bool
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs to be closed then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a result Catalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
	RunID      string // stamped into the catalog state when results are added
}

// Catalog wraps a database of search Results, keyed by tournament order and database index.
type Catalog interface {
	ResultAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumResults returns the number of Results in this catalog for a given order.
	NumResults(order int) int64

	// State returns a copy of the catalog header.
	State() CatalogState

	// Select sends each Result that meets the selection criteria to onHit, in database index order.
	Select(sel ResultSelector, onHit OnResultHit)

	Close() error
}

// CatalogState is the persisted header of a Catalog.
type CatalogState struct {
	MajorVers  uint64
	MinorVers  uint64
	LastRunID  string
	NumResults []uint64 // indexed by order
}

// RenderFormat selects how a tournament's adjacency matrix is printed.
type RenderFormat int32

const (
	RenderNone RenderFormat = iota
	RenderLatex
	RenderAscii
)

// PrintOpts specifies what is printed when printing a Result
type PrintOpts struct {
	Label          string       // Prefix label
	Matrix         RenderFormat // Matrix rendering for qualifying results
	MatrixAlways   bool         // If set, the matrix is rendered for every result
	IncludeSkipped bool         // If set, results skipped by the triangle filter are printed
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Matrix: RenderLatex,
}
