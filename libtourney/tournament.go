package libtourney

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/2x3systems/tourney/tourney"
)

// Tournament is the orientation of every vertex pair of a complete graph on q vertices.
//
// Sign(i,j) is +1 if i beats j, -1 if j beats i, and 0 on the diagonal.
// The matrix is antisymmetric: Sign(i,j) == -Sign(j,i).
type Tournament struct {
	q    int
	sign []int8 // q*q, row-major
}

// NewTournament returns the transitive tournament on q vertices, where i beats j for all i < j.
func NewTournament(q int) *Tournament {
	T := &Tournament{
		q:    q,
		sign: make([]int8, q*q),
	}
	for i := 0; i < q; i++ {
		for j := i + 1; j < q; j++ {
			T.sign[i*q+j] = 1
			T.sign[j*q+i] = -1
		}
	}
	return T
}

// Transitive is an alias of NewTournament that reads better at call sites.
func Transitive(q int) *Tournament {
	return NewTournament(q)
}

// Rotational returns the tournament on odd q where i beats i+1, .., i+(q-1)/2 (mod q).
// Every vertex has out-degree (q-1)/2 and the tournament has the maximum number of directed triangles.
func Rotational(q int) (*Tournament, error) {
	if q < 1 || q%2 == 0 {
		return nil, errors.Wrapf(tourney.ErrBadOrder, "rotational tournament needs an odd order, got %d", q)
	}
	T := NewTournament(q)
	for i := 0; i < q; i++ {
		for d := 1; d <= (q-1)/2; d++ {
			T.SetArc(i, (i+d)%q)
		}
	}
	return T, nil
}

// NewTournamentFromArcs builds a tournament from one marker per pair i<j in row-major order,
// the same encoding the tournament database and tourney.Result.Arcs use.
func NewTournamentFromArcs(q int, arcs []byte) (*Tournament, error) {
	if len(arcs) != tourney.NumEdges(q) {
		return nil, errors.Wrapf(tourney.ErrNotTournament, "order %d needs %d arcs, got %d", q, tourney.NumEdges(q), len(arcs))
	}
	T := NewTournament(q)
	e := 0
	for i := 0; i < q; i++ {
		for j := i + 1; j < q; j++ {
			switch arcs[e] {
			case tourney.MarkerBeats:
				T.SetArc(i, j)
			case tourney.MarkerBeaten:
				T.SetArc(j, i)
			default:
				return nil, errors.Wrapf(tourney.ErrNotTournament, "bad arc marker %q for pair (%d,%d)", arcs[e], i, j)
			}
			e++
		}
	}
	return T, nil
}

// Order returns the number of vertices.
func (T *Tournament) Order() int {
	return T.q
}

// NumEdges returns q(q-1)/2.
func (T *Tournament) NumEdges() int {
	return tourney.NumEdges(T.q)
}

// Sign returns +1 if i beats j, -1 if j beats i, and 0 if i == j.
func (T *Tournament) Sign(i, j int) int {
	return int(T.sign[i*T.q+j])
}

// Beats returns true if i beats j.
func (T *Tournament) Beats(i, j int) bool {
	return T.sign[i*T.q+j] > 0
}

// SetArc orients the pair {from, to} so that from beats to.
func (T *Tournament) SetArc(from, to int) {
	T.sign[from*T.q+to] = 1
	T.sign[to*T.q+from] = -1
}

// OutDegree returns the number of vertices that i beats.
func (T *Tournament) OutDegree(i int) int {
	n := 0
	for j := 0; j < T.q; j++ {
		if T.Beats(i, j) {
			n++
		}
	}
	return n
}

// Validate checks the diagonal is zero and every pair is oriented exactly one way.
func (T *Tournament) Validate() error {
	q := T.q
	if len(T.sign) != q*q {
		return errors.Wrapf(tourney.ErrNotTournament, "matrix has %d entries, want %d", len(T.sign), q*q)
	}
	for i := 0; i < q; i++ {
		if T.sign[i*q+i] != 0 {
			return errors.Wrapf(tourney.ErrNotTournament, "nonzero diagonal at %d", i)
		}
		for j := i + 1; j < q; j++ {
			s := T.sign[i*q+j]
			if (s != 1 && s != -1) || T.sign[j*q+i] != -s {
				return errors.Wrapf(tourney.ErrNotTournament, "pair (%d,%d) is not antisymmetric", i, j)
			}
		}
	}
	return nil
}

// Transpose returns a new tournament with every arc reversed.
func (T *Tournament) Transpose() *Tournament {
	Tt := T.Clone()
	for k := range Tt.sign {
		Tt.sign[k] = -Tt.sign[k]
	}
	return Tt
}

// Clone returns a deep copy of T.
func (T *Tournament) Clone() *Tournament {
	return &Tournament{
		q:    T.q,
		sign: append([]int8(nil), T.sign...),
	}
}

// AppendArcs appends one tourney.MarkerBeats or tourney.MarkerBeaten per pair i<j to dst.
func (T *Tournament) AppendArcs(dst []byte) []byte {
	for i := 0; i < T.q; i++ {
		for j := i + 1; j < T.q; j++ {
			if T.Beats(i, j) {
				dst = append(dst, tourney.MarkerBeats)
			} else {
				dst = append(dst, tourney.MarkerBeaten)
			}
		}
	}
	return dst
}

// String returns T as a tournament expression, one arc per pair, e.g. "0>1, 0<2, 1>2".
// ParseTournament() reads it back.
func (T *Tournament) String() string {
	b := strings.Builder{}
	for i := 0; i < T.q; i++ {
		for j := i + 1; j < T.q; j++ {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(i))
			if T.Beats(i, j) {
				b.WriteByte('>')
			} else {
				b.WriteByte('<')
			}
			b.WriteString(strconv.Itoa(j))
		}
	}
	return b.String()
}
