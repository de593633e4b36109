package libtourney

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/tourney/tourney"
)

/***

Tournament database format (as distributed for q <= 10):

	one line per tournament, each line holding one marker per pair i<j in row-major order
	    '1'  i beats j
	    '0'  j beats i
	followed by a single terminator ('\n', optionally preceded by '\r').

The final terminator may be omitted.

***/

// DatabasePath forms the conventional database file name for order q, e.g. "tour9.txt".
func DatabasePath(prefix string, q int) string {
	return fmt.Sprintf("%s%d.txt", prefix, q)
}

// TournamentReader reads successive tournaments of a fixed order from a database stream.
type TournamentReader struct {
	rd     *bufio.Reader
	q      int
	count  int   // tournaments read so far
	offset int64 // bytes consumed so far
}

func NewTournamentReader(r io.Reader, q int) *TournamentReader {
	return &TournamentReader{
		rd: bufio.NewReaderSize(r, 64*1024),
		q:  q,
	}
}

// Count returns the number of tournaments read so far.
func (tr *TournamentReader) Count() int {
	return tr.count
}

func (tr *TournamentReader) formatErr(reason string) error {
	return &tourney.FormatError{
		Tournament: tr.count,
		Offset:     tr.offset,
		Reason:     reason,
	}
}

func (tr *TournamentReader) readByte() (byte, error) {
	c, err := tr.rd.ReadByte()
	if err == nil {
		tr.offset++
	}
	return c, err
}

// Next reads the next tournament.
// io.EOF is returned only when the stream ends cleanly between tournaments.
func (tr *TournamentReader) Next() (*Tournament, error) {
	q := tr.q
	T := NewTournament(q)

	started := false
	for i := 0; i < q; i++ {
		for j := i + 1; j < q; j++ {
			c, err := tr.readByte()
			if err == io.EOF {
				if !started {
					return nil, io.EOF
				}
				return nil, tr.formatErr(fmt.Sprintf("stream ended at pair (%d,%d)", i, j))
			}
			if err != nil {
				return nil, errors.Wrapf(err, "reading tournament %d", tr.count)
			}
			started = true

			switch c {
			case tourney.MarkerBeats:
				T.SetArc(i, j)
			case tourney.MarkerBeaten:
				T.SetArc(j, i)
			default:
				return nil, tr.formatErr(fmt.Sprintf("unrecognized marker %q at pair (%d,%d)", c, i, j))
			}
		}
	}

	c, err := tr.readByte()
	if err == io.EOF {
		if !started {
			return nil, io.EOF
		}
		err = nil
		c = '\n'
	} else if err != nil {
		return nil, errors.Wrapf(err, "reading tournament %d", tr.count)
	}
	if c == '\r' {
		c, err = tr.readByte()
		if err == io.EOF {
			err = nil
			c = '\n'
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading tournament %d", tr.count)
	}
	if c != '\n' {
		return nil, tr.formatErr(fmt.Sprintf("expected terminator, got %q", c))
	}

	tr.count++
	return T, nil
}

// LoadTournaments reads exactly n tournaments of order q from r.
func LoadTournaments(r io.Reader, q, n int) ([]*Tournament, error) {
	tr := NewTournamentReader(r, q)
	tournaments := make([]*Tournament, 0, n)
	for len(tournaments) < n {
		T, err := tr.Next()
		if err == io.EOF {
			return nil, tr.formatErr(fmt.Sprintf("database ended after %d of %d tournaments", len(tournaments), n))
		}
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, T)
	}
	return tournaments, nil
}

// Store holds the tournaments of one order under test.
type Store struct {
	Order       int
	Tournaments []*Tournament
}

// NewStore wraps an in-memory set of tournaments, all of order q.
func NewStore(q int, tournaments []*Tournament) (*Store, error) {
	for i, T := range tournaments {
		if T.Order() != q {
			return nil, errors.Wrapf(tourney.ErrBadOrder, "tournament %d has order %d, want %d", i, T.Order(), q)
		}
		if err := T.Validate(); err != nil {
			return nil, errors.Wrapf(err, "tournament %d", i)
		}
	}
	return &Store{
		Order:       q,
		Tournaments: tournaments,
	}, nil
}

// OpenStore loads the complete tournament database of order q from pathname.
func OpenStore(pathname string, q int) (*Store, error) {
	count, ok := tourney.NumTournaments(q)
	if !ok {
		return nil, &tourney.ConfigurationError{
			Param:  "order",
			Reason: fmt.Sprintf("no known tournament count for order %d", q),
		}
	}

	file, err := os.Open(pathname)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &tourney.ConfigurationError{
				Param:  "database",
				Reason: fmt.Sprintf("%s does not exist", pathname),
			}
		}
		return nil, errors.Wrapf(err, "opening tournament database")
	}
	defer file.Close()

	klog.V(2).Infof("loading %d tournaments of order %d from %s", count, q, pathname)

	tournaments, err := LoadTournaments(file, q, count)
	if err != nil {
		return nil, err
	}
	return NewStore(q, tournaments)
}

// Len returns the number of tournaments in the store.
func (s *Store) Len() int {
	return len(s.Tournaments)
}
