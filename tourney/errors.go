package tourney

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrFormat          = errors.New("malformed tournament data")
	ErrConfiguration   = errors.New("bad configuration")
	ErrBadExpr         = errors.New("bad tournament expression")
	ErrNotTournament   = errors.New("arcs do not form a tournament")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrUnmarshal       = errors.New("unmarshal failed")
	ErrBadOrder        = errors.New("tournament order out of range")
)

// FormatError reports a truncated or malformed tournament database stream.
type FormatError struct {
	Tournament int   // zero-based index of the tournament being read
	Offset     int64 // byte offset into the stream
	Reason     string
}

func (err *FormatError) Error() string {
	return fmt.Sprintf("%v: tournament %d, offset %d: %s", ErrFormat, err.Tournament, err.Offset, err.Reason)
}

func (err *FormatError) Unwrap() error {
	return ErrFormat
}

// ConfigurationError reports a run that cannot start, such as an order with no
// known tournament count or a database file that is absent.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (err *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrConfiguration, err.Param, err.Reason)
}

func (err *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
