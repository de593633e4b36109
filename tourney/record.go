package tourney

import (
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

const (
	resultRecordVers = 1

	flagExact     = 0x01
	flagSkipped   = 0x02
	flagQualifies = 0x04
)

// MarshalOut appends the catalog value encoding of this Result to dst.
//
// Layout (varints unless noted):
//
//	vers, order, index, triangles, score, flags, colorings, arcs (length-prefixed bytes)
func (r *Result) MarshalOut(dst []byte) ([]byte, error) {
	flags := uint64(0)
	if r.Exact {
		flags |= flagExact
	}
	if r.Skipped {
		flags |= flagSkipped
	}
	if r.Qualifies {
		flags |= flagQualifies
	}

	buf := proto.NewBuffer(dst)
	for _, v := range [...]uint64{
		resultRecordVers,
		uint64(r.Order),
		uint64(r.Index),
		uint64(r.Triangles),
		uint64(r.Score),
		flags,
		r.Colorings,
	} {
		if err := buf.EncodeVarint(v); err != nil {
			return nil, err
		}
	}
	if err := buf.EncodeRawBytes(r.Arcs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal assigns this Result from an encoding made by MarshalOut().
func (r *Result) Unmarshal(val []byte) error {
	buf := proto.NewBuffer(val)

	var fields [7]uint64
	for i := range fields {
		v, err := buf.DecodeVarint()
		if err != nil {
			return errors.Wrap(ErrUnmarshal, err.Error())
		}
		fields[i] = v
	}
	if fields[0] != resultRecordVers {
		return errors.Wrapf(ErrUnmarshal, "unsupported result record version %d", fields[0])
	}

	arcs, err := buf.DecodeRawBytes(true)
	if err != nil {
		return errors.Wrap(ErrUnmarshal, err.Error())
	}

	flags := fields[5]
	*r = Result{
		Order:     int(fields[1]),
		Index:     int(fields[2]),
		Triangles: int(fields[3]),
		Score:     int(fields[4]),
		Exact:     flags&flagExact != 0,
		Skipped:   flags&flagSkipped != 0,
		Qualifies: flags&flagQualifies != 0,
		Colorings: fields[6],
		Arcs:      arcs,
	}
	if len(r.Arcs) != NumEdges(r.Order) {
		return errors.Wrapf(ErrUnmarshal, "expected %d arcs, got %d", NumEdges(r.Order), len(r.Arcs))
	}
	return nil
}

// Marshal returns the encoding of this CatalogState.
func (state *CatalogState) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(make([]byte, 0, 64))
	buf.EncodeVarint(state.MajorVers)
	buf.EncodeVarint(state.MinorVers)
	if err := buf.EncodeStringBytes(state.LastRunID); err != nil {
		return nil, err
	}
	buf.EncodeVarint(uint64(len(state.NumResults)))
	for _, n := range state.NumResults {
		buf.EncodeVarint(n)
	}
	return buf.Bytes(), nil
}

// Unmarshal assigns this CatalogState from an encoding made by Marshal().
func (state *CatalogState) Unmarshal(val []byte) error {
	buf := proto.NewBuffer(val)

	var err error
	if state.MajorVers, err = buf.DecodeVarint(); err != nil {
		return errors.Wrap(ErrUnmarshal, err.Error())
	}
	if state.MinorVers, err = buf.DecodeVarint(); err != nil {
		return errors.Wrap(ErrUnmarshal, err.Error())
	}
	if state.LastRunID, err = buf.DecodeStringBytes(); err != nil {
		return errors.Wrap(ErrUnmarshal, err.Error())
	}
	N, err := buf.DecodeVarint()
	if err != nil || N > MaxOrder+1 {
		return errors.Wrap(ErrUnmarshal, "bad catalog state counts")
	}
	state.NumResults = make([]uint64, N)
	for i := range state.NumResults {
		if state.NumResults[i], err = buf.DecodeVarint(); err != nil {
			return errors.Wrap(ErrUnmarshal, err.Error())
		}
	}
	return nil
}
