package catalog

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/tourney/libtourney"
	"github.com/2x3systems/tourney/tourney"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState

	order (byte), index (uint32 big endian)  => Result (see Result.MarshalOut)
	...

Keys sort by order then database index, so selecting one order is a prefix scan
that visits results in the same order the search produced them.

***/

const (
	catalogMajorVers = 2026
	catalogMinorVers = 1

	resultKeySz = 5
)

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

// catalog is a badger db wrapper holding one Result per searched tournament.
type catalog struct {
	mu         sync.Mutex
	ctx        tourney.CatalogContext
	readOnly   bool
	stateDirty bool
	runID      string
	state      tourney.CatalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) the result catalog at opts.DbPathName, or an in-memory catalog if no path is given.
func OpenCatalog(ctx tourney.CatalogContext, opts tourney.CatalogOpts) (tourney.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
		runID:    opts.RunID,
	}
	if cat.runID == "" {
		cat.runID = uuid.NewString()
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // single writer
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(tourney.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog %q", opts.DbPathName)
	}

	// Once the db is open, the catalog ctx is blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = catalogMajorVers
		cat.state.MinorVers = catalogMinorVers
		cat.state.NumResults = make([]uint64, tourney.MaxOrder+1)
	}

	if err == nil && (cat.state.MajorVers != catalogMajorVers || cat.state.MinorVers != catalogMinorVers) {
		err = errors.Wrapf(tourney.ErrBadCatalogParam, "catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}
	if err != nil {
		cat.Close()
		return nil, err
	}

	// Older states may hold fewer order slots
	for len(cat.state.NumResults) < tourney.MaxOrder+1 {
		cat.state.NumResults = append(cat.state.NumResults, 0)
	}

	klog.V(2).Infof("opened result catalog %q (last run %q)", opts.DbPathName, cat.state.LastRunID)
	return cat, nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumResults(order int) int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if order < 0 || order >= len(cat.state.NumResults) {
		return 0
	}
	return int64(cat.state.NumResults[order])
}

func (cat *catalog) State() tourney.CatalogState {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	state := cat.state
	state.NumResults = append([]uint64(nil), cat.state.NumResults...)
	return state
}

func (cat *catalog) loadState() error {
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.Unmarshal(val)
		})
	})
	return err
}

func (cat *catalog) flushState() {
	if !cat.stateDirty || cat.db == nil {
		return
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		stateBuf, err := cat.state.Marshal()
		if err != nil {
			return err
		}
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err != nil {
		panic(err)
	}
	cat.stateDirty = false
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil
	}
	cat.flushState()
	err := cat.db.Close()
	cat.db = nil
	cat.ctx.DetachCatalog(cat)
	cat.ctx = nil
	return err
}

func formResultKey(key []byte, order, index int) []byte {
	key = append(key, byte(order))
	return binary.BigEndian.AppendUint32(key, uint32(index))
}

// TryAddResult adds r if the catalog does not already hold a Result for the same order and index.
//
// If true is returned, r was not present and was added.
func (cat *catalog) TryAddResult(r *tourney.Result) bool {
	if cat.readOnly || r.Order < 1 || r.Order > tourney.MaxOrder {
		return false
	}
	if _, err := libtourney.NewTournamentFromArcs(r.Order, r.Arcs); err != nil {
		klog.Warningf("result %d of order %d not added: %v", r.Index, r.Order, err)
		return false
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return false
	}

	key := formResultKey(make([]byte, 0, resultKeySz), r.Order, r.Index)

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get(key)
	if err == nil {
		return false
	}
	if err != badger.ErrKeyNotFound {
		panic(err)
	}

	val, err := r.MarshalOut(make([]byte, 0, 32+len(r.Arcs)))
	if err != nil {
		klog.Warningf("result %d of order %d not added: %v", r.Index, r.Order, err)
		return false
	}
	if err = txn.Set(key, val); err != nil {
		panic(err)
	}
	if err = txn.Commit(); err != nil {
		panic(err)
	}

	cat.state.NumResults[r.Order]++
	cat.state.LastRunID = cat.runID
	cat.stateDirty = true
	return true
}

// Select sends each stored Result of sel.Order that sel selects to onHit, in database index order.
func (cat *catalog) Select(sel tourney.ResultSelector, onHit tourney.OnResultHit) {
	if sel.Order < 0 || sel.Order > tourney.MaxOrder {
		return
	}

	cat.mu.Lock()
	db := cat.db
	cat.mu.Unlock()
	if db == nil {
		return
	}

	prefix := [1]byte{byte(sel.Order)}

	txn := db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   300,
		Prefix:         prefix[:],
	})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		if len(item.Key()) != resultKeySz {
			continue
		}

		r := &tourney.Result{}
		err := item.Value(func(val []byte) error {
			return r.Unmarshal(val)
		})
		if err != nil {
			klog.Warningf("skipping catalog entry %x: %v", item.Key(), err)
			continue
		}
		if sel.SelectsResult(r) {
			onHit <- r
		}
	}
}
