package catalog

import (
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/fiveham/map-tools/go4c"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

/***

Catalog database format:

	gCatalogStateKey                => CatalogState
	gLayerPrefix, LayerName (utf8)  => LayerDef
	...

Layers are listed in ascending name order by walking gLayerPrefix.

***/

const (
	kMajorVers = 2024
	kMinorVers = 1
)

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
	gLayerPrefix     = []byte{0x01}
)

// catalog is a badger db wrapper for stored layer colorings
type catalog struct {
	mu         sync.Mutex
	readOnly   bool
	stateDirty bool
	state      CatalogState
	db         *badger.DB
}

// OpenCatalog opens a new or existing catalog.  An empty opts.DbPathName opens a memory resident catalog.
func OpenCatalog(opts go4c.CatalogOpts) (go4c.Catalog, error) {
	cat := &catalog{
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(go4c.ErrBadCatalogOpts, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}
	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Wrapf(go4c.ErrCatalogVersion, "found v%d.%d", cat.state.MajorVers, cat.state.MinorVers)
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) loadState() error {
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return proto.Unmarshal(val, &cat.state)
			})
		}
		return err
	})
	return err
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty || cat.db == nil {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return cat.writeState(txn, &cat.state)
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

func (cat *catalog) writeState(txn *badger.Txn, state *CatalogState) error {
	stateBuf, err := proto.Marshal(state)
	if err != nil {
		return err
	}
	return txn.Set(gCatalogStateKey, stateBuf)
}

func formLayerKey(name string) []byte {
	key := make([]byte, 0, len(gLayerPrefix)+len(name))
	key = append(key, gLayerPrefix...)
	key = append(key, name...)
	return key
}

func (cat *catalog) PutLayer(layer *go4c.Layer) error {
	if layer == nil || len(layer.Name) == 0 {
		return errors.Wrap(go4c.ErrBadLayer, "layer name is required")
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return go4c.ErrCatalogClosed
	}
	if cat.readOnly {
		return go4c.ErrReadOnly
	}

	val, err := proto.Marshal(ExportLayer(layer))
	if err != nil {
		return err
	}

	key := formLayerKey(layer.Name)
	next := cat.state
	err = cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			next.NumLayers++
			if err = cat.writeState(txn, &next); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		return txn.Set(key, val)
	})

	// The in-memory state only follows a committed txn
	if err == nil && next.NumLayers != cat.state.NumLayers {
		cat.state = next
		cat.stateDirty = false
	}
	return err
}

func (cat *catalog) GetLayer(name string) (*go4c.Layer, error) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil, go4c.ErrCatalogClosed
	}

	var def LayerDef
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(formLayerKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, &def)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(go4c.ErrLayerNotFound, "layer %q", name)
	}
	if err != nil {
		return nil, err
	}
	return def.Layer(), nil
}

func (cat *catalog) Layers() ([]string, error) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil, go4c.ErrCatalogClosed
	}

	var names []string
	err := cat.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         gLayerPrefix,
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			names = append(names, string(key[len(gLayerPrefix):]))
		}
		return nil
	})
	return names, err
}

func (cat *catalog) NumLayers() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return cat.state.NumLayers
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	var err error
	if cat.db != nil {
		if !cat.readOnly {
			err = cat.flushState()
		}
		if closeErr := cat.db.Close(); err == nil {
			err = closeErr
		}
		cat.db = nil
	}
	return err
}
