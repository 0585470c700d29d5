package sets

import (
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// LSM is a distinctness catalog backed by an in-memory badger instance.
//
// It is used to cross-check enumerations too large for a Go map: TryAdd reports whether a key is new.
// Unlike the other sets here, LSM is safe for concurrent use.
type LSM struct {
	mu    sync.Mutex
	db    *badger.DB
	count int64
}

func (set *LSM) autoOpen() error {
	if set.db != nil {
		return nil
	}
	dbOpts := badger.DefaultOptions("").WithInMemory(true)
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false
	dbOpts.DetectConflicts = false

	var err error
	set.db, err = badger.Open(dbOpts)
	return errors.Wrap(err, "open in-memory catalog")
}

// TryAdd adds key if it is not already present.
//
// If key was already added, this call has no effect and false is returned.
// After one or more calls to TryAdd(), call Close() for cleanup.
func (set *LSM) TryAdd(key []byte) (bool, error) {
	set.mu.Lock()
	defer set.mu.Unlock()

	if err := set.autoOpen(); err != nil {
		return false, err
	}

	added := false
	err := set.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil // already present
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, nil)
	})
	if err != nil {
		return false, errors.Wrap(err, "catalog add")
	}
	if added {
		set.count++
	}
	return added, nil
}

// Len returns the number of distinct keys added since the last Close().
func (set *LSM) Len() int64 {
	set.mu.Lock()
	defer set.mu.Unlock()
	return set.count
}

// Close removes all previously added keys.
func (set *LSM) Close() error {
	set.mu.Lock()
	defer set.mu.Unlock()

	var err error
	if set.db != nil {
		err = set.db.Close()
		set.db = nil
	}
	set.count = 0
	return err
}
