package kvstore

import (
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/c360/hexastore/errors"
)

var _ Iterator = (*badgerIterator)(nil)

// badgerIterator adapts Badger's iterator to the pull-based contract.
// The read transaction is held for the iterator's lifetime and released
// on Close.
type badgerIterator struct {
	close   sync.Once
	txn     *badger.Txn
	iter    *badger.Iterator
	prefix  []byte
	seek    []byte
	started bool
	key     []byte
	val     []byte
	err     error
}

func (i *badgerIterator) Next() bool {
	if i.err != nil {
		return false
	}
	if !i.started {
		i.started = true
		i.iter.Seek(i.seek)
	} else {
		i.iter.Next()
	}
	if !i.iter.ValidForPrefix(i.prefix) {
		i.key = nil
		i.val = nil
		return false
	}

	item := i.iter.Item()
	i.key = item.KeyCopy(nil)
	i.val, i.err = item.ValueCopy(nil)
	if i.err != nil {
		i.err = fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, i.err)
		i.key = nil
		i.val = nil
		return false
	}
	return true
}

func (i *badgerIterator) Key() []byte {
	return i.key
}

func (i *badgerIterator) Value() []byte {
	return i.val
}

func (i *badgerIterator) Err() error {
	return i.err
}

func (i *badgerIterator) Close() error {
	i.close.Do(func() {
		if i.iter != nil {
			i.iter.Close()
		}
		if i.txn != nil {
			i.txn.Discard()
		}
	})
	return nil
}
