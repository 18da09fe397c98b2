package kvstore

import (
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/c360/hexastore/errors"
)

// Options configures the Badger-backed store.
type Options struct {
	// Dir is the database directory. Ignored when InMemory is set.
	Dir string

	// InMemory keeps all data in memory; used by tests and ephemeral
	// stores.
	InMemory bool

	// SyncWrites forces fsync on every commit.
	SyncWrites bool

	// Logger receives store lifecycle events. Defaults to slog.Default().
	Logger *slog.Logger
}

// badgerStore implements Store over a Badger LSM tree. Badger keeps
// keys in ascending byte order and supports prefix iteration, which is
// exactly the contract the six-index layer needs.
type badgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (or creates) a Badger-backed store.
func Open(opts Options) (Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bopts := badger.DefaultOptions(opts.Dir).
		WithInMemory(opts.InMemory).
		WithSyncWrites(opts.SyncWrites).
		WithLogger(nil)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, errors.WrapTransient(err, "kvstore", "Open", "opening badger database")
	}

	logger.Debug("opened kv store", "dir", opts.Dir, "in_memory", opts.InMemory)
	return &badgerStore{db: db, logger: logger}, nil
}

func (s *badgerStore) Get(key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, errors.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return val, nil
}

func (s *badgerStore) Has(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return true, nil
}

func (s *badgerStore) Scan(prefix, start []byte) Iterator {
	txn := s.db.NewTransaction(false)

	iopts := badger.DefaultIteratorOptions
	iopts.Prefix = prefix
	iopts.PrefetchSize = 16

	seek := prefix
	if start != nil {
		seek = start
	}

	return &badgerIterator{
		txn:    txn,
		iter:   txn.NewIterator(iopts),
		prefix: prefix,
		seek:   seek,
	}
}

func (s *badgerStore) NewBatch() Batch {
	return &badgerBatch{txn: s.db.NewTransaction(true)}
}

func (s *badgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.WrapTransient(err, "kvstore", "Close", "closing badger database")
	}
	return nil
}

// badgerBatch applies all writes inside a single Badger transaction so
// readers never observe a partial multi-index update.
type badgerBatch struct {
	txn *badger.Txn
}

func (b *badgerBatch) Set(key, value []byte) error {
	if err := b.txn.Set(key, value); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrBatchFailed, err)
	}
	return nil
}

func (b *badgerBatch) Delete(key []byte) error {
	if err := b.txn.Delete(key); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrBatchFailed, err)
	}
	return nil
}

func (b *badgerBatch) Flush() error {
	if err := b.txn.Commit(); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrBatchFailed, err)
	}
	return nil
}

func (b *badgerBatch) Cancel() {
	b.txn.Discard()
}
