// Package kvstore abstracts the ordered key-value engine the index
// layer runs on. The contract is deliberately small: point reads,
// ordered prefix iteration with seek, and atomic multi-key batches.
package kvstore

// Store is an ordered byte-key store with prefix scans.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns errors.ErrKeyNotFound when the key is absent.
	Get(key []byte) ([]byte, error)

	// Has reports whether key is present without reading its value.
	Has(key []byte) (bool, error)

	// Scan returns an iterator over all keys sharing prefix, in
	// ascending byte order. When start is non-nil the iterator is
	// positioned at the first key >= start; start must share prefix.
	Scan(prefix, start []byte) Iterator

	// NewBatch starts an atomic write batch. Either every operation in
	// the batch becomes visible on Flush or none does.
	NewBatch() Batch

	// Close releases the store. Further calls fail.
	Close() error
}

// Iterator walks key-value pairs in ascending key order. The returned
// byte slices are copies and remain valid after the iterator advances.
//
//	it := store.Scan(prefix, nil)
//	defer it.Close()
//	for it.Next() {
//	    use(it.Key(), it.Value())
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Err() error
	Close() error
}

// Batch collects writes and deletes to be applied atomically.
type Batch interface {
	Set(key, value []byte) error
	Delete(key []byte) error

	// Flush commits the batch. The batch cannot be reused afterwards.
	Flush() error

	// Cancel discards the batch. Safe to call after Flush.
	Cancel()
}
