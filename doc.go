// Package hexastore provides a persistent triple graph store over an
// ordered key-value engine.
//
// # Architecture
//
// Hexastore models data as subject-predicate-object (SPO) triples and
// maintains six index permutations of every triple so that any lookup
// pattern becomes a sequential key-range scan:
//
//	value    - typed object values and comparison semantics
//	triple   - the Triple record, its binary codec, and index key encoding
//	storage  - the ordered KV abstraction and its Badger implementation
//	index    - the six-permutation index layer (S, P, O, SP, PO, Exists)
//	graph    - per-store facade aggregating the index layer
//	query    - the object query model and its executor
//	errors   - error classification shared across packages
//	metric   - Prometheus metrics registry
//	config   - store configuration
//
// # Data flow
//
// Writers insert triples through a Graph handle; the index layer writes
// all six permutations in one atomic batch. Queries enter the executor,
// which seeds from the most direct index scan available, narrows the
// candidate set with the remaining filters and link traversals, and cuts
// the result at the requested page size with a continuation triple.
//
// Each store is addressed by a store ID and owns three named graphs
// (data, infer, meta); multiplexing is a key-prefix concern and is
// invisible to callers of the query layer.
package hexastore
