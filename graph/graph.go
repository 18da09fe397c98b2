// Package graph exposes the per-store triple graph facade. Callers get
// lookup and write primitives without knowing which of the six index
// permutations satisfies a pattern.
package graph

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/c360/hexastore/config"
	"github.com/c360/hexastore/index"
	"github.com/c360/hexastore/metric"
	"github.com/c360/hexastore/storage/kvstore"
	"github.com/c360/hexastore/triple"
)

// Name identifies one of the three conceptual graphs a store owns.
type Name string

const (
	// Data holds asserted triples.
	Data Name = "data"
	// Infer holds triples produced by the reasoner.
	Infer Name = "infer"
	// Meta holds store bookkeeping triples.
	Meta Name = "meta"
)

// Tag returns the key-prefix byte for the graph name.
func (n Name) Tag() byte {
	switch n {
	case Infer:
		return 'i'
	case Meta:
		return 'm'
	default:
		return 'd'
	}
}

// IsValid checks if the Name is one of the defined constants.
func (n Name) IsValid() bool {
	switch n {
	case Data, Infer, Meta:
		return true
	default:
		return false
	}
}

// Store owns the KV engine and hands out per-store graph handles.
// Logical stores are isolated by key prefix; one Store multiplexes any
// number of store IDs.
type Store struct {
	kv      kvstore.Store
	cfg     *config.Config
	metrics *metric.Metrics
	logger  *slog.Logger

	mu     sync.RWMutex
	graphs map[string]*Graph
}

// Open opens the KV engine described by cfg and returns the store.
// Registry and logger may be nil.
func Open(cfg *config.Config, registry *metric.Registry, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	kv, err := kvstore.Open(kvstore.Options{
		Dir:        cfg.Storage.Dir,
		InMemory:   cfg.Storage.InMemory,
		SyncWrites: cfg.Storage.SyncWrites,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	return NewStore(kv, cfg, registry, logger), nil
}

// NewStore wraps an already-open KV store. Open calls it after opening
// the engine.
func NewStore(kv kvstore.Store, cfg *config.Config, registry *metric.Registry, logger *slog.Logger) *Store {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	var m *metric.Metrics
	if registry != nil {
		m = registry.Core
	}
	return &Store{
		kv:      kv,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
		graphs:  make(map[string]*Graph),
	}
}

// Config returns the store configuration.
func (s *Store) Config() *config.Config {
	return s.cfg
}

// Graph returns the data graph handle for storeID.
func (s *Store) Graph(storeID string) *Graph {
	return s.NamedGraph(storeID, Data)
}

// NamedGraph returns the handle for one of storeID's three graphs.
func (s *Store) NamedGraph(storeID string, name Name) *Graph {
	if !name.IsValid() {
		name = Data
	}
	key := string(name.Tag()) + storeID

	s.mu.RLock()
	g, ok := s.graphs[key]
	s.mu.RUnlock()
	if ok {
		return g
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok = s.graphs[key]; ok {
		return g
	}
	g = &Graph{
		idx:     index.NewWithMetrics(s.kv, storeID, name.Tag(), s.metrics, s.logger),
		storeID: storeID,
		name:    name,
	}
	s.graphs[key] = g
	return g
}

// Close releases the KV engine. All graph handles become invalid.
func (s *Store) Close() error {
	return s.kv.Close()
}

// NewStoreID generates a fresh store identifier.
func NewStoreID() string {
	return uuid.NewString()
}

// Graph is the per-(store, graph) facade over the index layer.
type Graph struct {
	idx     *index.Layer
	storeID string
	name    Name
}

// StoreID returns the store this graph belongs to.
func (g *Graph) StoreID() string {
	return g.storeID
}

// Name returns which of the three conceptual graphs this handle is.
func (g *Graph) Name() Name {
	return g.name
}

// Insert writes a triple to all six indices atomically. Idempotent.
func (g *Graph) Insert(t triple.Triple) error {
	return g.idx.Insert(t)
}

// Remove deletes a triple from all six indices atomically. Idempotent.
func (g *Graph) Remove(t triple.Triple) error {
	return g.idx.Remove(t)
}

// S returns triples with the given subject, ordered by (predicate, object).
func (g *Graph) S(s string) *index.Scan {
	return g.idx.S(s)
}

// P returns triples with the given predicate, ordered by (object, subject).
func (g *Graph) P(p string, cont *triple.Triple) *index.Scan {
	return g.idx.P(p, cont)
}

// O returns triples with the given object raw text, ordered by
// (subject, predicate).
func (g *Graph) O(o string) *index.Scan {
	return g.idx.O(o)
}

// SP returns triples with the given subject and predicate, ordered by object.
func (g *Graph) SP(s, p string) *index.Scan {
	return g.idx.SP(s, p)
}

// PO returns triples with the given predicate and object raw text,
// ordered by subject.
func (g *Graph) PO(p, o string, cont *triple.Triple) *index.Scan {
	return g.idx.PO(p, o, cont)
}

// Exists reports membership of (s, p, o-raw).
func (g *Graph) Exists(s, p, o string) (bool, error) {
	return g.idx.Exists(s, p, o)
}

// Count returns the number of triples matching the pattern; empty
// components are wildcards.
func (g *Graph) Count(s, p, o string) (int, error) {
	return g.idx.Count(s, p, o)
}

// Verify runs the cross-permutation consistency check.
func (g *Graph) Verify(ctx context.Context) (*index.VerifyReport, error) {
	return g.idx.Verify(ctx)
}
