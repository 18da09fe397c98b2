// Package index implements the six-permutation triple index over the
// ordered KV store. Every triple is written under all six orderings
// (SPO, SOP, PSO, POS, OSP, OPS) so that each lookup pattern becomes a
// sequential key-range scan on the permutation whose prefix bounds it
// most tightly.
package index

import (
	"log/slog"

	"github.com/c360/hexastore/errors"
	"github.com/c360/hexastore/metric"
	"github.com/c360/hexastore/storage/kvstore"
	"github.com/c360/hexastore/triple"
)

// Layer indexes the triples of one (store, graph) keyspace.
type Layer struct {
	kv      kvstore.Store
	storeID string
	graph   byte
	metrics *metric.Metrics
	logger  *slog.Logger
}

// New creates an index layer over kv scoped to storeID and graph tag.
func New(kv kvstore.Store, storeID string, graph byte) *Layer {
	return NewWithMetrics(kv, storeID, graph, nil, nil)
}

// NewWithMetrics creates an index layer with optional metrics and logger.
func NewWithMetrics(kv kvstore.Store, storeID string, graph byte, m *metric.Metrics, logger *slog.Logger) *Layer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Layer{
		kv:      kv,
		storeID: storeID,
		graph:   graph,
		metrics: m,
		logger:  logger,
	}
}

// Insert writes t under all six index permutations in a single atomic
// batch. Inserting an existing triple is a no-op. Readers never observe
// a partial six-index update.
func (l *Layer) Insert(t triple.Triple) error {
	return l.write(t, false)
}

// Remove deletes all six keys of t in a single atomic batch. Removing
// an absent triple is a no-op.
func (l *Layer) Remove(t triple.Triple) error {
	return l.write(t, true)
}

func (l *Layer) write(t triple.Triple, remove bool) error {
	op := "Insert"
	if remove {
		op = "Remove"
	}
	if err := t.Validate(); err != nil {
		return errors.WrapInvalid(err, "index", op, "validating triple")
	}

	payload := triple.Encode(t)
	batch := l.kv.NewBatch()
	defer batch.Cancel()

	for _, order := range triple.Orders() {
		key := triple.Key(order, l.graph, l.storeID, t)
		var err error
		if remove {
			err = batch.Delete(key)
		} else {
			err = batch.Set(key, payload)
		}
		if err != nil {
			l.countBatchFailure()
			return errors.WrapTransient(err, "index", op, "staging "+order.String()+" key")
		}
	}

	if err := batch.Flush(); err != nil {
		l.countBatchFailure()
		return errors.WrapTransient(err, "index", op, "committing six-index batch")
	}

	if l.metrics != nil {
		if remove {
			l.metrics.TriplesRemoved.Inc()
		} else {
			l.metrics.TriplesWritten.Inc()
		}
	}
	return nil
}

func (l *Layer) countBatchFailure() {
	if l.metrics != nil {
		l.metrics.BatchFailures.Inc()
	}
}

// S returns all triples with the given subject, ordered by
// (predicate, object).
func (l *Layer) S(s string) *Scan {
	return l.scan(triple.SPO, nil, s)
}

// P returns all triples with the given predicate, ordered by
// (object, subject). A non-nil continuation resumes strictly past that
// triple's key in the POS index.
func (l *Layer) P(p string, cont *triple.Triple) *Scan {
	return l.scan(triple.POS, cont, p)
}

// O returns all triples whose object raw text equals o, ordered by
// (subject, predicate). Key matching is on raw text; type tag and
// is_id are restored from the payload.
func (l *Layer) O(o string) *Scan {
	return l.scan(triple.OSP, nil, o)
}

// SP returns all triples with the given subject and predicate, ordered
// by object.
func (l *Layer) SP(s, p string) *Scan {
	return l.scan(triple.SPO, nil, s, p)
}

// PO returns all triples with the given predicate and object raw text,
// ordered by subject. A non-nil continuation resumes strictly past that
// triple's key in the POS index.
func (l *Layer) PO(p, o string, cont *triple.Triple) *Scan {
	return l.scan(triple.POS, cont, p, o)
}

// Exists reports whether the triple (s, p, o-raw) is present. Matching
// is by raw object text, consistent with key encoding.
func (l *Layer) Exists(s, p, o string) (bool, error) {
	probe := triple.Triple{Subject: s, Predicate: p}
	probe.Object.Raw = o
	ok, err := l.kv.Has(triple.Key(triple.SPO, l.graph, l.storeID, probe))
	if err != nil {
		return false, errors.WrapTransient(err, "index", "Exists", "probing SPO key")
	}
	return ok, nil
}

func (l *Layer) scan(order triple.Order, cont *triple.Triple, parts ...string) *Scan {
	prefix := triple.Prefix(order, l.graph, l.storeID, parts...)

	var start []byte
	if cont != nil {
		start = triple.Successor(triple.Key(order, l.graph, l.storeID, *cont))
	}

	if l.metrics != nil {
		l.metrics.IndexScans.WithLabelValues(order.String()).Inc()
	}
	return newScan(l.kv.Scan(prefix, start), l.metrics)
}
