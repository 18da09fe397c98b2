package index

import (
	"github.com/c360/hexastore/errors"
	"github.com/c360/hexastore/metric"
	"github.com/c360/hexastore/storage/kvstore"
	"github.com/c360/hexastore/triple"
)

// Scan is a lazy sequence of triples in index order. Each record is
// decoded as the scan advances; nothing is materialized ahead of the
// caller.
//
// A decode failure stops the scan and surfaces through Err: unreadable
// records taint the whole read, they are never silently skipped.
type Scan struct {
	it      kvstore.Iterator
	metrics *metric.Metrics
	cur     triple.Triple
	err     error
	done    bool
}

func newScan(it kvstore.Iterator, m *metric.Metrics) *Scan {
	return &Scan{it: it, metrics: m}
}

// Next advances to the next triple. It returns false when the scan is
// exhausted or an error occurred; check Err after the loop.
func (s *Scan) Next() bool {
	if s.done || s.err != nil {
		return false
	}
	if !s.it.Next() {
		s.done = true
		s.err = s.it.Err()
		return false
	}
	if s.metrics != nil {
		s.metrics.RecordsScanned.Inc()
	}

	t, err := triple.Decode(s.it.Value())
	if err != nil {
		s.done = true
		s.err = errors.WrapFatal(err, "index", "Scan", "decoding stored triple")
		return false
	}
	s.cur = t
	return true
}

// Triple returns the triple at the current position.
func (s *Scan) Triple() triple.Triple {
	return s.cur
}

// Err returns the first error the scan hit, if any.
func (s *Scan) Err() error {
	return s.err
}

// Close releases the underlying iterator and its read handle. Dropping
// a scan mid-way is the cancellation path; it holds no other state.
func (s *Scan) Close() error {
	return s.it.Close()
}

// First returns the first triple of the scan and closes it.
func (s *Scan) First() (triple.Triple, bool, error) {
	defer s.Close()
	if s.Next() {
		return s.cur, true, nil
	}
	return triple.Triple{}, false, s.err
}

// Collect drains the scan into a slice and closes it. Intended for
// tests and small administrative reads; query paths stay lazy.
func (s *Scan) Collect() ([]triple.Triple, error) {
	defer s.Close()
	var out []triple.Triple
	for s.Next() {
		out = append(out, s.cur)
	}
	return out, s.err
}
