package index

import (
	"github.com/c360/hexastore/errors"
	"github.com/c360/hexastore/triple"
)

// Count returns the number of triples matching the pattern, where an
// empty component is a wildcard. A fully bound pattern is a single key
// probe; otherwise the permutation whose prefix most tightly bounds the
// scan is selected, so the count is a single sequential range scan and
// records are counted without decoding.
func (l *Layer) Count(s, p, o string) (int, error) {
	var (
		order triple.Order
		parts []string
	)
	switch {
	case s != "" && p != "" && o != "":
		ok, err := l.Exists(s, p, o)
		if err != nil {
			return 0, err
		}
		if ok {
			return 1, nil
		}
		return 0, nil
	case s != "" && p != "":
		order, parts = triple.SPO, []string{s, p}
	case s != "" && o != "":
		order, parts = triple.SOP, []string{s, o}
	case p != "" && o != "":
		order, parts = triple.POS, []string{p, o}
	case s != "":
		order, parts = triple.SPO, []string{s}
	case p != "":
		order, parts = triple.PSO, []string{p}
	case o != "":
		order, parts = triple.OPS, []string{o}
	default:
		order, parts = triple.SPO, nil
	}

	if l.metrics != nil {
		l.metrics.IndexScans.WithLabelValues(order.String()).Inc()
	}

	it := l.kv.Scan(triple.Prefix(order, l.graph, l.storeID, parts...), nil)
	defer it.Close()

	count := 0
	for it.Next() {
		count++
	}
	if err := it.Err(); err != nil {
		return 0, errors.WrapTransient(err, "index", "Count", "scanning "+order.String())
	}
	return count, nil
}
