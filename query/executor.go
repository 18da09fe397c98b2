package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/c360/hexastore/config"
	"github.com/c360/hexastore/errors"
	"github.com/c360/hexastore/graph"
	"github.com/c360/hexastore/index"
	"github.com/c360/hexastore/metric"
	"github.com/c360/hexastore/triple"
	"github.com/c360/hexastore/value"
)

// Executor runs object queries against one graph. It is stateless
// between calls; a query holds no resources beyond its lazy scan, so
// dropping it mid-page is the cancellation path.
type Executor struct {
	graph           *graph.Graph
	defaultPageSize int
	maxPageSize     int
	maxDepth        int
	metrics         *metric.Metrics
	logger          *slog.Logger
}

// NewExecutor creates an executor with the limits from cfg.
func NewExecutor(g *graph.Graph, cfg *config.Config) *Executor {
	return NewExecutorWithMetrics(g, cfg, nil, nil)
}

// NewExecutorWithMetrics creates an executor with optional metrics and logger.
func NewExecutorWithMetrics(g *graph.Graph, cfg *config.Config, registry *metric.Registry, logger *slog.Logger) *Executor {
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
	return &Executor{
		graph:           g,
		defaultPageSize: cfg.Query.DefaultPageSize,
		maxPageSize:     cfg.Query.MaxPageSize,
		maxDepth:        cfg.Query.MaxTraversalDepth,
		metrics:         m,
		logger:          logger,
	}
}

// Run executes one query against storeID's data graph. This is the
// package-level entry matching the store's external query contract.
func Run(ctx context.Context, store *graph.Store, storeID string, m *ObjectQueryModel) (*Response, error) {
	return NewExecutor(store.Graph(storeID), store.Config()).Execute(ctx, m)
}

// Execute runs one page of the query.
func (e *Executor) Execute(ctx context.Context, m *ObjectQueryModel) (*Response, error) {
	start := time.Now()
	kind := "filter"
	if m != nil && m.ID != "" {
		kind = "id"
	}

	resp, err := e.execute(ctx, m)

	if e.metrics != nil {
		e.metrics.QueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		if err != nil {
			e.metrics.QueryErrors.WithLabelValues(errorKind(err)).Inc()
		} else {
			e.metrics.QueryResults.Observe(float64(len(resp.Values)))
		}
	}
	if err != nil {
		e.logger.Debug("query failed",
			"store", e.graph.StoreID(),
			"kind", kind,
			"error", err)
	}
	return resp, err
}

func (e *Executor) execute(ctx context.Context, m *ObjectQueryModel) (*Response, error) {
	if m == nil {
		return nil, errors.ErrAtLeastOneFilter
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	// Id shortcut: the first triple of S(id) (or none), no paging.
	if m.ID != "" {
		t, ok, err := e.graph.S(m.ID).First()
		if err != nil {
			return nil, err
		}
		if !ok {
			return &Response{Values: []triple.Triple{}}, nil
		}
		return &Response{Values: []triple.Triple{t}}, nil
	}

	pageSize := m.PageSize
	if pageSize <= 0 {
		pageSize = e.defaultPageSize
	}
	if pageSize > e.maxPageSize {
		pageSize = e.maxPageSize
	}

	seed, rest := chooseSeed(m.Filter)
	scan, seedFilter := e.seedScan(seed, m.Continuation)
	defer scan.Close()

	values := make([]triple.Triple, 0, pageSize)

	for scan.Next() {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapTransient(err, "query", "Execute", "scanning seed")
		}

		t := scan.Triple()
		if seedFilter != nil && !seedFilter(t.Object) {
			continue
		}

		ok, err := e.subjectMatchesFilters(t.Subject, rest)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		ok, err = e.subjectMatchesLinks(ctx, t.Subject, m.HasObject, m.HasSubject)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		values = append(values, t)
		if len(values) == pageSize {
			break
		}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}

	var cont *triple.Triple
	if len(values) == pageSize {
		last := values[len(values)-1]
		cont = &last
	}
	return &Response{Values: values, Continuation: cont}, nil
}

// chooseSeed selects the seed clause and returns it with the remaining
// clauses in caller order. The first eq clause wins: an eq seed rides
// the POS prefix directly, so it bounds the scan far more tightly than
// a comparator's full-predicate scan. With no eq clause the first
// clause seeds. The choice is a deterministic function of the model, so
// a continuation resumes the same seed scan.
func chooseSeed(clauses []FilterClause) (FilterClause, []FilterClause) {
	seedIdx := 0
	for i, clause := range clauses {
		if clause.Unit.Operator == OpEq {
			seedIdx = i
			break
		}
	}

	rest := make([]FilterClause, 0, len(clauses)-1)
	rest = append(rest, clauses[:seedIdx]...)
	rest = append(rest, clauses[seedIdx+1:]...)
	return clauses[seedIdx], rest
}

// seedScan builds the seed sequence for the chosen clause. An eq
// clause rides the POS index directly; comparators have no ordered
// range over the encoded object bytes, so they scan P(k) and filter.
func (e *Executor) seedScan(seed FilterClause, cont *triple.Triple) (*index.Scan, func(value.Value) bool) {
	want := value.FromRaw(seed.Unit.Value)
	if seed.Unit.Operator == OpEq {
		return e.graph.PO(seed.Predicate, want.Raw, cont), matcher(seed.Unit)
	}
	return e.graph.P(seed.Predicate, cont), matcher(seed.Unit)
}

// matcher builds the type-aware predicate for a constraint. Operator
// dispatch lives here and nowhere else; the executor only distinguishes
// the eq fast path from comparator filtering.
func matcher(u Unit) func(value.Value) bool {
	want := value.FromRaw(u.Value)
	switch u.Operator {
	case OpEq:
		return func(obj value.Value) bool {
			return obj.Raw == want.Raw && (obj.Type == want.Type || obj.Equals(want))
		}
	case OpGt:
		return func(obj value.Value) bool { return obj.Compare(want) == value.Greater }
	case OpGe:
		return func(obj value.Value) bool {
			o := obj.Compare(want)
			return o == value.Greater || o == value.Equal
		}
	case OpLt:
		return func(obj value.Value) bool { return obj.Compare(want) == value.Less }
	case OpLe:
		return func(obj value.Value) bool {
			o := obj.Compare(want)
			return o == value.Less || o == value.Equal
		}
	case OpContains:
		return func(obj value.Value) bool { return obj.Contains(u.Value) }
	default:
		return func(value.Value) bool { return false }
	}
}

// subjectMatchesFilters narrows a candidate subject with the remaining
// clauses: eq probes index membership, comparators scan the subject's
// values for the predicate.
func (e *Executor) subjectMatchesFilters(subject string, clauses []FilterClause) (bool, error) {
	for _, clause := range clauses {
		if clause.Unit.Operator == OpEq {
			want := value.FromRaw(clause.Unit.Value)
			ok, err := e.graph.Exists(subject, clause.Predicate, want.Raw)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
			continue
		}

		match := matcher(clause.Unit)
		sp := e.graph.SP(subject, clause.Predicate)
		any := false
		for sp.Next() {
			if match(sp.Triple().Object) {
				any = true
				break
			}
		}
		err := sp.Err()
		sp.Close()
		if err != nil {
			return false, err
		}
		if !any {
			return false, nil
		}
	}
	return true, nil
}

func errorKind(err error) string {
	switch {
	case errors.IsValidation(err):
		return "validation"
	case errors.IsFatal(err):
		return "corrupt"
	case errors.IsTransient(err):
		return "store"
	default:
		return "other"
	}
}
