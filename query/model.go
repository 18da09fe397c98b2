// Package query defines the object query model and its executor.
//
// A query is seeded from one filter clause, narrowed by the remaining
// filters and link traversals, and cut at the requested page size with
// a continuation triple. The executor stays lazy until the final page
// cut; large candidate sets are never materialized.
package query

import (
	"fmt"
	"strings"

	"github.com/c360/hexastore/errors"
	"github.com/c360/hexastore/triple"
)

// Operator enumerates the filter comparators.
type Operator string

const (
	OpEq       Operator = "eq"
	OpGt       Operator = "gt"
	OpGe       Operator = "ge"
	OpLt       Operator = "lt"
	OpLe       Operator = "le"
	OpContains Operator = "contains"
)

// IsValid checks if the Operator is one of the enumerated comparators.
func (op Operator) IsValid() bool {
	switch op {
	case OpEq, OpGt, OpGe, OpLt, OpLe, OpContains:
		return true
	default:
		return false
	}
}

// PathDelimiter separates the predicate segments of a link path.
const PathDelimiter = "."

// Unit is one predicate constraint: comparator plus canonical value text.
type Unit struct {
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// FilterClause binds a predicate to a constraint. Clauses keep caller
// order; the first eq clause (or, with none, the first clause) seeds the
// index scan, so a stable order is part of the continuation contract.
type FilterClause struct {
	Predicate string `json:"predicate"`
	Unit      Unit   `json:"unit"`
}

// LinkQuery expresses a graph traversal constraint. Exactly one of
// Path or Level governs the walk:
//
//   - Level == 0 with a non-empty Path follows the explicit predicate
//     sequence (Path split on ".").
//   - Level > 0 walks the transitive closure of id-edges up to Level
//     hops, source included at depth 0.
//
// The Target model is matched against the far endpoints of the walk.
type LinkQuery struct {
	Path   string            `json:"path,omitempty"`
	Level  int               `json:"level,omitempty"`
	Target *ObjectQueryModel `json:"target,omitempty"`
}

// ObjectQueryModel describes one page of an object query.
type ObjectQueryModel struct {
	// ID short-circuits the query to the first triple of S(id).
	ID string `json:"id,omitempty"`

	// Filter narrows by predicate constraints. Required unless ID is set.
	Filter []FilterClause `json:"filter,omitempty"`

	// HasObject applies outgoing link constraints, in order.
	HasObject []LinkQuery `json:"has_object,omitempty"`

	// HasSubject applies incoming link constraints, in order.
	// Outgoing constraints are applied first.
	HasSubject []LinkQuery `json:"has_subject,omitempty"`

	// PageSize caps the result; 0 means the configured default.
	PageSize int `json:"page_size,omitempty"`

	// Continuation resumes a prior response strictly past this triple.
	Continuation *triple.Triple `json:"continuation,omitempty"`
}

// Response is one page of query results. A non-nil Continuation is the
// last triple of the page; pass it back unchanged to fetch the next.
type Response struct {
	Values       []triple.Triple `json:"values"`
	Continuation *triple.Triple  `json:"continuation,omitempty"`
}

// NewModel starts an empty query model for fluent construction.
func NewModel() *ObjectQueryModel {
	return &ObjectQueryModel{}
}

// Where appends a filter clause.
func (m *ObjectQueryModel) Where(predicate string, op Operator, val string) *ObjectQueryModel {
	m.Filter = append(m.Filter, FilterClause{Predicate: predicate, Unit: Unit{Operator: op, Value: val}})
	return m
}

// Out appends an outgoing link constraint.
func (m *ObjectQueryModel) Out(link LinkQuery) *ObjectQueryModel {
	m.HasObject = append(m.HasObject, link)
	return m
}

// In appends an incoming link constraint.
func (m *ObjectQueryModel) In(link LinkQuery) *ObjectQueryModel {
	m.HasSubject = append(m.HasSubject, link)
	return m
}

// Validate checks the model at the query boundary. Validation failures
// terminate the query with no partial results.
func (m *ObjectQueryModel) Validate() error {
	if m.ID == "" && len(m.Filter) == 0 {
		return errors.ErrAtLeastOneFilter
	}
	for _, clause := range m.Filter {
		if !clause.Unit.Operator.IsValid() {
			return fmt.Errorf("%w: %q", errors.ErrUnknownComparator, clause.Unit.Operator)
		}
	}
	for _, link := range m.HasObject {
		if err := link.validate(); err != nil {
			return err
		}
	}
	for _, link := range m.HasSubject {
		if err := link.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l *LinkQuery) validate() error {
	if l.Level < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("link level %d is negative", l.Level),
			"query", "Validate", "checking link query")
	}
	if l.Level == 0 && l.Path == "" {
		return errors.ErrPathEmpty
	}
	if l.Target != nil {
		if err := l.Target.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// segments splits the link path into predicate segments, reversed for
// incoming traversal.
func (l *LinkQuery) segments(incoming bool) []string {
	segs := strings.Split(l.Path, PathDelimiter)
	if incoming {
		for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
			segs[i], segs[j] = segs[j], segs[i]
		}
	}
	return segs
}
