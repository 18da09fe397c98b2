// Package triple defines the Triple record, its self-describing binary
// payload codec, and the index key encoding for the six permutations.
package triple

import (
	"fmt"

	"github.com/c360/hexastore/value"
)

// Triple represents a semantic statement following the
// Subject-Predicate-Object pattern. Subject and Predicate are non-empty
// strings; Object is a typed value. A triple whose object carries
// IsID=true is a graph edge pointing at another subject.
//
// Triples are immutable: they are written to all six index permutations
// in one batch, never mutated, and removed by deleting all six keys.
type Triple struct {
	Subject   string      `json:"subject"`
	Predicate string      `json:"predicate"`
	Object    value.Value `json:"object"`
}

// New builds a triple with a typed object inferred from raw text.
func New(subject, predicate, raw string) Triple {
	return Triple{Subject: subject, Predicate: predicate, Object: value.FromRaw(raw)}
}

// Edge builds a triple whose object references another subject.
func Edge(subject, predicate, target string) Triple {
	return Triple{Subject: subject, Predicate: predicate, Object: value.ID(target)}
}

// IsEdge reports whether this triple links two subjects rather than
// attaching a data attribute.
func (t Triple) IsEdge() bool {
	return t.Object.IsID
}

// Validate checks the structural invariants of a triple.
func (t Triple) Validate() error {
	if t.Subject == "" {
		return fmt.Errorf("triple subject is empty")
	}
	if t.Predicate == "" {
		return fmt.Errorf("triple predicate is empty")
	}
	if !t.Object.Type.IsValid() {
		return fmt.Errorf("triple object type %d is not valid", t.Object.Type)
	}
	return nil
}

// String renders the triple for logs and test failures.
func (t Triple) String() string {
	if t.Object.IsID {
		return fmt.Sprintf("(%s %s -> %s)", t.Subject, t.Predicate, t.Object.Raw)
	}
	return fmt.Sprintf("(%s %s %q:%s)", t.Subject, t.Predicate, t.Object.Raw, t.Object.Type)
}
