package query

import (
	stderrors "errors"
	"testing"

	"github.com/c360/hexastore/errors"
	"github.com/c360/hexastore/triple"
)

func TestValidateRequiresIDOrFilter(t *testing.T) {
	m := &ObjectQueryModel{}
	if !stderrors.Is(m.Validate(), errors.ErrAtLeastOneFilter) {
		t.Error("expected ErrAtLeastOneFilter")
	}

	if err := (&ObjectQueryModel{ID: "a1"}).Validate(); err != nil {
		t.Errorf("id-only model should validate, got %v", err)
	}

	if err := NewModel().Where("p", OpEq, "v").Validate(); err != nil {
		t.Errorf("filter-only model should validate, got %v", err)
	}
}

func TestValidateOperators(t *testing.T) {
	for _, op := range []Operator{OpEq, OpGt, OpGe, OpLt, OpLe, OpContains} {
		if err := NewModel().Where("p", op, "v").Validate(); err != nil {
			t.Errorf("operator %q should validate, got %v", op, err)
		}
	}

	err := NewModel().Where("p", "neq", "v").Validate()
	if !stderrors.Is(err, errors.ErrUnknownComparator) {
		t.Errorf("expected ErrUnknownComparator, got %v", err)
	}
}

func TestValidateLinks(t *testing.T) {
	base := func() *ObjectQueryModel { return NewModel().Where("p", OpEq, "v") }

	err := base().Out(LinkQuery{Path: "", Level: 0}).Validate()
	if !stderrors.Is(err, errors.ErrPathEmpty) {
		t.Errorf("expected ErrPathEmpty, got %v", err)
	}

	err = base().In(LinkQuery{Path: "", Level: 0}).Validate()
	if !stderrors.Is(err, errors.ErrPathEmpty) {
		t.Errorf("expected ErrPathEmpty for incoming link, got %v", err)
	}

	if err := base().Out(LinkQuery{Level: 3}).Validate(); err != nil {
		t.Errorf("level-mode link should validate, got %v", err)
	}

	if err := base().Out(LinkQuery{Path: "a.b.c"}).Validate(); err != nil {
		t.Errorf("path-mode link should validate, got %v", err)
	}

	err = base().Out(LinkQuery{Level: -1}).Validate()
	if err == nil || !errors.IsInvalid(err) {
		t.Errorf("negative level should be invalid, got %v", err)
	}
}

func TestSegments(t *testing.T) {
	l := LinkQuery{Path: "a.b.c"}

	got := l.segments(false)
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segments(false) = %v, want %v", got, want)
		}
	}

	rev := l.segments(true)
	wantRev := []string{"c", "b", "a"}
	for i := range wantRev {
		if rev[i] != wantRev[i] {
			t.Fatalf("segments(true) = %v, want %v", rev, wantRev)
		}
	}
}

func TestBuilderKeepsClauseOrder(t *testing.T) {
	m := NewModel().Where("first", OpEq, "1").Where("second", OpGt, "2")
	if m.Filter[0].Predicate != "first" || m.Filter[1].Predicate != "second" {
		t.Error("Where must preserve clause order; seed selection depends on it")
	}
}

func TestResponseContinuationIsTriple(t *testing.T) {
	cont := triple.New("s", "p", "o")
	r := Response{Values: []triple.Triple{cont}, Continuation: &cont}
	if r.Continuation.Subject != "s" {
		t.Error("continuation must carry the full last-emitted triple")
	}
}
