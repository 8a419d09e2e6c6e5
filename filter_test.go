package rowtypes

import "testing"

func TestMatchesOrderedUsesTypeCompare(t *testing.T) {
	nt := NewNumberType("score")
	if !MatchesOrdered(OpLessThan, nt.Compare, 1.0, 2.0) {
		t.Fatalf("1 < 2 should match OpLessThan")
	}
	if MatchesOrdered(OpLessThan, nt.Compare, 2.0, 1.0) {
		t.Fatalf("2 < 1 should not match OpLessThan")
	}
	if !MatchesOrdered(OpEqual, nt.Compare, 5.0, 5.0) {
		t.Fatalf("5 == 5 should match OpEqual")
	}
	if !MatchesOrdered(OpGreaterThanOrEqual, nt.Compare, 5.0, 5.0) {
		t.Fatalf("5 >= 5 should match OpGreaterThanOrEqual")
	}
}

func TestMatchesOrderedWithStringCompare(t *testing.T) {
	st := NewStringType("name")
	if !MatchesOrdered(OpLessThan, st.Compare, "alice", "bob") {
		t.Fatalf(`"alice" < "bob" should match OpLessThan`)
	}
	if MatchesOrdered(OpNotEqual, st.Compare, "alice", "alice") {
		t.Fatalf(`"alice" != "alice" should not match`)
	}
}

func TestJoinConditionsRendersRangeFilter(t *testing.T) {
	lower := NewCondition(OpGreaterThanOrEqual, renderLiteral("10"))
	upper := NewCondition(OpLessThan, renderLiteral("20"))
	got, err := JoinConditions("score", lower, upper)
	if err != nil {
		t.Fatalf("JoinConditions: %v", err)
	}
	want := "score ge 10 and score lt 20"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJoinConditionsRejectsUnknownOperator(t *testing.T) {
	bad := NewCondition(Operator("near"), "x")
	if _, err := JoinConditions("p", bad); err == nil {
		t.Fatalf("expected error for unknown operator")
	}
}
