package json

import (
	"math"
	"strings"
	"testing"
)

func parseOk(t *testing.T, src string) *Element {
	t.Helper()
	result := Parse(NewByteView([]byte(src)))
	el, err := result.Unwrap()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return el
}

func TestParseObjectWithMixedArray(t *testing.T) {
	root := parseOk(t, `{"x": 1, "y": [true, null, false]}`)

	if root.Kind != Object {
		t.Fatalf("root kind: got %v, want Object", root.Kind)
	}

	y := root.FindByLabel("y")
	if y == nil {
		t.Fatal("expected to find label 'y'")
	}
	if y.Kind != Array || y.ChildCount() != 3 {
		t.Fatalf("y: got kind=%v count=%d, want Array with 3 children", y.Kind, y.ChildCount())
	}

	wantKinds := []ElementKind{Boolean, Null, Boolean}
	for i, child := range y.Children {
		if child.Kind != wantKinds[i] {
			t.Errorf("y[%d]: got %v, want %v", i, child.Kind, wantKinds[i])
		}
		if child.HasLabel {
			t.Errorf("y[%d]: array children must not carry a label", i)
		}
	}
	if !y.Children[0].BooleanValue {
		t.Error("y[0] should be true")
	}
	if y.Children[2].BooleanValue {
		t.Error("y[2] should be false")
	}
}

func TestEmptyContainers(t *testing.T) {
	obj := parseOk(t, `{}`)
	if obj.Kind != Object || obj.ChildCount() != 0 {
		t.Fatalf("got kind=%v count=%d, want empty Object", obj.Kind, obj.ChildCount())
	}

	arr := parseOk(t, `[]`)
	if arr.Kind != Array || arr.ChildCount() != 0 {
		t.Fatalf("got kind=%v count=%d, want empty Array", arr.Kind, arr.ChildCount())
	}
}

func TestFindByLabelReturnsFirstMatch(t *testing.T) {
	root := parseOk(t, `{"a": 1, "a": 2}`)
	first := root.FindByLabel("a")
	if first == nil || first.NumberValue != 1 {
		t.Fatalf("expected first 'a' (1), got %+v", first)
	}
	if root.FindByLabel("missing") != nil {
		t.Error("expected nil for a missing label")
	}
}

func TestPositionStrictlyIncreasingPreorder(t *testing.T) {
	root := parseOk(t, `{"pairs": [{"x0": 0, "y0": 1.5}, {"x0": 2}], "count": 2}`)

	last := -1
	var walk func(*Element)
	walk = func(e *Element) {
		if e.Location.Position <= last {
			t.Fatalf("position not strictly increasing: %d after %d", e.Location.Position, last)
		}
		last = e.Location.Position
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(root)
}

func TestParseErrorsAreWrappedWithLocation(t *testing.T) {
	result := Parse(NewByteView([]byte(`{"pairs": [{"x0": +1}]}`)))
	_, err := result.Unwrap()
	if err == nil {
		t.Fatal("expected a parse error for a leading '+'")
	}
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected a non-empty diagnostic message")
	}
	for _, want := range []string{
		"Failed parsing list 'pairs' at location Ln:1,",
		"Failed parsing child element 'x0' at location Ln:1,",
		"Invalid character '+'",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in diagnostic: %s", want, msg)
		}
	}
}

func TestMissingColonIsSyntaxError(t *testing.T) {
	_, err := Parse(NewByteView([]byte(`{"a" 1}`))).Unwrap()
	if err == nil {
		t.Fatal("expected an error for a missing ':'")
	}
}

func TestLeadingCommaInListIsError(t *testing.T) {
	_, err := Parse(NewByteView([]byte(`[,1]`))).Unwrap()
	if err == nil {
		t.Fatal("expected an error for a leading ',' in a list")
	}
}

func TestHaversineShapedDocument(t *testing.T) {
	root := parseOk(t, `{"pairs": [{"x0": 0.1246, "y0": 51.5007, "x1": -74.0445, "y1": 40.6892}], "avg": 5574.84, "count": 1}`)

	pairs := root.FindByLabel("pairs")
	if pairs == nil || pairs.Kind != Array || pairs.ChildCount() != 1 {
		t.Fatalf("unexpected pairs element: %+v", pairs)
	}
	pair := pairs.Children[0]
	// The tokenizer adds each fractional digit through a running factor
	// that is divided by 10 per digit, so the decoded value can differ
	// from the nearest double to the literal in the last bits.
	x1 := pair.FindByLabel("x1")
	if x1 == nil || math.Abs(x1.NumberValue-(-74.0445)) > 1e-12 {
		t.Fatalf("unexpected x1: %+v", x1)
	}

	count := root.FindByLabel("count")
	if count == nil || count.NumberValue != 1 {
		t.Fatalf("unexpected count: %+v", count)
	}
}
