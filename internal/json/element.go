package json

import "iter"

// ElementKind discriminates the shapes an Element can take.
type ElementKind int

const (
	Object ElementKind = iota
	Array
	String
	Number
	Boolean
	Null
)

// Element is a tagged node of the parsed tree. An Object's children
// all carry a Label (HasLabel is set; the key may be ""), in source order; an Array's children
// never carry a label; scalars have no children.
type Element struct {
	Kind     ElementKind
	Location Location
	Label    string
	HasLabel bool
	Children []*Element

	StringValue  string
	NumberValue  float64
	BooleanValue bool
}

// ChildCount returns the number of direct children.
func (e *Element) ChildCount() int {
	return len(e.Children)
}

// FindByLabel returns the first child with the given label in source
// order, or nil if the element is not an object or no child matches.
func (e *Element) FindByLabel(label string) *Element {
	if e.Kind != Object {
		return nil
	}
	for _, child := range e.Children {
		if child.HasLabel && child.Label == label {
			return child
		}
	}
	return nil
}

// All iterates the direct children in source order.
func (e *Element) All() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, child := range e.Children {
			if !yield(child) {
				return
			}
		}
	}
}
