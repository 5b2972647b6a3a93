package object

import "strings"

// List is Spctr's immutable shared ordered sequence of Value.
type List struct {
	Elements []Value
}

func NewList(elems []Value) *List { return &List{Elements: elems} }

func (l *List) Type() Type { return ListType }

func (l *List) Inspect() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range l.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Inspect())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (l *List) Equals(other Object) bool {
	o, ok := other.(*List)
	if !ok || len(l.Elements) != len(o.Elements) {
		return false
	}
	for i := range l.Elements {
		if !l.Elements[i].Equals(o.Elements[i]) {
			return false
		}
	}
	return true
}
