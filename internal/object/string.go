package object

// String is Spctr's immutable shared text value.
type String struct {
	Value string
}

func NewString(s string) *String { return &String{Value: s} }

func (s *String) Type() Type      { return StringType }
func (s *String) Inspect() string { return s.Value }
func (s *String) Equals(other Object) bool {
	o, ok := other.(*String)
	return ok && s.Value == o.Value
}
