package object

// Block is Spctr's record value (spec.md §3.2/§4.2.4): a lazily evaluated
// set of named fields backed by a captured scope. Field access re-enters
// the VM at `Entry + Offsets[slot]` to run (or replay the memoized result
// of) that field's thunk.
type Block struct {
	Entry   int            // address of the start of the field-accessor region
	Fields  map[string]int // field name -> slot index, in declaration order via Order
	Order   []string       // field names in declaration order (for Json/Iterator use)
	Offsets []int          // slot index -> byte offset of that field's Load/Return pair, relative to Entry
	Scope   ScopeRef
}

func (b *Block) Type() Type      { return BlockType }
func (b *Block) Inspect() string { return "<block>" }

// Blocks compare by identity: accessing the same lazily-evaluated fields
// twice must observe memoization, which only identity can express here
// without forcing every field.
func (b *Block) Equals(other Object) bool {
	o, ok := other.(*Block)
	return ok && b == o
}
