package object

// NativeRecord is a record whose fields are already-evaluated Values,
// built directly by host (Go) code rather than by the translator. The
// host-built stdlib modules (List, Map, String, Json) are NativeRecords,
// as are objects decoded by Json.parse and the records Map.set returns;
// Iterator and its nodes are compiled Blocks. Unlike Block, field access never
// re-enters the VM: there is nothing to lazily evaluate.
type NativeRecord struct {
	Name   string
	Fields map[string]Value
}

func NewNativeRecord(name string, fields map[string]Value) *NativeRecord {
	return &NativeRecord{Name: name, Fields: fields}
}

func (r *NativeRecord) Type() Type { return NativeRecordType }

func (r *NativeRecord) Inspect() string {
	if r.Name != "" {
		return "<" + r.Name + ">"
	}
	return "<native record>"
}

func (r *NativeRecord) Equals(other Object) bool {
	o, ok := other.(*NativeRecord)
	return ok && r == o
}
