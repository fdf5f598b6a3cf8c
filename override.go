package xmp

// Marshaler lets a type bypass reflection-based conversion.
// When a value implements Marshaler, Of and FromStruct call MarshalXMP
// instead of scanning its fields.
//
// This provides two benefits:
// 1. Performance: Avoid reflection overhead for hot paths
// 2. Custom logic: Emit shapes that can't be expressed via tags
//
// A MarshalXMP error surfaces when the value is serialized, as an
// *UnsupportedValueError carrying the error as its Cause.
type Marshaler interface {
	MarshalXMP() (Value, error)
}

// marshal calls the override, folding failures into an unsupported value.
func marshal(m Marshaler) Value {
	v, err := m.MarshalXMP()
	if err != nil {
		return unsupportedCause(m, err)
	}
	return v
}
