package xmp

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies the variant held by a Value. Kinds are listed in the
// order simple values are classified.
type Kind uint8

const (
	// KindNull is skipped wherever it appears.
	KindNull Kind = iota

	// KindBool renders as "True" or "False".
	KindBool

	// KindDate renders through DateLike.ISO8601.
	KindDate

	// KindNumber renders as decimal text.
	KindNumber

	// KindString renders as text, or as rdf:resource for absolute URIs.
	KindString

	// KindStructure renders as rdf:Description.
	KindStructure

	// KindSequence renders as rdf:Seq or rdf:Bag.
	KindSequence

	// KindUnsupported fails serialization.
	KindUnsupported
)

var kindNames = map[Kind]string{
	KindNull:        "null",
	KindBool:        "bool",
	KindDate:        "date",
	KindNumber:      "number",
	KindString:      "string",
	KindStructure:   "structure",
	KindSequence:    "sequence",
	KindUnsupported: "unsupported",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is one node of the input tree. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	text string // number or string text
	date DateLike
	st   *Structure
	seq  []Value
	raw  any   // original value for unsupported kinds
	err  error // Marshaler failure for unsupported kinds
}

// Null returns the Null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

// Uint returns an unsigned integer value.
func Uint(u uint64) Value {
	return Value{kind: KindNumber, text: strconv.FormatUint(u, 10)}
}

// Float returns a real value. NaN and infinities have no XMP
// representation and yield an unsupported value. Negative zero renders as 0.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Unsupported(f)
	}
	if f == 0 {
		f = 0
	}
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// String returns a text value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Date returns a date value. A nil DateLike is Null.
func Date(d DateLike) Value {
	if d == nil {
		return Null()
	}
	return Value{kind: KindDate, date: d}
}

// Time returns a date value for t.
func Time(t time.Time) Value {
	return Date(Timestamp(t))
}

// Struct returns a structure value. A nil Structure is Null.
func Struct(s *Structure) Value {
	if s == nil {
		return Null()
	}
	return Value{kind: KindStructure, st: s}
}

// Seq returns a sequence value. Each element is converted with Of.
func Seq(values ...any) Value {
	seq := make([]Value, len(values))
	for i, v := range values {
		seq[i] = Of(v)
	}
	return Value{kind: KindSequence, seq: seq}
}

// Unsupported wraps a value that cannot be serialized. Serializing it fails
// with an *UnsupportedValueError naming v.
func Unsupported(v any) Value {
	return Value{kind: KindUnsupported, raw: v}
}

func unsupportedCause(v any, err error) Value {
	return Value{kind: KindUnsupported, raw: v, err: err}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is Null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsText returns the text of a number or string value.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindNumber || v.kind == KindString
}

// AsDate returns the date held by v.
func (v Value) AsDate() (DateLike, bool) {
	return v.date, v.kind == KindDate
}

// AsStructure returns the structure held by v.
func (v Value) AsStructure() (*Structure, bool) {
	return v.st, v.kind == KindStructure
}

// AsSequence returns the elements of a sequence value.
func (v Value) AsSequence() ([]Value, bool) {
	return v.seq, v.kind == KindSequence
}

// String implements fmt.Stringer for diagnostics. It is not the XMP rendering.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.date.ISO8601()
	case KindNumber:
		return v.text
	case KindString:
		return strconv.Quote(v.text)
	case KindStructure:
		return fmt.Sprintf("structure(%d)", v.st.Len())
	case KindSequence:
		return fmt.Sprintf("sequence(%d)", len(v.seq))
	default:
		return fmt.Sprintf("unsupported(%T)", v.raw)
	}
}

// Timestamp adapts time.Time to DateLike. It renders in UTC with
// millisecond precision, e.g. 1970-01-01T00:00:00.000Z.
type Timestamp time.Time

// ISO8601 implements DateLike.
func (t Timestamp) ISO8601() string {
	return time.Time(t).UTC().Format("2006-01-02T15:04:05.000Z")
}
