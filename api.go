// Package xmp serializes in-memory metadata into XMP compliant RDF/XML.
//
// The input is a tree of values rooted at an insertion-ordered Structure.
// Each value is Null, a Bool, a Number, a Date, a String, a nested Structure,
// or a Sequence. The output follows XMP Specification Part 1: structures
// become rdf:Description elements, sequences become rdf:Seq (or rdf:Bag for
// configured keys), and simple values become text or, for absolute URIs, an
// rdf:resource attribute.
//
// # Basic Usage
//
//	meta := xmp.NewStructure().
//	    Set("dc:format", "image/jpeg").
//	    Set("dc:subject", xmp.Seq("sunset", "beach")).
//	    Set("xmp:CreateDate", time.Now())
//
//	out, err := xmp.Serialize(ctx, meta,
//	    xmp.WithNamespace("dc", "http://purl.org/dc/elements/1.1/"),
//	    xmp.WithNamespace("xmp", "http://ns.adobe.com/xap/1.0/"),
//	    xmp.WithBags("dc:subject"),
//	)
//
// produces (on one line):
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:dc="..." xmlns:xmp="...">
//	<rdf:Description><dc:format>image/jpeg</dc:format>
//	<dc:subject><rdf:Bag><rdf:li>sunset</rdf:li><rdf:li>beach</rdf:li></rdf:Bag></dc:subject>
//	<xmp:CreateDate>2024-05-01T10:00:00.000Z</xmp:CreateDate></rdf:Description></rdf:RDF>
//
// # Simple Values
//
// Simple values are classified in a fixed priority order:
//
//   - true, false        → "True", "False"
//   - DateLike, time.Time → ISO 8601 text (time.Time renders in UTC with milliseconds)
//   - integers, reals    → shortest decimal text that round-trips
//   - absolute URI       → rdf:resource="..." attribute, no text
//   - other strings      → text verbatim
//
// Anything else (functions, channels, non-finite floats) fails with an
// *UnsupportedValueError.
//
// # Go Values
//
// Of converts ordinary Go values: maps with string keys become Structures
// with sorted keys, slices become Sequences, and structs are scanned for
// `xmp` tags:
//
//	type Photo struct {
//	    Title   string    `xmp:"dc:title"`
//	    Created time.Time `xmp:"xmp:CreateDate,omitempty"`
//	    Secret  string    `xmp:"-"`
//	}
//
//	meta, err := xmp.FromStruct(photo)
//
// Types implementing Marshaler bypass reflection.
//
// # Decoders
//
// The json, yaml, msgpack and bson subpackages decode documents into a
// Structure, preserving the key order of the source.
//
// # Limits
//
// Alternative arrays (rdf:Alt), qualifiers such as xml:lang, and nested
// arrays are not supported. Serialization recurses once per nesting level of
// the input; extremely deep input can exhaust the goroutine stack.
package xmp

// DateLike is implemented by values that render as an ISO 8601 date.
// Any type with this method is treated as a date, whatever its shape.
type DateLike interface {
	ISO8601() string
}
