package xmp

import "github.com/beevik/etree"

// simple renders a simple value onto el with exactly one text or attribute
// assignment. See XMP Specification Part 1, 7.5 and 8.2.
func simple(el *etree.Element, v Value, path string) error {
	switch v.kind {
	case KindBool:
		// Boolean 8.2.1.1
		if v.b {
			el.SetText("True")
		} else {
			el.SetText("False")
		}
	case KindDate:
		// Date 8.2.1.2
		el.SetText(v.date.ISO8601())
	case KindNumber:
		el.SetText(v.text)
	case KindString:
		switch {
		case IsURI(v.text):
			el.CreateAttr(rdfResource, v.text)
		case v.text != "":
			el.SetText(v.text)
		}
	default:
		return &UnsupportedValueError{Path: path, Value: v.raw, Cause: v.err}
	}
	return nil
}
