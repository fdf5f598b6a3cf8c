// Package xmltree renders etree element trees as namespace well-formed
// documents.
//
// Trees are built with etree (NewElement, CreateElement, CreateAttr,
// SetText). Render checks names, namespace bindings and character data over
// the whole tree before anything is written, so nothing is returned when
// validation fails.
package xmltree

import (
	"strings"

	"github.com/beevik/etree"
)

// Declaration is the XML declaration written ahead of every document.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// XMLNamespace is the namespace permanently bound to the xml prefix.
const XMLNamespace = "http://www.w3.org/XML/1998/namespace"

// Options controls rendering.
type Options struct {
	// Indent, when non-empty, switches to the pretty form: one element per
	// line, nested elements indented by Indent per level.
	Indent string
}

// Render validates the tree and writes it, preceded by Declaration.
// Escaping is limited to what well-formedness requires: &, < and > in text,
// and &, <, quotes and whitespace controls in attribute values.
func Render(root *etree.Element, opts Options) ([]byte, error) {
	if err := validate(root, &scope{prefix: "xml", uri: XMLNamespace}); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	if opts.Indent == "" {
		doc.SetRoot(root)
		return doc.WriteToBytes()
	}

	root = root.Copy()
	indent(root, opts.Indent, 0)
	doc.CreateText("\n")
	doc.SetRoot(root)
	doc.CreateText("\n")
	return doc.WriteToBytes()
}

// indent puts every child element of e on its own line. Leaf elements are
// left untouched so empty ones stay self-closing.
func indent(e *etree.Element, pad string, depth int) {
	children := e.ChildElements()
	if len(children) == 0 {
		return
	}
	for _, c := range children {
		e.InsertChildAt(c.Index(), etree.NewText("\n"+strings.Repeat(pad, depth+1)))
		indent(c, pad, depth+1)
	}
	e.AddChild(etree.NewText("\n" + strings.Repeat(pad, depth)))
}

// scope is a linked list of in-scope prefix bindings.
type scope struct {
	prefix string
	uri    string
	parent *scope
}

func (s *scope) lookup(prefix string) (string, bool) {
	for ; s != nil; s = s.parent {
		if s.prefix == prefix {
			return s.uri, true
		}
	}
	return "", false
}

func validate(e *etree.Element, parent *scope) error {
	name := e.FullTag()
	if err := CheckName(name); err != nil {
		return err
	}
	if e.Space == "xmlns" {
		return newError(name, "element names cannot use the xmlns prefix")
	}

	// Declarations on this element are in scope for its own name and attributes.
	sc := parent
	for _, a := range e.Attr {
		switch {
		case a.Space == "" && a.Key == "xmlns":
			sc = &scope{prefix: "", uri: a.Value, parent: sc}
		case a.Space == "xmlns":
			if a.Key == "xmlns" {
				return newError(a.FullKey(), "the xmlns prefix cannot be declared")
			}
			if a.Value == "" {
				return newError(a.FullKey(), "prefix cannot be bound to an empty namespace")
			}
			if (a.Key == "xml") != (a.Value == XMLNamespace) {
				return newError(a.FullKey(), "the xml prefix is reserved for "+XMLNamespace)
			}
			sc = &scope{prefix: a.Key, uri: a.Value, parent: sc}
		}
	}
	if e.Space != "" {
		if _, ok := sc.lookup(e.Space); !ok {
			return newError(name, "undeclared namespace prefix "+e.Space)
		}
	}

	seen := make(map[string]bool, len(e.Attr))
	for _, a := range e.Attr {
		key := a.FullKey()
		if err := CheckName(key); err != nil {
			return err
		}
		expanded := key
		if a.Space != "" && a.Space != "xmlns" {
			uri, ok := sc.lookup(a.Space)
			if !ok {
				return newError(key, "undeclared namespace prefix "+a.Space)
			}
			expanded = "{" + uri + "}" + a.Key
		}
		if seen[expanded] {
			return newError(key, "duplicate attribute")
		}
		seen[expanded] = true
		if err := validateChars(key, a.Value); err != nil {
			return err
		}
	}

	for _, t := range e.Child {
		switch t := t.(type) {
		case *etree.CharData:
			if err := validateChars(name, t.Data); err != nil {
				return err
			}
		case *etree.Element:
			if err := validate(t, sc); err != nil {
				return err
			}
		}
	}
	return nil
}
