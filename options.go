package xmp

// Namespace binds a prefix to a namespace URI on the rdf:RDF element.
type Namespace struct {
	Prefix string
	URI    string
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithNamespace declares xmlns:prefix="uri" on the root element.
// Declarations are written in the order they are given.
func WithNamespace(prefix, uri string) Option {
	return func(s *Serializer) {
		s.namespaces = append(s.namespaces, Namespace{Prefix: prefix, URI: uri})
	}
}

// WithNamespaces declares several namespaces, in order.
func WithNamespaces(namespaces ...Namespace) Option {
	return func(s *Serializer) {
		s.namespaces = append(s.namespaces, namespaces...)
	}
}

// WithBags marks property keys whose sequences render as rdf:Bag instead of
// rdf:Seq. Keys match at any depth.
func WithBags(keys ...string) Option {
	return func(s *Serializer) {
		for _, k := range keys {
			s.bags[k] = struct{}{}
		}
	}
}

// WithIndent selects the pretty form, indenting each level by indent.
// The compact single-line form is the default.
func WithIndent(indent string) Option {
	return func(s *Serializer) {
		s.indent = indent
	}
}
