package xmp

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/zoobzio/xmp/internal/xmltree"
)

const (
	// ContentType is the MIME type of serialized documents.
	ContentType = "application/rdf+xml"

	// RDFNamespace is the RDF syntax namespace, always bound to the rdf prefix.
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

const (
	rdfBag         = "rdf:Bag"
	rdfDescription = "rdf:Description"
	rdfLi          = "rdf:li"
	rdfRDF         = "rdf:RDF"
	rdfResource    = "rdf:resource"
	rdfSeq         = "rdf:Seq"
)

// Serializer renders Structures as XMP RDF/XML documents.
//
// A Serializer is immutable once built and safe for concurrent use, provided
// callers do not mutate a Structure while it is being serialized.
//
// Options are validated on the first call to Serialize. Call Validate to
// catch configuration errors at startup.
type Serializer struct {
	namespaces []Namespace
	bags       map[string]struct{}
	indent     string

	// Validation state (runs once on first operation)
	validateOnce sync.Once
	validateErr  error
}

// New creates a Serializer configured by opts.
func New(opts ...Option) *Serializer {
	s := &Serializer{
		bags: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	emitSerializerCreated(context.Background(), len(s.namespaces), len(s.bags))
	return s
}

// Serialize renders st with a one-shot Serializer configured by opts.
func Serialize(ctx context.Context, st *Structure, opts ...Option) ([]byte, error) {
	return New(opts...).Serialize(ctx, st)
}

// ContentType returns the MIME type of serialized documents.
func (s *Serializer) ContentType() string {
	return ContentType
}

// Validate checks the namespace configuration. Errors match both
// ErrMalformedOutput and ErrInvalidOption.
func (s *Serializer) Validate() error {
	return s.ensureValidated()
}

// ensureValidated runs validation once and caches the result.
func (s *Serializer) ensureValidated() error {
	s.validateOnce.Do(func() {
		s.validateErr = s.validateNamespaces()
	})
	return s.validateErr
}

func (s *Serializer) validateNamespaces() error {
	bound := map[string]string{"rdf": RDFNamespace}
	for _, ns := range s.namespaces {
		name := "xmlns:" + ns.Prefix
		switch {
		case !xmltree.IsNCName(ns.Prefix):
			return newOptionError(name, "prefix is not an XML name")
		case ns.Prefix == "xmlns":
			return newOptionError(name, "prefix is reserved")
		case ns.Prefix == "xml" && ns.URI != xmltree.XMLNamespace:
			return newOptionError(name, "prefix is reserved for "+xmltree.XMLNamespace)
		case ns.URI == "":
			return newOptionError(name, "namespace URI is empty")
		}
		if uri, ok := bound[ns.Prefix]; ok && uri != ns.URI {
			return newOptionError(name, "prefix is already bound to "+uri)
		}
		bound[ns.Prefix] = ns.URI
	}
	return nil
}

// Serialize renders st as a complete document. A nil st renders an empty
// rdf:Description. On error no output is returned.
//
// Rendering recurses once per nesting level of st.
func (s *Serializer) Serialize(ctx context.Context, st *Structure) ([]byte, error) {
	if err := s.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitSerializeStart(ctx)

	var retErr error
	var retData []byte
	var properties int
	defer func() {
		emitSerializeComplete(ctx, len(retData), time.Since(start), properties, retErr)
	}()

	root := s.root()
	w := walker{bags: s.bags}
	if err := w.structure(root, st, ""); err != nil {
		retErr = err
		return nil, retErr
	}
	properties = w.properties

	data, err := xmltree.Render(root, xmltree.Options{Indent: s.indent})
	if err != nil {
		retErr = malformed(err)
		return nil, retErr
	}
	retData = data
	return retData, nil
}

// Marshal converts v with Of and serializes the resulting Structure.
// It fails with an *UnsupportedValueError when v is not structure-shaped.
func (s *Serializer) Marshal(v any) ([]byte, error) {
	val := Of(v)
	switch val.kind {
	case KindNull:
		return s.Serialize(context.Background(), nil)
	case KindStructure:
		return s.Serialize(context.Background(), val.st)
	}
	return nil, &UnsupportedValueError{Value: v, Cause: val.err}
}

// root builds the rdf:RDF element with its namespace declarations.
func (s *Serializer) root() *etree.Element {
	root := etree.NewElement(rdfRDF)
	root.CreateAttr("xmlns:rdf", RDFNamespace)
	for _, ns := range s.namespaces {
		if ns.Prefix == "rdf" {
			continue
		}
		root.CreateAttr("xmlns:"+ns.Prefix, ns.URI)
	}
	return root
}

// walker carries per-call state through the recursive descent.
type walker struct {
	bags       map[string]struct{}
	properties int
}

// structure renders st as an rdf:Description under parent.
// See XMP Specification Part 1, 7.6.
func (w *walker) structure(parent *etree.Element, st *Structure, path string) error {
	desc := parent.CreateElement(rdfDescription)
	for key, v := range st.All() {
		if v.IsNull() {
			continue
		}
		if err := xmltree.CheckName(key); err != nil {
			return malformed(err)
		}
		el := desc.CreateElement(key)
		w.properties++

		p := key
		if path != "" {
			p = path + "/" + key
		}

		var err error
		switch v.kind {
		case KindSequence:
			_, isBag := w.bags[key]
			err = w.sequence(el, v.seq, isBag, p)
		case KindStructure:
			err = w.structure(el, v.st, p)
		default:
			err = simple(el, v, p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// sequence renders seq as rdf:Seq, or rdf:Bag when isBag is set.
// See XMP Specification Part 1, 7.7.
func (w *walker) sequence(parent *etree.Element, seq []Value, isBag bool, path string) error {
	name := rdfSeq
	if isBag {
		name = rdfBag
	}
	container := parent.CreateElement(name)

	for i, v := range seq {
		if v.IsNull() {
			continue
		}
		li := container.CreateElement(rdfLi)
		p := path + "[" + strconv.Itoa(i+1) + "]"

		var err error
		switch v.kind {
		case KindSequence:
			err = &NestedArrayError{Path: p}
		case KindStructure:
			err = w.structure(li, v.st, p)
		default:
			err = simple(li, v, p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// malformed converts a rendering failure into a MalformedOutputError.
func malformed(err error) error {
	var xe *xmltree.Error
	if errors.As(err, &xe) {
		return &MalformedOutputError{Name: xe.Name, Cause: err}
	}
	return &MalformedOutputError{Cause: err}
}
