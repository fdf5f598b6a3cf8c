// Package yaml provides a YAML decoder for XMP structures.
package yaml

import (
	"errors"
	"fmt"
	"time"

	"github.com/zoobzio/xmp"
	"gopkg.in/yaml.v3"
)

const (
	// maxAliasDepth bounds alias nesting so self-referencing documents fail
	// instead of recursing forever.
	maxAliasDepth = 64

	// A document may expand through aliases to at most minExpansion plus
	// expansionFactor nodes per node it actually contains.
	minExpansion    = 10000
	expansionFactor = 100
)

// yamlDecoder implements xmp.Decoder for YAML.
type yamlDecoder struct{}

// New returns a YAML decoder. Mapping keys keep their document order,
// aliases are expanded and !!timestamp scalars become dates.
func New() xmp.Decoder {
	return &yamlDecoder{}
}

// ContentType returns the MIME type for YAML.
func (d *yamlDecoder) ContentType() string {
	return "application/yaml"
}

// Decode parses a YAML mapping into a Structure.
func (d *yamlDecoder) Decode(data []byte) (*xmp.Structure, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, d.fail(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, d.fail(errors.New("empty document"))
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, d.fail(fmt.Errorf("line %d: top level must be a mapping", root.Line))
	}
	st, err := newConverter(&doc).mapping(root)
	if err != nil {
		return nil, d.fail(err)
	}
	return st, nil
}

func (d *yamlDecoder) fail(err error) error {
	return xmp.NewDecodeError(d.ContentType(), err)
}

// Node converts a single YAML node. It is exported for callers that hold
// a parsed document, such as configuration loaders.
func Node(n *yaml.Node) (xmp.Value, error) {
	return newConverter(n).node(n)
}

// converter walks one document, tracking alias nesting and the number of
// nodes produced so far.
type converter struct {
	aliases  int
	expanded int
	budget   int
}

func newConverter(root *yaml.Node) *converter {
	return &converter{budget: minExpansion + expansionFactor*countNodes(root)}
}

// countNodes counts the nodes of the parsed tree without following aliases.
func countNodes(n *yaml.Node) int {
	count := 1
	for _, c := range n.Content {
		count += countNodes(c)
	}
	return count
}

func (c *converter) node(n *yaml.Node) (xmp.Value, error) {
	c.expanded++
	if c.expanded > c.budget {
		return xmp.Null(), fmt.Errorf("line %d: aliases expand the document past %d nodes", n.Line, c.budget)
	}

	switch n.Kind {
	case yaml.AliasNode:
		if c.aliases >= maxAliasDepth {
			return xmp.Null(), fmt.Errorf("line %d: alias nesting exceeds %d", n.Line, maxAliasDepth)
		}
		c.aliases++
		defer func() { c.aliases-- }()
		return c.node(n.Alias)
	case yaml.MappingNode:
		st, err := c.mapping(n)
		if err != nil {
			return xmp.Null(), err
		}
		return xmp.Struct(st), nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := c.node(child)
			if err != nil {
				return xmp.Null(), err
			}
			items = append(items, v)
		}
		return xmp.Seq(items...), nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return xmp.Null(), fmt.Errorf("line %d: unexpected node kind %v", n.Line, n.Kind)
}

func (c *converter) mapping(n *yaml.Node) (*xmp.Structure, error) {
	st := xmp.NewStructure()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		if k.ShortTag() == "!!merge" {
			return nil, fmt.Errorf("line %d: merge keys are not supported", k.Line)
		}
		val, err := c.node(v)
		if err != nil {
			return nil, err
		}
		st.Set(k.Value, val)
	}
	return st, nil
}

func scalar(n *yaml.Node) (xmp.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return xmp.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return xmp.Null(), err
		}
		return xmp.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return xmp.Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return xmp.Null(), err
		}
		return xmp.Uint(u), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return xmp.Null(), err
		}
		return xmp.Float(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return xmp.Null(), err
		}
		return xmp.Time(t), nil
	}
	return xmp.String(n.Value), nil
}
