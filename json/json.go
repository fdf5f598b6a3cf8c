// Package json provides a JSON decoder for XMP structures.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/zoobzio/xmp"
)

// jsonDecoder implements xmp.Decoder for JSON.
type jsonDecoder struct{}

// New returns a JSON decoder. Object keys keep their document order and
// integers that fit in 64 bits stay integers.
func New() xmp.Decoder {
	return &jsonDecoder{}
}

// ContentType returns the MIME type for JSON.
func (d *jsonDecoder) ContentType() string {
	return "application/json"
}

// Decode parses a JSON object into a Structure.
func (d *jsonDecoder) Decode(data []byte) (*xmp.Structure, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, d.fail(err)
	}
	if tok != json.Delim('{') {
		return nil, d.fail(fmt.Errorf("top level must be an object, got %v", tok))
	}
	st, err := object(dec)
	if err != nil {
		return nil, d.fail(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, d.fail(errors.New("unexpected data after top-level object"))
	}
	return st, nil
}

func (d *jsonDecoder) fail(err error) error {
	return xmp.NewDecodeError(d.ContentType(), err)
}

// object reads members up to the closing brace; the opening brace is consumed.
func object(dec *json.Decoder) (*xmp.Structure, error) {
	st := xmp.NewStructure()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := value(dec)
		if err != nil {
			return nil, err
		}
		st.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return st, nil
}

func value(dec *json.Decoder) (xmp.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return xmp.Null(), err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			st, err := object(dec)
			if err != nil {
				return xmp.Null(), err
			}
			return xmp.Struct(st), nil
		case '[':
			var items []any
			for dec.More() {
				v, err := value(dec)
				if err != nil {
					return xmp.Null(), err
				}
				items = append(items, v)
			}
			if _, err := dec.Token(); err != nil {
				return xmp.Null(), err
			}
			return xmp.Seq(items...), nil
		}
		return xmp.Null(), fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		return number(t)
	default:
		// nil, bool, string
		return xmp.Of(t), nil
	}
}

func number(n json.Number) (xmp.Value, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return xmp.Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return xmp.Null(), fmt.Errorf("number %s: %w", n, err)
	}
	return xmp.Float(f), nil
}
