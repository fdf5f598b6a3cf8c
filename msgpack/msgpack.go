// Package msgpack provides a MessagePack decoder for XMP structures.
package msgpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"github.com/zoobzio/xmp"
)

// msgpackDecoder implements xmp.Decoder for MessagePack.
type msgpackDecoder struct{}

// New returns a MessagePack decoder. Map entries keep their encoded order
// and the timestamp extension becomes a date.
func New() xmp.Decoder {
	return &msgpackDecoder{}
}

// ContentType returns the MIME type for MessagePack.
func (d *msgpackDecoder) ContentType() string {
	return "application/msgpack"
}

// Decode parses a MessagePack map into a Structure.
func (d *msgpackDecoder) Decode(data []byte) (*xmp.Structure, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))

	c, err := dec.PeekCode()
	if err != nil {
		return nil, d.fail(err)
	}
	if !isMap(c) {
		return nil, d.fail(fmt.Errorf("top level must be a map, got code 0x%02x", c))
	}
	st, err := mapping(dec)
	if err != nil {
		return nil, d.fail(err)
	}
	if _, err := dec.PeekCode(); !errors.Is(err, io.EOF) {
		return nil, d.fail(errors.New("unexpected data after top-level map"))
	}
	return st, nil
}

func (d *msgpackDecoder) fail(err error) error {
	return xmp.NewDecodeError(d.ContentType(), err)
}

func isMap(c byte) bool {
	return msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32
}

func isArray(c byte) bool {
	return msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32
}

func mapping(dec *msgpack.Decoder) (*xmp.Structure, error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	st := xmp.NewStructure()
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		v, err := value(dec)
		if err != nil {
			return nil, err
		}
		st.Set(key, v)
	}
	return st, nil
}

func value(dec *msgpack.Decoder) (xmp.Value, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return xmp.Null(), err
	}

	switch {
	case isMap(c):
		st, err := mapping(dec)
		if err != nil {
			return xmp.Null(), err
		}
		return xmp.Struct(st), nil
	case isArray(c):
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return xmp.Null(), err
		}
		items := make([]any, 0, n)
		for i := 0; i < n; i++ {
			v, err := value(dec)
			if err != nil {
				return xmp.Null(), err
			}
			items = append(items, v)
		}
		return xmp.Seq(items...), nil
	}

	raw, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return xmp.Null(), err
	}
	switch x := raw.(type) {
	case []byte:
		return xmp.String(string(x)), nil
	case time.Time:
		return xmp.Time(x), nil
	}
	return xmp.Of(raw), nil
}
