// Package bson provides a BSON decoder for XMP structures.
package bson

import (
	"fmt"
	"time"

	"github.com/zoobzio/xmp"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bsonDecoder implements xmp.Decoder for BSON.
type bsonDecoder struct{}

// New returns a BSON decoder. Document fields keep their encoded order;
// datetime and timestamp values become dates, ObjectIDs become hex text.
func New() xmp.Decoder {
	return &bsonDecoder{}
}

// ContentType returns the MIME type for BSON.
func (d *bsonDecoder) ContentType() string {
	return "application/bson"
}

// Decode parses a BSON document into a Structure.
func (d *bsonDecoder) Decode(data []byte) (*xmp.Structure, error) {
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, xmp.NewDecodeError(d.ContentType(), err)
	}
	st, err := document(doc)
	if err != nil {
		return nil, xmp.NewDecodeError(d.ContentType(), err)
	}
	return st, nil
}

func document(doc bson.D) (*xmp.Structure, error) {
	st := xmp.NewStructure()
	for _, e := range doc {
		v, err := value(e.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", e.Key, err)
		}
		st.Set(e.Key, v)
	}
	return st, nil
}

func value(raw any) (xmp.Value, error) {
	switch x := raw.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return xmp.Null(), nil
	case bson.D:
		st, err := document(x)
		if err != nil {
			return xmp.Null(), err
		}
		return xmp.Struct(st), nil
	case bson.A:
		items := make([]any, 0, len(x))
		for _, item := range x {
			v, err := value(item)
			if err != nil {
				return xmp.Null(), err
			}
			items = append(items, v)
		}
		return xmp.Seq(items...), nil
	case primitive.DateTime:
		return xmp.Time(x.Time()), nil
	case primitive.Timestamp:
		return xmp.Time(time.Unix(int64(x.T), 0)), nil
	case primitive.ObjectID:
		return xmp.String(x.Hex()), nil
	case primitive.Decimal128:
		return xmp.String(x.String()), nil
	case primitive.Symbol:
		return xmp.String(string(x)), nil
	case bool, int32, int64, float64, string:
		return xmp.Of(x), nil
	}
	return xmp.Unsupported(raw), nil
}
