package xmp

import (
	"context"
	"errors"
	"time"
)

// Decoder turns an encoded document into a Structure.
type Decoder interface {
	// ContentType returns the MIME type this decoder reads (e.g., "application/json").
	ContentType() string

	// Decode parses data, whose top level must be a mapping.
	// Implementations preserve the key order of the source document.
	Decode(data []byte) (*Structure, error)
}

// Decode runs d over data and emits SignalDecodeComplete.
// Errors not already reported as a *DecodeError are wrapped in one.
func Decode(ctx context.Context, d Decoder, data []byte) (*Structure, error) {
	start := time.Now()

	st, err := d.Decode(data)
	if err != nil {
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			err = NewDecodeError(d.ContentType(), err)
		}
		st = nil
	}

	emitDecodeComplete(ctx, d.ContentType(), len(data), time.Since(start), st.Len(), err)
	return st, err
}
