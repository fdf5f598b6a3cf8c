package xmp

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for serializer events.
var (
	SignalSerializerCreated = capitan.NewSignal("xmp.serializer.created", "Serializer instantiated")
	SignalSerializeStart    = capitan.NewSignal("xmp.serialize.start", "Serialize operation beginning")
	SignalSerializeComplete = capitan.NewSignal("xmp.serialize.complete", "Serialize operation finished")
	SignalDecodeComplete    = capitan.NewSignal("xmp.decode.complete", "Decode operation finished")
)

// Keys for typed event data.
var (
	KeyContentType    = capitan.NewStringKey("content_type")
	KeySize           = capitan.NewIntKey("size")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyError          = capitan.NewErrorKey("error")
	KeyPropertyCount  = capitan.NewIntKey("property_count")
	KeyNamespaceCount = capitan.NewIntKey("namespace_count")
	KeyBagCount       = capitan.NewIntKey("bag_count")
)

// emitSerializerCreated emits an event when a serializer is created.
func emitSerializerCreated(ctx context.Context, namespaces, bags int) {
	capitan.Emit(ctx, SignalSerializerCreated,
		KeyContentType.Field(ContentType),
		KeyNamespaceCount.Field(namespaces),
		KeyBagCount.Field(bags),
	)
}

// emitSerializeStart emits an event when serialization begins.
func emitSerializeStart(ctx context.Context) {
	capitan.Emit(ctx, SignalSerializeStart,
		KeyContentType.Field(ContentType),
	)
}

// emitSerializeComplete emits an event when serialization finishes.
func emitSerializeComplete(ctx context.Context, size int, duration time.Duration, properties int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(ContentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyPropertyCount.Field(properties),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSerializeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSerializeComplete, fields...)
	}
}

// emitDecodeComplete emits an event when a decoder finishes.
func emitDecodeComplete(ctx context.Context, contentType string, size int, duration time.Duration, properties int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyPropertyCount.Field(properties),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}
