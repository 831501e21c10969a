package nbt

import (
	"context"
	"reflect"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalDecodeStart       = capitan.NewSignal("nbt.decode.start", "Decode operation beginning")
	SignalDecodeComplete    = capitan.NewSignal("nbt.decode.complete", "Decode operation finished")
	SignalEncodeStart       = capitan.NewSignal("nbt.encode.start", "Encode operation beginning")
	SignalEncodeComplete    = capitan.NewSignal("nbt.encode.complete", "Encode operation finished")
	SignalVariantRegistered = capitan.NewSignal("nbt.registry.registered", "Variant registered with a type registry")
	SignalConverterFallback = capitan.NewSignal("nbt.convert.fallback", "Converter resolved through the fallback closure")
)

// Keys for typed event data.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeyVariant     = capitan.NewStringKey("variant")
	KeyTagName     = capitan.NewStringKey("tag_name")
	KeyNativeType  = capitan.NewStringKey("native_type")
	KeyResolvedAs  = capitan.NewStringKey("resolved_as")
	KeyTypeID      = capitan.NewIntKey("type_id")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitDecodeStart emits an event when decode begins.
func emitDecodeStart(ctx context.Context, contentType string) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyContentType.Field(contentType),
	)
}

// emitDecodeComplete emits an event when decode finishes.
func emitDecodeComplete(ctx context.Context, contentType string, tag Tag, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyDuration.Field(duration),
	}
	if tag != nil {
		fields = append(fields,
			KeyVariant.Field(string(tag.Variant())),
			KeyTagName.Field(tag.Name()),
		)
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}

// emitEncodeStart emits an event when encode begins.
func emitEncodeStart(ctx context.Context, contentType string, tag Tag) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyContentType.Field(contentType),
		KeyVariant.Field(string(tag.Variant())),
		KeyTagName.Field(tag.Name()),
	)
}

// emitEncodeComplete emits an event when encode finishes.
func emitEncodeComplete(ctx context.Context, contentType string, tag Tag, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyVariant.Field(string(tag.Variant())),
		KeyTagName.Field(tag.Name()),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitRegistered emits an event when a variant is registered.
func emitRegistered(ctx context.Context, id uint8, variant Variant) {
	capitan.Emit(ctx, SignalVariantRegistered,
		KeyTypeID.Field(int(id)),
		KeyVariant.Field(string(variant)),
	)
}

// emitConverterFallback emits an event when a native type resolves through
// an ancestor in its fallback closure.
func emitConverterFallback(ctx context.Context, typ, resolved reflect.Type) {
	capitan.Emit(ctx, SignalConverterFallback,
		KeyNativeType.Field(typ.String()),
		KeyResolvedAs.Field(resolved.String()),
	)
}
