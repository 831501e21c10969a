package nbtfile

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for file events.
var (
	SignalReadComplete  = capitan.NewSignal("nbtfile.read.complete", "NBT file read finished")
	SignalWriteComplete = capitan.NewSignal("nbtfile.write.complete", "NBT file write finished")
)

// Keys for typed event data.
var (
	KeyPath        = capitan.NewStringKey("path")
	KeyCompression = capitan.NewStringKey("compression")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitReadComplete emits an event when a file read finishes.
func emitReadComplete(ctx context.Context, path string, c Compression, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyPath.Field(path),
		KeyCompression.Field(c.String()),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalReadComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalReadComplete, fields...)
	}
}

// emitWriteComplete emits an event when a file write finishes.
func emitWriteComplete(ctx context.Context, path string, c Compression, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyPath.Field(path),
		KeyCompression.Field(c.String()),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalWriteComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalWriteComplete, fields...)
	}
}
