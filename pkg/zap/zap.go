// Package zap logs marquee signals with a go.uber.org/zap logger.
package zap

import (
	"context"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/marquee"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// route maps a signal to a log message and level.
type route struct {
	signal  capitan.Signal
	message string
	level   zapcore.Level
}

var routes = []route{
	{marquee.CarouselActivated, "carousel activated", zapcore.DebugLevel},
	{marquee.CarouselDeactivated, "carousel deactivated", zapcore.DebugLevel},
	{marquee.CarouselModeChanged, "carousel mode changed", zapcore.InfoLevel},
	{marquee.CarouselAdvanced, "carousel advanced", zapcore.DebugLevel},
	{marquee.CarouselNavigated, "carousel navigated", zapcore.DebugLevel},
	{marquee.CarouselNavigationRejected, "carousel navigation rejected", zapcore.WarnLevel},
	{marquee.CarouselTickDiscarded, "carousel tick discarded", zapcore.DebugLevel},
	{marquee.LoaderActivated, "loader activated", zapcore.DebugLevel},
	{marquee.LoaderDeactivated, "loader deactivated", zapcore.DebugLevel},
	{marquee.LoaderStatusChanged, "loader status changed", zapcore.InfoLevel},
	{marquee.LoaderFetchSucceeded, "fetch succeeded", zapcore.InfoLevel},
	{marquee.LoaderFetchFailed, "fetch failed", zapcore.WarnLevel},
	{marquee.LoaderResultDiscarded, "fetch result discarded", zapcore.DebugLevel},
	{marquee.LoaderChangeReceived, "change received", zapcore.DebugLevel},
}

// extractor reads one field from an event, if present.
type extractor func(*capitan.Event) (zap.Field, bool)

func field[V any](name string, from func(*capitan.Event) (V, bool), mk func(string, V) zap.Field) extractor {
	return func(e *capitan.Event) (zap.Field, bool) {
		v, ok := from(e)
		if !ok {
			return zap.Skip(), false
		}
		return mk(name, v), true
	}
}

var extractors = []extractor{
	field("index", marquee.KeyIndex.From, zap.Int),
	field("target", marquee.KeyTarget.From, zap.Int),
	field("slide_count", marquee.KeySlideCount.From, zap.Int),
	field("interval", marquee.KeyInterval.From, zap.Duration),
	field("old_mode", marquee.KeyOldMode.From, zap.String),
	field("new_mode", marquee.KeyNewMode.From, zap.String),
	field("generation", marquee.KeyGeneration.From, zap.Int),
	field("current_generation", marquee.KeyCurrentGeneration.From, zap.Int),
	field("status", marquee.KeyStatus.From, zap.String),
	field("old_status", marquee.KeyOldStatus.From, zap.String),
	field("new_status", marquee.KeyNewStatus.From, zap.String),
	field("error", marquee.KeyError.From, zap.String),
	field("error_kind", marquee.KeyErrorKind.From, zap.String),
	field("item_count", marquee.KeyItemCount.From, zap.Int),
	field("reason", marquee.KeyReason.From, zap.String),
	field("duration", marquee.KeyDuration.From, zap.Duration),
}

// Attach hooks every marquee signal and writes it to logger. The returned
// function removes the hooks.
//
// Example:
//
//	logger, _ := zap.NewProduction()
//	detach := marqueezap.Attach(logger.Named("marquee"))
//	defer detach()
func Attach(logger *zap.Logger) (detach func()) {
	closers := make([]func(), 0, len(routes))
	for _, r := range routes {
		l := capitan.Hook(r.signal, handler(logger, r))
		closers = append(closers, func() { l.Close() })
	}
	return func() {
		for _, c := range closers {
			c()
		}
	}
}

func handler(logger *zap.Logger, r route) func(context.Context, *capitan.Event) {
	return func(_ context.Context, e *capitan.Event) {
		ce := logger.Check(r.level, r.message)
		if ce == nil {
			return
		}
		fields := make([]zap.Field, 0, 4)
		for _, x := range extractors {
			if f, ok := x(e); ok {
				fields = append(fields, f)
			}
		}
		ce.Write(fields...)
	}
}
