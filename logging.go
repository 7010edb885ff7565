package main

import (
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON zap.Logger at the given level, following the
// same encoder configuration the rest of this line of tooling uses for
// its operational logs.
func NewLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.Config{
		Level:    atomicLevel,
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "severity",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return cfg.Build()
}

// logGCCycle emits a single structured summary of a completed collection.
// This is operational diagnostics only — it is never part of the
// language-visible contract, which is why it goes through zap rather than
// the stdout/stderr the interpreted program itself writes to.
func (vm *VM) logGCCycle(before int64, freed int) {
	if vm.logger == nil {
		return
	}

	vm.logger.Debug("gc cycle",
		zap.String("vm", vm.id.String()),
		zap.String("before", humanize.Bytes(uint64(before))),
		zap.String("after", humanize.Bytes(uint64(vm.bytesAllocated))),
		zap.String("next_threshold", humanize.Bytes(uint64(vm.nextGC))),
		zap.Int("objects_freed", freed),
	)
}
