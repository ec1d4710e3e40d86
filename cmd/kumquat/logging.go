package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/kumquat/engine"
	"github.com/wippyai/kumquat/integrate"
	"github.com/wippyai/kumquat/luaquad"
	"github.com/wippyai/kumquat/quadrature"
)

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}

func installLogger(log *zap.Logger) {
	quadrature.SetLogger(log.Named("quadrature"))
	integrate.SetLogger(log.Named("integrate"))
	luaquad.SetLogger(log.Named("lua"))
	engine.SetLogger(log.Named("engine"))
}
