package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var base *zap.Logger

var serviceName = "earnsim"

// Init builds the process logger. Call once from main before anything logs.
func Init(service string) error {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	base = l
	serviceName = service
	return nil
}

func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

func Info(format string, args ...interface{}) {
	if base == nil {
		panic("logger is not initialized")
	}
	base.With(zap.String("service", serviceName)).Info(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	if base == nil {
		panic("logger is not initialized")
	}
	base.With(zap.String("service", serviceName)).Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	if base == nil {
		panic("logger is not initialized")
	}
	base.With(zap.String("service", serviceName)).Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	if base == nil {
		panic("logger is not initialized")
	}
	base.With(zap.String("service", serviceName)).Fatal(fmt.Sprintf(format, args...))
}
