// Ошибки с трассой мест возникновения для логирования в обработчиках API.
package stack_error

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/labstack/echo/v4"
)

type TrackerError struct {
	Context  map[string]any
	ErrStack []slog.Attr
	cause    error
}

// TrackErrorStack добавляет место вызова к трассе ошибки. Повторный вызов для той же ошибки дописывает трассу.
func TrackErrorStack(err error) *TrackerError {
	var te *TrackerError
	if errors.As(err, &te) {
		te.ErrStack = append(te.ErrStack, getCallerFile(err))
		return te
	}

	newTe := &TrackerError{
		Context:  make(map[string]any),
		ErrStack: make([]slog.Attr, 0),
		cause:    err,
	}
	newTe.ErrStack = append(newTe.ErrStack, getCallerFile(err))
	return newTe
}

// AddContext сохраняет первое значение ключа.
func (te *TrackerError) AddContext(k string, v any) *TrackerError {
	if _, ok := te.Context[k]; !ok {
		te.Context[k] = v
	}
	return te
}

func (te *TrackerError) Error() string {
	if te.cause != nil {
		return te.cause.Error()
	}
	return "TrackerError"
}

func (te *TrackerError) Unwrap() error {
	return te.cause
}

// LogError пишет ошибку с трассой и контекстом запроса.
func LogError(c echo.Context, err error) {
	var trackerError *TrackerError
	var attrs []any

	if errors.As(err, &trackerError) {
		for k, v := range trackerError.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		for _, a := range trackerError.ErrStack {
			attrs = append(attrs, a)
		}
	}
	attrs = append(attrs, slog.String("raw_error", err.Error()))

	if c != nil {
		attrs = append(attrs,
			slog.String("method", c.Request().Method),
			slog.String("url", c.Request().URL.String()))
	}

	slog.With(attrs...).Error("stack error")
}

func getCallerFile(err error) slog.Attr {
	_, path, no, ok := runtime.Caller(2)
	if !ok {
		return slog.String("trace", "unknown")
	}
	_, file := filepath.Split(path)
	return slog.String("trace", fmt.Sprintf("%s:%d %s", file, no, err.Error()))
}
