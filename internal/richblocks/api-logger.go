// API error handling utilities for the richblocks service.
// Provides functions for returning errors with appropriate HTTP status codes and logging.
//
// Key features:
//   - Standardized error response formatting.
//   - Logging of API errors with context (method, URL, session).
//   - Support for defined error types with status codes.
package richblocks

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/labstack/echo/v4"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/apierrors"
	stack_error "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/stack-error"
)

// Возврат ошибки с универсальным сообщением. Определенные ошибки возвращаются как есть.
func EError(c echo.Context, err error) error {
	var defined apierrors.DefinedError
	if errors.As(err, &defined) {
		return EErrorDefined(c, defined)
	}
	if err == nil {
		slog.Error("Unknown API error",
			"method", c.Request().Method,
			"url", c.Request().URL,
			"session", c.Param("id"),
			getCallerFile(),
		)
	} else {
		var te *stack_error.TrackerError
		if errors.As(err, &te) {
			stack_error.LogError(c, err)
		} else {
			slog.Error("API error",
				"err", err,
				"method", c.Request().Method,
				"url", c.Request().URL,
				"session", c.Param("id"),
				getCallerFile(),
			)
		}
	}
	return EErrorDefined(c, apierrors.ErrGeneric)
}

// Возврат ошибки <status> с сообщением ошибки (404 не логируется)
func EErrorMsgStatus(c echo.Context, err error, status int) error {
	if status == http.StatusRequestEntityTooLarge {
		return EErrorDefined(c, apierrors.ErrRequestTooLarge)
	}

	er := apierrors.ErrGeneric
	er.StatusCode = status
	if err == nil {
		if status != http.StatusNotFound {
			slog.Error("Unknown API error",
				"method", c.Request().Method,
				slog.Int("status", status),
				"url", c.Request().URL,
				getCallerFile(),
			)
		}
		return EErrorDefined(c, er)
	}

	if status != http.StatusNotFound {
		slog.Error("API error",
			"err", err,
			"method", c.Request().Method,
			slog.Int("status", status),
			"url", c.Request().URL,
			getCallerFile(),
		)
	}
	er.Err = err.Error()
	return EErrorDefined(c, er)
}

// EBadRequest отвечает 400 с текстом ошибки разбора или валидации запроса.
func EBadRequest(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusRequestEntityTooLarge {
			return EErrorDefined(c, apierrors.ErrRequestTooLarge)
		}
		return EErrorDefined(c, apierrors.ErrBadRequest.WithFormattedMessage(fmt.Sprint(he.Message)))
	}
	return EErrorDefined(c, apierrors.ErrBadRequest.WithFormattedMessage(err.Error()))
}

// EErrorDefined возвращает JSON-ответ с кодом статуса и сообщением об ошибке. Если код статуса не определен, используется 400 Bad Request.
func EErrorDefined(c echo.Context, err apierrors.DefinedError) error {
	// If unknown code use 400 Bad Request
	if http.StatusText(err.StatusCode) == "" {
		err.StatusCode = http.StatusBadRequest
	}
	return c.JSON(err.StatusCode, err)
}

// getCallerFile возвращает имя файла и номер строки, из которых была вызвана функция.
func getCallerFile() slog.Attr {
	_, path, no, ok := runtime.Caller(2)
	if !ok {
		return slog.Attr{}
	}
	_, file := filepath.Split(path)
	return slog.String("caller", fmt.Sprintf("%s:%d", file, no))
}
