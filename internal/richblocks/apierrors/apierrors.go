// Пакет содержит определения ошибок HTTP API редактора. Каждая ошибка имеет код, статус HTTP и описание, что позволяет клиенту различать ошибки без разбора текста.
//
// Основные возможности:
//   - Ошибки разбора запросов, документов и настроек поля.
//   - Ошибки сессий редактирования и хранилища полей.
//   - Подстановка аргументов в сообщение и передача деталей (например, списка невалидных пресетов).
package apierrors

import (
	"fmt"
	"net/http"
	"strings"
)

type DefinedError struct {
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
	Err        string `json:"error"`
	RuErr      string `json:"ru_error,omitempty"`
	Details    any    `json:"details,omitempty"`
}

func (e DefinedError) Error() string {
	return e.Err
}

var (
	// 1*** - request errors
	ErrGeneric           = DefinedError{Code: 1000, StatusCode: http.StatusInternalServerError, Err: "internal server error", RuErr: "Внутренняя ошибка сервера"}
	ErrBadRequest        = DefinedError{Code: 1001, StatusCode: http.StatusBadRequest, Err: "bad request: %s", RuErr: "Некорректный запрос: %s"}
	ErrUnsupportedFormat = DefinedError{Code: 1002, StatusCode: http.StatusBadRequest, Err: "unsupported format %s", RuErr: "Формат %s не поддерживается"}
	ErrRequestTooLarge   = DefinedError{Code: 1003, StatusCode: http.StatusRequestEntityTooLarge, Err: "request body too large", RuErr: "Слишком большой запрос"}

	// 2*** - document errors
	ErrInvalidDocument  = DefinedError{Code: 2001, StatusCode: http.StatusBadRequest, Err: "document must be a JSON array of blocks", RuErr: "Документ должен быть JSON массивом блоков"}
	ErrUnknownBlock     = DefinedError{Code: 2002, StatusCode: http.StatusBadRequest, Err: "unknown block %s", RuErr: "Неизвестный тип блока %s"}
	ErrInvalidSelection = DefinedError{Code: 2003, StatusCode: http.StatusBadRequest, Err: "selection does not point into the document", RuErr: "Выделение указывает за пределы документа"}
	ErrUnknownMark      = DefinedError{Code: 2004, StatusCode: http.StatusBadRequest, Err: "unknown mark %s", RuErr: "Неизвестное форматирование %s"}
	ErrUnknownSetting   = DefinedError{Code: 2005, StatusCode: http.StatusBadRequest, Err: "unknown setting %s", RuErr: "Неизвестная настройка %s"}
	ErrNothingToChange  = DefinedError{Code: 2006, StatusCode: http.StatusConflict, Err: "nothing to change at the selection", RuErr: "В выделении нет подходящего блока"}
	ErrMoveNotAllowed   = DefinedError{Code: 2007, StatusCode: http.StatusConflict, Err: "block cannot be moved", RuErr: "Блок нельзя переместить"}
	ErrRenderFailed     = DefinedError{Code: 2008, StatusCode: http.StatusInternalServerError, Err: "render failed", RuErr: "Не удалось отрисовать документ"}
	ErrImportFailed     = DefinedError{Code: 2009, StatusCode: http.StatusBadRequest, Err: "import failed", RuErr: "Не удалось импортировать документ"}

	// 3*** - field options errors
	ErrInvalidPresets = DefinedError{Code: 3001, StatusCode: http.StatusBadRequest, Err: "invalid presets", RuErr: "Некорректные пресеты"}

	// 4*** - session errors
	ErrSessionNotFound = DefinedError{Code: 4001, StatusCode: http.StatusNotFound, Err: "session not found", RuErr: "Сессия редактирования не найдена"}
	ErrSessionLimit    = DefinedError{Code: 4002, StatusCode: http.StatusTooManyRequests, Err: "too many open sessions", RuErr: "Слишком много открытых сессий"}
	ErrSessionNoField  = DefinedError{Code: 4003, StatusCode: http.StatusConflict, Err: "session is not bound to a field", RuErr: "Сессия не привязана к полю"}

	// 5*** - storage errors
	ErrFieldNotFound = DefinedError{Code: 5001, StatusCode: http.StatusNotFound, Err: "field not found", RuErr: "Поле не найдено"}
	ErrInvalidID     = DefinedError{Code: 5002, StatusCode: http.StatusBadRequest, Err: "invalid id", RuErr: "Некорректный идентификатор"}
)

func (e DefinedError) WithFormattedMessage(args ...interface{}) DefinedError {
	if len(args) > 0 {
		e.Err = fmt.Sprintf(e.Err, args...)
		e.RuErr = fmt.Sprintf(e.RuErr, args...)
	} else {
		e.Err = strings.Replace(e.Err, "%s", "", -1)
		e.RuErr = strings.Replace(e.RuErr, "%s", "", -1)
	}
	return e
}

// WithDetails прикладывает к ответу дополнительные данные.
func (e DefinedError) WithDetails(details any) DefinedError {
	e.Details = details
	return e
}
