// Package errors содержит структурированные ошибки с кодами.
//
// Создание:
//
//	err := errors.InvalidArgumentf("layer %d out of range", layer)
//
// Обёртка с сохранением кода причины:
//
//	if err := store.Save(name, doc); err != nil {
//	    return errors.Wrapf(err, "save config %s", name)
//	}
//
// Проверка:
//
//	if errors.IsIO(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error представляет ошибку с кодом, сообщением и метаданными
type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает исходную ошибку
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta добавляет метаданные к ошибке
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{})
	}
	e.Meta[key] = value
	return e
}

// New создаёт ошибку с кодом и сообщением
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf создаёт ошибку с форматированным сообщением
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap оборачивает ошибку, сохраняя код, если причина уже *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Code:    existingErr.Code,
			Message: message,
			Cause:   err,
			Meta:    existingErr.Meta,
		}
	}

	return &Error{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf оборачивает ошибку с форматированным сообщением
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode оборачивает ошибку с явным кодом
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	meta := make(map[string]interface{})
	if errors.As(err, &existingErr) && existingErr.Meta != nil {
		for k, v := range existingErr.Meta {
			meta[k] = v
		}
	}

	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
		Meta:    meta,
	}
}

// WrapWithCodef оборачивает ошибку с явным кодом и форматированным сообщением
func WrapWithCodef(err error, code Code, format string, args ...interface{}) *Error {
	return WrapWithCode(err, code, fmt.Sprintf(format, args...))
}

// InvalidArgumentf создаёт ошибку неверного аргумента
func InvalidArgumentf(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// ConfigReadf создаёт ошибку чтения конфигурации
func ConfigReadf(format string, args ...interface{}) *Error {
	return Newf(CodeConfigRead, format, args...)
}

// UnsupportedVersionf создаёт ошибку неподдерживаемой версии
func UnsupportedVersionf(format string, args ...interface{}) *Error {
	return Newf(CodeUnsupportedVersion, format, args...)
}

// IOf создаёт ошибку ввода-вывода
func IOf(format string, args ...interface{}) *Error {
	return Newf(CodeIO, format, args...)
}

// AlreadyExistsf создаёт ошибку дубликата
func AlreadyExistsf(format string, args ...interface{}) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// NotFoundf создаёт ошибку отсутствия
func NotFoundf(format string, args ...interface{}) *Error {
	return Newf(CodeNotFound, format, args...)
}
