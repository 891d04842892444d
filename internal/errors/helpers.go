package errors

import (
	"errors"
)

// As обёртка над errors.As для *Error
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is обёртка над errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode извлекает код ошибки
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta извлекает метаданные ошибки
func GetMeta(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}

	return nil
}

// IsInvalidArgument проверяет код INVALID_ARGUMENT
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsConfigRead проверяет код CONFIG_READ
func IsConfigRead(err error) bool {
	return GetCode(err) == CodeConfigRead
}

// IsUnsupportedVersion проверяет код UNSUPPORTED_VERSION
func IsUnsupportedVersion(err error) bool {
	return GetCode(err) == CodeUnsupportedVersion
}

// IsIO проверяет код IO
func IsIO(err error) bool {
	return GetCode(err) == CodeIO
}

// IsNotFound проверяет код NOT_FOUND
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsAlreadyExists проверяет код ALREADY_EXISTS
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}
