package errors

// Code определяет категорию ошибки
type Code string

// Коды ошибок
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeConfigRead         Code = "CONFIG_READ"
	CodeUnsupportedVersion Code = "UNSUPPORTED_VERSION"
	CodeIO                 Code = "IO"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeInternal           Code = "INTERNAL"
)

// String возвращает строковое представление кода
func (c Code) String() string {
	return string(c)
}
