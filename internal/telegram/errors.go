package telegram

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidResponseFormat возвращается, когда тело ответа не является конвертом Bot API.
	ErrInvalidResponseFormat = errors.New("telegram: invalid response format")
	// ErrMalformedEntity возвращается, когда в result не хватает обязательных полей.
	ErrMalformedEntity = errors.New("telegram: malformed entity")
	// ErrIOFailure возвращается, когда InputFile не удалось прочитать. Запрос при этом не отправляется.
	ErrIOFailure = errors.New("telegram: input file read failed")

	errMissingField = errors.New("missing required field")
)

// ResponseParameters содержит подсказки сервера для повторной попытки.
type ResponseParameters struct {
	MigrateToChatID *int64
	RetryAfter      *int
}

// Error описывает отказ Bot API (ok=false).
type Error struct {
	Code        int
	Description string
	// DescriptionMissing выставляется, если в конверте не было поля description вовсе.
	DescriptionMissing bool
	Parameters         *ResponseParameters
}

func (e *Error) Error() string {
	if e.DescriptionMissing {
		return fmt.Sprintf("telegram: api error %d (no description)", e.Code)
	}
	return fmt.Sprintf("telegram: api error %d: %s", e.Code, e.Description)
}

// NetworkError оборачивает ошибку транспорта. URL запроса (в нём токен) в сообщение не попадает.
type NetworkError struct {
	Method string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("telegram: %s: network error: %v", e.Method, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IOError сообщает, какой InputFile не удалось прочитать, и сохраняет исходную ошибку ОС.
type IOError struct {
	Name string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("telegram: read input file %q: %v", e.Name, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is позволяет проверять ошибку через errors.Is(err, ErrIOFailure).
func (e *IOError) Is(target error) bool { return target == ErrIOFailure }

// EntityError указывает, какое поле какой сущности не удалось декодировать.
type EntityError struct {
	Entity string
	Field  string
	Err    error
}

func (e *EntityError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("telegram: malformed %s: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("telegram: malformed %s: field %q: %v", e.Entity, e.Field, e.Err)
}

func (e *EntityError) Unwrap() error { return e.Err }

// Is позволяет проверять ошибку через errors.Is(err, ErrMalformedEntity).
func (e *EntityError) Is(target error) bool { return target == ErrMalformedEntity }

// fieldErr не перезаворачивает ошибки вложенных сущностей, чтобы указывать на исходное поле.
func fieldErr(entity, field string, err error) error {
	if err == nil {
		return nil
	}
	var ee *EntityError
	if errors.As(err, &ee) {
		return err
	}
	return &EntityError{Entity: entity, Field: field, Err: err}
}

func missing(entity, field string) error {
	return &EntityError{Entity: entity, Field: field, Err: errMissingField}
}
