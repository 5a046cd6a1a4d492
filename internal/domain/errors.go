package domain

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
)

// ErrorKind классифицирует бизнес-ошибки для транспортного слоя.
type ErrorKind string

const (
	KindMissingField         ErrorKind = "missing_field"
	KindDuplicateAssociation ErrorKind = "duplicate_association"
	KindDuplicateName        ErrorKind = "duplicate_name"
	KindNotFound             ErrorKind = "not_found"
	KindNoStockLeft          ErrorKind = "no_stock_left"
	KindInvalidArgument      ErrorKind = "invalid_argument"
	KindConflict             ErrorKind = "conflict"
	KindUnavailable          ErrorKind = "unavailable"
	KindCanceled             ErrorKind = "canceled"
	KindUnexpected           ErrorKind = "unexpected"
)

var (
	// ErrMissingField - не заполнены обязательные идентификаторы/поля.
	ErrMissingField = errors.New("mandatory field missing")
	// ErrDuplicateAssociation - позиция для пары (order, product) уже существует.
	ErrDuplicateAssociation = errors.New("order item already exists")
	// ErrDuplicateName - товар с таким именем уже существует.
	ErrDuplicateName = errors.New("product name already exists")
	// ErrNotFound - заказ, товар или позиция не найдены.
	ErrNotFound = errors.New("not found")
	// ErrNoStockLeft - на складе не осталось единиц товара.
	ErrNoStockLeft = errors.New("no stock left")
	// ErrInvalidArgument - значение поля вне допустимого диапазона.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict - операция нарушает связь с живыми позициями заказа.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable - хранилище недоступно; единственный вид ошибки, который имеет смысл повторять.
	ErrUnavailable = errors.New("store unavailable")
	// ErrCanceled - клиент отменил запрос; повторять нечего.
	ErrCanceled = errors.New("request canceled")
	// ErrUnexpected - всё остальное.
	ErrUnexpected = errors.New("unexpected error")
)

var kindSentinels = map[ErrorKind]error{
	KindMissingField:         ErrMissingField,
	KindDuplicateAssociation: ErrDuplicateAssociation,
	KindDuplicateName:        ErrDuplicateName,
	KindNotFound:             ErrNotFound,
	KindNoStockLeft:          ErrNoStockLeft,
	KindInvalidArgument:      ErrInvalidArgument,
	KindConflict:             ErrConflict,
	KindUnavailable:          ErrUnavailable,
	KindCanceled:             ErrCanceled,
	KindUnexpected:           ErrUnexpected,
}

// Error - типизированная ошибка с человекочитаемым сообщением.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError создаёт ошибку заданного вида с интерполированным сообщением.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError оборачивает причину, сохраняя вид ошибки.
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap позволяет errors.Is находить и sentinel вида, и исходную причину.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NotFoundf - сокращение для ошибки вида NotFound.
func NotFoundf(format string, args ...any) *Error {
	return NewError(KindNotFound, format, args...)
}

// Unavailable оборачивает ошибку недоступности хранилища.
// Отмена запроса клиентом получает вид Canceled.
func Unavailable(err error, operation string) *Error {
	if errors.Is(err, context.Canceled) {
		return Canceled(err, operation)
	}
	return WrapError(KindUnavailable, err, "store unavailable during %s", operation)
}

// Canceled оборачивает отмену запроса.
func Canceled(err error, operation string) *Error {
	return WrapError(KindCanceled, err, "request canceled during %s", operation)
}

// KindOf определяет вид ошибки; неизвестные ошибки считаются Unexpected.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}

	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}

	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	if IsUnavailableCause(err) {
		return KindUnavailable
	}

	return KindUnexpected
}

// IsRetryable сообщает, можно ли повторить операцию.
func IsRetryable(err error) bool {
	return KindOf(err) == KindUnavailable
}

// IsUnavailableCause распознаёт низкоуровневые признаки недоступности хранилища.
// context.Canceled сюда не входит: это отказ клиента, а не хранилища.
func IsUnavailableCause(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn)
}

var (
	// ErrIdempotencyKeyRequired - пустой idempotency-key.
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	// ErrIdempotencyRequestHashRequired - пустой hash запроса.
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	// ErrIdempotencyKeyAlreadyExists - ключ уже использовался с тем же запросом.
	ErrIdempotencyKeyAlreadyExists = errors.New("idempotency key already exists")
	// ErrIdempotencyHashMismatch - ключ уже использовался с другим запросом.
	ErrIdempotencyHashMismatch = errors.New("idempotency key request hash mismatch")
	// ErrIdempotencyKeyNotFound - записи с таким ключом нет.
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
	// ErrOutboxPublish - ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsIdempotencyConflict проверяет, что ключ уже занят (тем же или другим запросом).
func IsIdempotencyConflict(err error) bool {
	return errors.Is(err, ErrIdempotencyKeyAlreadyExists) || errors.Is(err, ErrIdempotencyHashMismatch)
}
