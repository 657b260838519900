package pkg

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// 引擎对外的错误种类，handler 层据此映射 HTTP 状态码。
// 存储层错误在越过 service 边界前一律包装，不向调用方暴露细节。
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidState    = errors.New("invalid state")
	ErrValidation      = errors.New("validation error")
	ErrInternal        = errors.New("internal error")
)

type AppError struct {
	Err     error  // 错误种类哨兵
	Code    string // 稳定错误码，供调用方枚举
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Unauthenticated(message string) *AppError {
	return &AppError{Err: ErrUnauthenticated, Code: "UNAUTHENTICATED", Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Code: "FORBIDDEN", Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Err: ErrNotFound, Code: "NOT_FOUND", Message: resource + " not found"}
}

func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Code: "CONFLICT", Message: message}
}

func InvalidState(message string) *AppError {
	return &AppError{Err: ErrInvalidState, Code: "INVALID_STATE", Message: message}
}

func Invalid(message string) *AppError {
	return &AppError{Err: ErrValidation, Code: "VALIDATION_ERROR", Message: message}
}

// Internal 根因保留在错误链里供日志与排查，对外文案不携带细节
func Internal(cause error) *AppError {
	kind := error(ErrInternal)
	if cause != nil {
		kind = fmt.Errorf("%w: %w", ErrInternal, cause)
	}
	return &AppError{Err: kind, Code: "INTERNAL", Message: "internal error"}
}

// FromStore 将 gorm 错误翻译为应用错误。唯一索引冲突视为并发竞争失败方，
// 返回 Conflict 而不是 Internal。
func FromStore(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(resource + " already exists")
	default:
		return Internal(err)
	}
}

// CodeOf 取稳定错误码，非 AppError 一律归为 INTERNAL
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return "INTERNAL"
}
