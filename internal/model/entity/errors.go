package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrUserExists         = errors.New("user already exists")
)

// ValidationError 请求体校验失败
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf 构造校验错误
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ReferenceNotFoundError 日志引用的业务编码不存在
type ReferenceNotFoundError struct {
	Kind string // product / material / recipe
	Code string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Code)
}

// InsufficientStockError 库存不足，操作未产生任何扣减
type InsufficientStockError struct {
	MaterialCode string
	Available    float64
	Requested    float64
	Unit         string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %g%s, Requested: %g%s",
		e.MaterialCode, e.Available, e.Unit, e.Requested, e.Unit)
}
