package common

import (
	"errors"
	"fmt"
)

// エラー種別。各ドメインのセンチネルエラーはいずれかの種別を内包します。
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrQueryFailure        = errors.New("query failure")
)

var (
	ErrInvalidPageSize  = InvalidInput("invalid page size")
	ErrInvalidPageToken = InvalidInput("invalid page token")
)

type kindError struct {
	msg   string
	kinds []error
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() []error {
	return e.kinds
}

// InvalidInput は ErrInvalidInput 種別のエラーを生成します。
func InvalidInput(msg string) error {
	return &kindError{msg: msg, kinds: []error{ErrInvalidInput}}
}

// NotFound は ErrNotFound 種別のエラーを生成します。
func NotFound(msg string) error {
	return &kindError{msg: msg, kinds: []error{ErrNotFound}}
}

// Duplicate は一意制約違反を表すエラーを生成します。ErrConstraintViolation としても判定できます。
func Duplicate(msg string) error {
	return &kindError{msg: msg, kinds: []error{ErrAlreadyExists, ErrConstraintViolation}}
}

// ConstraintViolation は ErrConstraintViolation 種別のエラーを生成します。
func ConstraintViolation(msg string) error {
	return &kindError{msg: msg, kinds: []error{ErrConstraintViolation}}
}

type queryError struct {
	op  string
	err error
}

func (e *queryError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (e *queryError) Unwrap() []error {
	return []error{ErrQueryFailure, e.err}
}

// QueryFailure は問い合わせ失敗を ErrQueryFailure として識別できるようにラップします。
// 既に種別が付与されているエラー (NotFound など) はそのまま返します。
func QueryFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrQueryFailure) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrConstraintViolation) {
		return err
	}
	return &queryError{op: op, err: err}
}
