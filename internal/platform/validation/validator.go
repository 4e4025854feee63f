package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
)

// Error はフィールド名からメッセージへの対応を保持する検証エラーです。
type Error struct {
	Fields map[string]string
}

// Error は検証エラーを決定的な順序で連結します。
func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap は common.ErrInvalidInput 種別として扱えるようにします。
func (e *Error) Unwrap() error {
	return common.ErrInvalidInput
}

// Validator は go-playground/validator のラッパーです。
type Validator struct {
	validate *validator.Validate
}

// New は Validator を生成します。フィールド名には `field` タグ、なければ小文字化した名前を使います。
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("field"); name != "" {
			return name
		}
		return strings.ToLower(fld.Name)
	})
	return &Validator{validate: v}
}

var std = New()

// Struct は既定の Validator で構造体を検証します。
func Struct(s any) error {
	return std.Struct(s)
}

// Struct は構造体を検証し、失敗時は *Error を返します。
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = message(fe)
	}
	return &Error{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "uuid":
		return "must be a valid uuid"
	case "url":
		return "must be a valid url"
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gtfield":
		return fmt.Sprintf("must be after %s", strings.ToLower(fe.Param()))
	case "gtefield":
		return fmt.Sprintf("must not be before %s", strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
