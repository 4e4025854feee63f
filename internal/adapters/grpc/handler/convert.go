package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
)

// optionalString は空文字を nil とみなします。一覧の絞り込み条件に使います。
func optionalString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// optionalEnum は空文字を nil とみなして列挙型へ変換します。
func optionalEnum[T ~string](raw string) *T {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	v := T(trimmed)
	return &v
}

// enumPtr は nil を保ったまま列挙型へ変換します。
func enumPtr[T ~string](raw *string) *T {
	if raw == nil {
		return nil
	}
	v := T(strings.TrimSpace(*raw))
	return &v
}

func stringPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	i := int32(*v)
	return &i
}

// parseDate は任意の日付フィールドを解釈します。空文字は nil です。
func parseDate(field, raw string) (*time.Time, error) {
	d, err := lifecycle.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// parseDatePtr は部分更新用の日付フィールドを解釈します。
func parseDatePtr(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := lifecycle.MustDate(*raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &d, nil
}

// requiredDate は必須の日付フィールドを解釈します。
func requiredDate(field, raw string) (time.Time, error) {
	d, err := lifecycle.MustDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func formatDate(t time.Time) string {
	return lifecycle.FormatDate(&t)
}
