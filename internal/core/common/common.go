package common

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

// SystemClock は UTC の現在時刻を返す Clock 実装です。
type SystemClock struct{}

// Now は現在時刻を返します。
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

// NoopTransactionManager は fn をそのまま実行する TransactionManager です。
type NoopTransactionManager struct{}

// WithinReadOnly は fn を実行します。
func (NoopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// WithinReadWrite は fn を実行します。
func (NoopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Defaults は nil の依存をデフォルト実装で補完します。
func Defaults(clock Clock, tx TransactionManager) (Clock, TransactionManager) {
	if clock == nil {
		clock = SystemClock{}
	}
	if tx == nil {
		tx = NoopTransactionManager{}
	}
	return clock, tx
}

const (
	DefaultListPageSize = 50
	MaxListPageSize     = 200
)

// NormalizePageSize はページサイズを検証し、未指定時はデフォルト値を返します。
func NormalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return DefaultListPageSize, nil
	}
	if pageSize > MaxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

// ParsePageToken はオフセット形式のページトークンを解釈します。
func ParsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}

// NextPageToken は limit+1 件取得した結果から次ページのトークンを決定します。
func NextPageToken(fetched, limit, offset int) string {
	if fetched > limit {
		return strconv.Itoa(offset + limit)
	}
	return ""
}

// NormalizeID は UUID 形式の ID を検証し、正規化した文字列を返します。
func NormalizeID(raw string) (string, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// NormalizeOptionalID は空文字を nil として扱う任意 ID を検証します。
func NormalizeOptionalID(raw *string) (*string, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, true
	}
	id, ok := NormalizeID(*raw)
	if !ok {
		return nil, false
	}
	return &id, true
}

// NormalizeText は前後の空白を取り除き、空文字なら nil を返します。
func NormalizeText(raw *string) *string {
	if raw == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// TruncateDate は時刻を UTC の日付に丸めます。
func TruncateDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// TruncateDatePtr は nil を許容する TruncateDate です。
func TruncateDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := TruncateDate(*t)
	return &d
}
