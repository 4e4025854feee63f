package lifecycle

import (
	"strings"
	"time"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
)

// Window は有効期限の緊急度区分です。
type Window string

const (
	WindowExpired  Window = "expired"
	WindowCritical Window = "critical"
	WindowWarning  Window = "warning"
	WindowInfo     Window = "info"
	WindowValid    Window = "valid"
)

// Thresholds は緊急度区分の日数閾値です。
type Thresholds struct {
	Critical int
	Warning  int
	Info     int
}

// DefaultThresholds は 7/15/30 日の標準閾値です。
var DefaultThresholds = Thresholds{Critical: 7, Warning: 15, Info: 30}

// ErrInvalidThresholds は閾値の順序が不正な場合に返却されます。
var ErrInvalidThresholds = common.InvalidInput("lifecycle: thresholds must satisfy 0 <= critical < warning < info")

var (
	// ErrInvalidDate は日付文字列が解釈できない場合に返却されます。
	ErrInvalidDate = common.InvalidInput("lifecycle: invalid date")
	// ErrDateRequired は必須の日付が空の場合に返却されます。
	ErrDateRequired = common.InvalidInput("lifecycle: date required")
)

// Validate は閾値の順序を検証します。
func (t Thresholds) Validate() error {
	if t.Critical < 0 || t.Critical >= t.Warning || t.Warning >= t.Info {
		return ErrInvalidThresholds
	}
	return nil
}

// Classify は有効期限を緊急度区分に分類します。期限なしは valid です。
func (t Thresholds) Classify(expiry *time.Time, now time.Time) Window {
	if expiry == nil {
		return WindowValid
	}
	return t.ClassifyDays(DaysUntil(*expiry, now))
}

// ClassifyDays は残日数を緊急度区分に分類します。
func (t Thresholds) ClassifyDays(days int) Window {
	switch {
	case days < 0:
		return WindowExpired
	case days <= t.Critical:
		return WindowCritical
	case days <= t.Warning:
		return WindowWarning
	case days <= t.Info:
		return WindowInfo
	default:
		return WindowValid
	}
}

// Classify は DefaultThresholds で分類します。
func Classify(expiry *time.Time, now time.Time) Window {
	return DefaultThresholds.Classify(expiry, now)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseDate は日付文字列を解釈します。空文字は nil を返し、不正な文字列は ErrInvalidDate です。
func ParseDate(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			d := common.TruncateDate(parsed)
			return &d, nil
		}
	}
	return nil, ErrInvalidDate
}

// MustDate は必須の日付文字列を解釈します。空文字は ErrDateRequired、不正な文字列は ErrInvalidDate です。
func MustDate(raw string) (time.Time, error) {
	d, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return time.Time{}, ErrDateRequired
	}
	return *d, nil
}

// FormatDate は日付を YYYY-MM-DD 形式にします。
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
