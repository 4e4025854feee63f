package postgres

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

// pgErrorCode は PostgreSQL エラーの SQLSTATE と制約名を返します。
func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func timePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	v := value.Time
	return &v
}

func checkPage(limit, offset int) error {
	if limit <= 0 {
		return common.ErrInvalidPageSize
	}
	if offset < 0 {
		return common.ErrInvalidPageToken
	}
	return nil
}

// whereBuilder は一覧取得用の WHERE 句とプレースホルダ引数を組み立てます。
type whereBuilder struct {
	args       []any
	conditions []string
}

// add は "column = ?" 形式の条件を追加します。? はすべて同じ次のプレースホルダに置き換えられます。
func (b *whereBuilder) add(condition string, value any) {
	b.args = append(b.args, value)
	b.conditions = append(b.conditions, strings.ReplaceAll(condition, "?", "$"+strconv.Itoa(len(b.args))))
}

func (b *whereBuilder) where() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}

// page は LIMIT/OFFSET 句を返します。次ページ判定のため limit+1 件を取得します。
func (b *whereBuilder) page(limit, offset int) string {
	b.args = append(b.args, limit+1)
	limitPlaceholder := "$" + strconv.Itoa(len(b.args))
	b.args = append(b.args, offset)
	offsetPlaceholder := "$" + strconv.Itoa(len(b.args))
	return `
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `
}

// trimPage は limit+1 件取得した結果を limit 件に切り詰め、次ページトークンを返します。
func trimPage[T any](items []T, limit, offset int) ([]T, string) {
	if len(items) > limit {
		return items[:limit], strconv.Itoa(offset + limit)
	}
	return items, ""
}
