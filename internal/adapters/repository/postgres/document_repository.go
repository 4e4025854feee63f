package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/document"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

// DocumentRepository は PostgreSQL を利用した文書永続化の実装です。
type DocumentRepository struct {
	pool pgdb.Queryer
}

// NewDocumentRepository は DocumentRepository を生成します。
func NewDocumentRepository(pool pgdb.Queryer) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Create は文書を新規登録します。
func (r *DocumentRepository) Create(ctx context.Context, d *document.Document) (*document.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO documents (name, type, url, related_to, related_id, created_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, name, type, url, related_to, related_id, created_by, created_at, updated_at
    `, d.Name, d.Type, d.URL, d.RelatedTo, nullableString(d.RelatedID), d.CreatedBy, d.CreatedAt, d.UpdatedAt)

	created, err := scanDocument(row)
	if err != nil {
		return nil, translateDocumentPgError(err)
	}
	return created, nil
}

// Update は文書情報を更新します。
func (r *DocumentRepository) Update(ctx context.Context, d *document.Document) (*document.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE documents
           SET name = $1,
               type = $2,
               url = $3,
               related_to = $4,
               related_id = $5,
               updated_at = $6
         WHERE id = $7
        RETURNING id, name, type, url, related_to, related_id, created_by, created_at, updated_at
    `, d.Name, d.Type, d.URL, d.RelatedTo, nullableString(d.RelatedID), d.UpdatedAt, d.ID)

	updated, err := scanDocument(row)
	if err != nil {
		return nil, translateDocumentPgError(err)
	}
	return updated, nil
}

// Delete は文書を削除します。
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return translateDocumentPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}
	return nil
}

// FindByID は ID で文書を取得します。
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*document.Document, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, type, url, related_to, related_id, created_by, created_at, updated_at
          FROM documents
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanDocument(row)
	if err != nil {
		return nil, translateDocumentPgError(err)
	}
	return found, nil
}

// List は文書一覧を登録日時の新しい順で取得します。
func (r *DocumentRepository) List(ctx context.Context, filter document.ListDocumentsFilter) ([]*document.Document, string, error) {
	if err := checkPage(filter.Limit, filter.Offset); err != nil {
		return nil, "", err
	}

	var b whereBuilder
	if filter.RelatedTo != nil {
		b.add("related_to = ?", *filter.RelatedTo)
	}
	if filter.RelatedID != nil {
		b.add("related_id = ?", *filter.RelatedID)
	}
	if filter.Type != nil {
		b.add("type = ?", *filter.Type)
	}

	query := `
        SELECT id, name, type, url, related_to, related_id, created_by, created_at, updated_at
          FROM documents` + b.where() + `
         ORDER BY created_at DESC, id DESC` + b.page(filter.Limit, filter.Offset)

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, b.args...)
	if err != nil {
		return nil, "", translateDocumentPgError(err)
	}
	defer rows.Close()

	var items []*document.Document
	for rows.Next() {
		found, err := scanDocument(rows)
		if err != nil {
			return nil, "", translateDocumentPgError(err)
		}
		items = append(items, found)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateDocumentPgError(err)
	}

	items, nextToken := trimPage(items, filter.Limit, filter.Offset)
	return items, nextToken, nil
}

func scanDocument(row pgx.Row) (*document.Document, error) {
	var (
		id, name, docType, url string
		relatedTo              string
		relatedID              sql.NullString
		createdBy              string
		createdAt, updatedAt   time.Time
	)

	if err := row.Scan(&id, &name, &docType, &url, &relatedTo, &relatedID, &createdBy, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, document.ErrDocumentNotFound
		}
		return nil, err
	}

	return &document.Document{
		ID:        id,
		Name:      name,
		Type:      document.Type(docType),
		URL:       url,
		RelatedTo: document.RelatedTo(relatedTo),
		RelatedID: stringPtr(relatedID),
		CreatedBy: createdBy,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func translateDocumentPgError(err error) error {
	if code, _ := pgErrorCode(err); code == foreignKeyViolationCode {
		return document.ErrCreatorNotFound
	}
	return err
}
