package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/evaluation"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

const evaluationSelect = `
        SELECT e.id, e.worker_id, e.evaluator_id, e.evaluation_type, e.score, e.evaluation_date, e.comments,
               w.full_name, e.created_at, e.updated_at`

// EvaluationRepository は PostgreSQL を利用した評価永続化の実装です。
type EvaluationRepository struct {
	pool pgdb.Queryer
}

// NewEvaluationRepository は EvaluationRepository を生成します。
func NewEvaluationRepository(pool pgdb.Queryer) *EvaluationRepository {
	return &EvaluationRepository{pool: pool}
}

// Create は評価を新規作成します。
func (r *EvaluationRepository) Create(ctx context.Context, e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH e AS (
            INSERT INTO evaluations (worker_id, evaluator_id, evaluation_type, score, evaluation_date, comments, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            RETURNING *
        )`+evaluationSelect+`
          FROM e
          JOIN workers w ON w.id = e.worker_id
    `, e.WorkerID, e.EvaluatorID, e.Type, nullableInt(e.Score), e.Date, nullableString(e.Comments), e.CreatedAt, e.UpdatedAt)

	created, err := scanEvaluation(row)
	if err != nil {
		return nil, translateEvaluationPgError(err)
	}
	return created, nil
}

// Update は評価を更新します。
func (r *EvaluationRepository) Update(ctx context.Context, e *evaluation.Evaluation) (*evaluation.Evaluation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH e AS (
            UPDATE evaluations
               SET evaluation_type = $1,
                   score = $2,
                   evaluation_date = $3,
                   comments = $4,
                   updated_at = $5
             WHERE id = $6
            RETURNING *
        )`+evaluationSelect+`
          FROM e
          JOIN workers w ON w.id = e.worker_id
    `, e.Type, nullableInt(e.Score), e.Date, nullableString(e.Comments), e.UpdatedAt, e.ID)

	updated, err := scanEvaluation(row)
	if err != nil {
		return nil, translateEvaluationPgError(err)
	}
	return updated, nil
}

// Delete は評価を削除します。
func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return translateEvaluationPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return evaluation.ErrEvaluationNotFound
	}
	return nil
}

// FindByID は ID で評価を取得します。
func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*evaluation.Evaluation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, evaluationSelect+`
          FROM evaluations e
          JOIN workers w ON w.id = e.worker_id
         WHERE e.id = $1
         LIMIT 1
    `, id)

	found, err := scanEvaluation(row)
	if err != nil {
		return nil, translateEvaluationPgError(err)
	}
	return found, nil
}

// List は評価一覧を評価日の新しい順で取得します。
func (r *EvaluationRepository) List(ctx context.Context, filter evaluation.ListEvaluationsFilter) ([]*evaluation.Evaluation, string, error) {
	if err := checkPage(filter.Limit, filter.Offset); err != nil {
		return nil, "", err
	}

	var b whereBuilder
	if filter.WorkerID != nil {
		b.add("e.worker_id = ?", *filter.WorkerID)
	}
	if filter.EvaluatorID != nil {
		b.add("e.evaluator_id = ?", *filter.EvaluatorID)
	}
	if filter.Type != nil {
		b.add("e.evaluation_type = ?", *filter.Type)
	}

	query := evaluationSelect + `
          FROM evaluations e
          JOIN workers w ON w.id = e.worker_id` + b.where() + `
         ORDER BY e.evaluation_date DESC, e.created_at DESC, e.id ASC` + b.page(filter.Limit, filter.Offset)

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, b.args...)
	if err != nil {
		return nil, "", translateEvaluationPgError(err)
	}
	defer rows.Close()

	var items []*evaluation.Evaluation
	for rows.Next() {
		found, err := scanEvaluation(rows)
		if err != nil {
			return nil, "", translateEvaluationPgError(err)
		}
		items = append(items, found)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateEvaluationPgError(err)
	}

	items, nextToken := trimPage(items, filter.Limit, filter.Offset)
	return items, nextToken, nil
}

func scanEvaluation(row pgx.Row) (*evaluation.Evaluation, error) {
	var (
		id, workerID, evaluatorID string
		evalType                  string
		score                     sql.NullInt32
		date                      time.Time
		comments                  sql.NullString
		workerName                string
		createdAt, updatedAt      time.Time
	)

	if err := row.Scan(&id, &workerID, &evaluatorID, &evalType, &score, &date, &comments,
		&workerName, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, evaluation.ErrEvaluationNotFound
		}
		return nil, err
	}

	e := &evaluation.Evaluation{
		ID:          id,
		WorkerID:    workerID,
		EvaluatorID: evaluatorID,
		Type:        evaluation.Type(evalType),
		Date:        date,
		Comments:    stringPtr(comments),
		WorkerName:  workerName,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if score.Valid {
		v := int(score.Int32)
		e.Score = &v
	}
	return e, nil
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func translateEvaluationPgError(err error) error {
	if code, _ := pgErrorCode(err); code == foreignKeyViolationCode {
		return evaluation.ErrReferenceNotFound
	}
	return err
}
