package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/course"
	pgdb "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
)

// CourseRepository は PostgreSQL を利用したコース永続化の実装です。
type CourseRepository struct {
	pool pgdb.Queryer
}

// NewCourseRepository は CourseRepository を生成します。
func NewCourseRepository(pool pgdb.Queryer) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// Create はコースを新規作成します。
func (r *CourseRepository) Create(ctx context.Context, c *course.Course) (*course.Course, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO courses (name, description, duration_hours, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, description, duration_hours, created_at, updated_at
    `, c.Name, nullableString(c.Description), c.DurationHours, c.CreatedAt, c.UpdatedAt)

	created, err := scanCourse(row)
	if err != nil {
		return nil, translateCoursePgError(err)
	}
	return created, nil
}

// Update はコース情報を更新します。
func (r *CourseRepository) Update(ctx context.Context, c *course.Course) (*course.Course, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE courses
           SET name = $1,
               description = $2,
               duration_hours = $3,
               updated_at = $4
         WHERE id = $5
        RETURNING id, name, description, duration_hours, created_at, updated_at
    `, c.Name, nullableString(c.Description), c.DurationHours, c.UpdatedAt, c.ID)

	updated, err := scanCourse(row)
	if err != nil {
		return nil, translateCoursePgError(err)
	}
	return updated, nil
}

// Delete はコースを削除します。
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return translateCoursePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return course.ErrCourseNotFound
	}
	return nil
}

// FindByID は ID でコースを取得します。
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*course.Course, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, description, duration_hours, created_at, updated_at
          FROM courses
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanCourse(row)
	if err != nil {
		return nil, translateCoursePgError(err)
	}
	return found, nil
}

// List はコース一覧を名前順で取得します。
func (r *CourseRepository) List(ctx context.Context, filter course.ListCoursesFilter) ([]*course.Course, string, error) {
	if err := checkPage(filter.Limit, filter.Offset); err != nil {
		return nil, "", err
	}

	var b whereBuilder
	query := `
        SELECT id, name, description, duration_hours, created_at, updated_at
          FROM courses
         ORDER BY name ASC, id ASC` + b.page(filter.Limit, filter.Offset)

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, b.args...)
	if err != nil {
		return nil, "", translateCoursePgError(err)
	}
	defer rows.Close()

	var courses []*course.Course
	for rows.Next() {
		found, err := scanCourse(rows)
		if err != nil {
			return nil, "", translateCoursePgError(err)
		}
		courses = append(courses, found)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateCoursePgError(err)
	}

	courses, nextToken := trimPage(courses, filter.Limit, filter.Offset)
	return courses, nextToken, nil
}

func scanCourse(row pgx.Row) (*course.Course, error) {
	var (
		id                   string
		name                 string
		description          sql.NullString
		durationHours        int
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &description, &durationHours, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, course.ErrCourseNotFound
		}
		return nil, err
	}

	return &course.Course{
		ID:            id,
		Name:          name,
		Description:   stringPtr(description),
		DurationHours: durationHours,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

func translateCoursePgError(err error) error {
	if code, _ := pgErrorCode(err); code == foreignKeyViolationCode {
		return course.ErrCourseInUse
	}
	return err
}
