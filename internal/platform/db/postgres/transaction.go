package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
)

// ErrWriteInReadOnly は読み取り専用トランザクションの内側で書き込みトランザクションを要求した場合に返却されます。
var ErrWriteInReadOnly = errors.New("postgres: read-write transaction requested inside read-only transaction")

type txKey struct{}

// txState はコンテキストに載せるトランザクションとそのアクセスモードです。
type txState struct {
	tx       pgx.Tx
	readOnly bool
}

type txStarter interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TransactionManager は common.TransactionManager の pgx 実装です。
// 開始したトランザクションはコンテキスト経由でリポジトリへ渡り、内側の呼び出しは外側のトランザクションに合流します。
type TransactionManager struct {
	pool txStarter
}

var _ common.TransactionManager = (*TransactionManager)(nil)

// NewTransactionManager は TransactionManager を生成します。pool が nil の場合は nil を返します。
func NewTransactionManager(pool txStarter) *TransactionManager {
	if pool == nil {
		return nil
	}
	return &TransactionManager{pool: pool}
}

// WithinReadOnly は読み取り専用トランザクション内で fn を実行します。
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return m.run(ctx, true, fn)
}

// WithinReadWrite は読み書きトランザクション内で fn を実行します。
// 読み取り専用トランザクションへの合流は ErrWriteInReadOnly になります。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return m.run(ctx, false, fn)
}

func (m *TransactionManager) run(ctx context.Context, readOnly bool, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("postgres: transaction function is required")
	}
	if m == nil {
		return fn(ctx)
	}

	if outer, ok := stateFromContext(ctx); ok {
		if outer.readOnly && !readOnly {
			return ErrWriteInReadOnly
		}
		return fn(ctx)
	}

	mode := pgx.ReadWrite
	if readOnly {
		mode = pgx.ReadOnly
	}
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: mode})
	if err != nil {
		return common.QueryFailure("postgres: begin tx", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, txState{tx: tx, readOnly: readOnly})); err != nil {
		return rollback(ctx, tx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return rollback(ctx, tx, common.QueryFailure("postgres: commit", err))
	}
	return nil
}

// rollback は cause を保ったままロールバックし、ロールバック自体の失敗を併記します。
func rollback(ctx context.Context, tx pgx.Tx, cause error) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return errors.Join(cause, fmt.Errorf("postgres: rollback: %w", err))
	}
	return cause
}

func stateFromContext(ctx context.Context) (txState, bool) {
	if ctx == nil {
		return txState{}, false
	}
	s, ok := ctx.Value(txKey{}).(txState)
	return s, ok
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	s, ok := stateFromContext(ctx)
	return s.tx, ok
}

// QueryerFromContext はコンテキストにトランザクションがあればそれを、なければ fallback を返します。
func QueryerFromContext(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback
}

// Queryer は pgx.Tx と pgxpool.Pool に共通するクエリ実行インターフェースです。
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
