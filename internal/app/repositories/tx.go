package repositories

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/clubsphere/internal/db"
)

type txKey struct{}

// TxScope is the state of one running transaction. Tx is nil for stores
// without a database transaction.
type TxScope struct {
	Tx pgx.Tx

	mu    sync.Mutex
	hooks []func()
}

// BeginScope attaches a new transaction scope to ctx.
func BeginScope(ctx context.Context, tx pgx.Tx) (context.Context, *TxScope) {
	scope := &TxScope{Tx: tx}
	return context.WithValue(ctx, txKey{}, scope), scope
}

func scopeFrom(ctx context.Context) *TxScope {
	scope, _ := ctx.Value(txKey{}).(*TxScope)
	return scope
}

// InTransaction reports whether ctx carries a transaction scope
func InTransaction(ctx context.Context) bool {
	return scopeFrom(ctx) != nil
}

// AfterCommit defers fn until the transaction in ctx commits. Outside a
// transaction fn runs immediately. Hooks of a rolled back transaction never run.
func AfterCommit(ctx context.Context, fn func()) {
	scope := scopeFrom(ctx)
	if scope == nil {
		fn()
		return
	}
	scope.mu.Lock()
	scope.hooks = append(scope.hooks, fn)
	scope.mu.Unlock()
}

// Committed runs the deferred hooks in registration order.
func (s *TxScope) Committed() {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// DBTX is the query surface shared by pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conn returns the transaction bound to ctx, or the pool.
func conn(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if scope := scopeFrom(ctx); scope != nil && scope.Tx != nil {
		return scope.Tx
	}
	return pool
}

// PgTransactor implements Transactor on a Postgres pool
type PgTransactor struct {
	db *db.PostgresDB
}

func NewPgTransactor(pg *db.PostgresDB) *PgTransactor {
	return &PgTransactor{db: pg}
}

func (t *PgTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}

	var scope *TxScope
	err := t.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txCtx context.Context
		txCtx, scope = BeginScope(ctx, tx)
		return fn(txCtx)
	})
	if err != nil {
		return err
	}

	scope.Committed()
	return nil
}
