package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// runs unchanged inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Store is the storage facade: one repository per table. A Store without a
// pool (a transaction-bound or in-memory Store) runs WithTx callbacks inline.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger

	Users     UserStore
	Sessions  SessionStore
	Claims    ClaimStore
	Documents DocumentStore
	Chats     ChatStore
	Analyses  AnalysisStore
	Audit     AuditStore
}

func NewStore(pool *pgxpool.Pool, logger *zap.Logger) *Store {
	s := newStore(pool, logger)
	s.pool = pool
	return s
}

func newStore(db DBTX, logger *zap.Logger) *Store {
	return &Store{
		logger:    logger,
		Users:     NewUserRepository(db, logger),
		Sessions:  NewSessionRepository(db, logger),
		Claims:    NewClaimRepository(db, logger),
		Documents: NewDocumentRepository(db, logger),
		Chats:     NewChatRepository(db, logger),
		Analyses:  NewAnalysisRepository(db, logger),
		Audit:     NewAuditRepository(db, logger),
	}
}

// WithTx runs fn against a Store bound to a single pgx.Tx. The transaction holds
// one pooled connection for its whole lifetime, commits when fn returns nil and
// rolls back otherwise. Calling WithTx on a Store that is already inside a
// transaction just runs fn in that transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) (err error) {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(newStore(tx, s.logger)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Warn("Transaction rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Ping checks the underlying pool.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Ping(ctx)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

// nullableJSON stores an empty payload as SQL NULL rather than JSON null.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
