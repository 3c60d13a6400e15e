package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier lo que comparten *pgxpool.Pool y pgx.Tx; los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func isUniqueViolation(err error) bool { return hasSQLState(err, sqlStateUniqueViolation) }

// isForeignKeyViolation salidas_detalle.registro_id apunta a un registro inexistente.
func isForeignKeyViolation(err error) bool { return hasSQLState(err, sqlStateForeignKeyViolation) }

// isUUID las columnas id son uuid; se comparan contra $1::uuid para usar el índice,
// así que un valor que no parsea se trata como inexistente en lugar de fallar el cast.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
