package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

var _ repository.ExitDetailRepository = (*ExitDetailRepo)(nil)

const exitDetailColumns = `
	id::text, registro_id::text, socio, fecha::text, causa, cantidad, COALESCE(observaciones, ''),
	COALESCE(valor_kilo_venta, 0), COALESCE(total_kilos_venta, 0), created_at`

// ExitDetailRepo tabla salidas_detalle (usable con pool o tx).
type ExitDetailRepo struct {
	q Querier
}

// NewExitDetailRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExitDetailRepository(q Querier) *ExitDetailRepo {
	return &ExitDetailRepo{q: q}
}

// CreateBatch inserta todas las filas en un solo viaje.
func (r *ExitDetailRepo) CreateBatch(ctx context.Context, entries []*entity.ExitDetailEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO salidas_detalle (id, registro_id, socio, fecha, causa, cantidad, observaciones,
			valor_kilo_venta, total_kilos_venta, created_at)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10)`

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query,
			e.ID, e.MovementRecordID, e.Member, e.Date, string(e.Cause), e.Quantity, e.Notes,
			e.PricePerKg, e.TotalKg, e.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert salidas_detalle: %w", err)
		}
	}
	return nil
}

// ListByCause filas con la causa dada.
func (r *ExitDetailRepo) ListByCause(ctx context.Context, cause entity.ExitCause) ([]*entity.ExitDetailEntry, error) {
	return r.list(ctx, `SELECT `+exitDetailColumns+` FROM salidas_detalle WHERE causa = $1`, string(cause))
}

// ListAll todas las filas.
func (r *ExitDetailRepo) ListAll(ctx context.Context) ([]*entity.ExitDetailEntry, error) {
	return r.list(ctx, `SELECT `+exitDetailColumns+` FROM salidas_detalle`)
}

// ListByMovementRecord filas de un registro; un id que no es UUID no tiene filas.
func (r *ExitDetailRepo) ListByMovementRecord(ctx context.Context, movementRecordID string) ([]*entity.ExitDetailEntry, error) {
	if !isUUID(movementRecordID) {
		return []*entity.ExitDetailEntry{}, nil
	}
	return r.list(ctx, `SELECT `+exitDetailColumns+` FROM salidas_detalle WHERE registro_id = $1::uuid ORDER BY created_at`, movementRecordID)
}

func (r *ExitDetailRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ExitDetailEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list salidas_detalle: %w", err)
	}
	defer rows.Close()

	var out []*entity.ExitDetailEntry
	for rows.Next() {
		var (
			e     entity.ExitDetailEntry
			cause string
		)
		if err := rows.Scan(
			&e.ID, &e.MovementRecordID, &e.Member, &e.Date, &cause, &e.Quantity, &e.Notes,
			&e.PricePerKg, &e.TotalKg, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan salidas_detalle: %w", err)
		}
		e.Cause = entity.ExitCause(cause)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list salidas_detalle: %w", err)
	}
	return out, nil
}
