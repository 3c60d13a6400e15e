package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

var _ repository.MovementRecordRepository = (*MovementRecordRepo)(nil)

// Columnas de registros. fecha se lee como texto YYYY-MM-DD; los montos pueden ser NULL.
const movementRecordColumns = `
	id::text, socio, fecha::text, entradas, salidas, saldo,
	COALESCE(kg_totales, 0), COALESCE(vr_kilo, 0), COALESCE(fletes, 0),
	COALESCE(comision, 0), COALESCE(valor_animal, 0), COALESCE(total, 0),
	created_at, COALESCE(updated_at, created_at)`

// MovementRecordRepo tabla registros (usable con pool o tx).
type MovementRecordRepo struct {
	q Querier
}

// NewMovementRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRecordRepository(q Querier) *MovementRecordRepo {
	return &MovementRecordRepo{q: q}
}

// Create inserta un registro.
func (r *MovementRecordRepo) Create(ctx context.Context, rec *entity.MovementRecord) error {
	query := `
		INSERT INTO registros (id, socio, fecha, entradas, salidas, saldo, kg_totales, vr_kilo,
			fletes, comision, valor_animal, total, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.Member, rec.Date, rec.Entries, rec.Exits, rec.Balance,
		rec.TotalKg, rec.PricePerKg, rec.FreightCost, rec.Commission, rec.AnimalValue, rec.Total,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert registro: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe o si id no es un UUID.
func (r *MovementRecordRepo) GetByID(ctx context.Context, id string) (*entity.MovementRecord, error) {
	return r.getOne(ctx, `SELECT `+movementRecordColumns+` FROM registros WHERE id = $1::uuid`, id)
}

// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene efecto dentro de una tx.
func (r *MovementRecordRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.MovementRecord, error) {
	return r.getOne(ctx, `SELECT `+movementRecordColumns+` FROM registros WHERE id = $1::uuid FOR UPDATE`, id)
}

func (r *MovementRecordRepo) getOne(ctx context.Context, query, id string) (*entity.MovementRecord, error) {
	if !isUUID(id) {
		return nil, nil
	}
	rec, err := scanMovementRecord(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get registro: %w", err)
	}
	return rec, nil
}

// ListAll todos los registros, fecha descendente.
func (r *MovementRecordRepo) ListAll(ctx context.Context) ([]*entity.MovementRecord, error) {
	query := `SELECT ` + movementRecordColumns + ` FROM registros ORDER BY fecha DESC`
	return r.list(ctx, query)
}

// ListByMember registros de un socio (todos si member es vacío), fecha descendente.
func (r *MovementRecordRepo) ListByMember(ctx context.Context, member string, limit, offset int) ([]*entity.MovementRecord, error) {
	query := `SELECT ` + movementRecordColumns + ` FROM registros
		WHERE ($1 = '' OR socio = $1)
		ORDER BY fecha DESC, socio
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, member, limit, offset)
}

// ListMembers socios distintos en orden alfabético.
func (r *MovementRecordRepo) ListMembers(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT socio FROM registros ORDER BY socio`)
	if err != nil {
		return nil, fmt.Errorf("list socios: %w", err)
	}
	members, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan socios: %w", err)
	}
	return members, nil
}

func (r *MovementRecordRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MovementRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list registros: %w", err)
	}
	defer rows.Close()

	var out []*entity.MovementRecord
	for rows.Next() {
		rec, err := scanMovementRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registro: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registros: %w", err)
	}
	return out, nil
}

func scanMovementRecord(row pgx.Row) (*entity.MovementRecord, error) {
	var rec entity.MovementRecord
	err := row.Scan(
		&rec.ID, &rec.Member, &rec.Date, &rec.Entries, &rec.Exits, &rec.Balance,
		&rec.TotalKg, &rec.PricePerKg, &rec.FreightCost, &rec.Commission, &rec.AnimalValue, &rec.Total,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
