package repository

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// ExitDetailRepository define el puerto de persistencia para el detalle de salidas.
type ExitDetailRepository interface {
	CreateBatch(ctx context.Context, entries []*entity.ExitDetailEntry) error
	ListByCause(ctx context.Context, cause entity.ExitCause) ([]*entity.ExitDetailEntry, error)
	ListAll(ctx context.Context) ([]*entity.ExitDetailEntry, error)
	ListByMovementRecord(ctx context.Context, movementRecordID string) ([]*entity.ExitDetailEntry, error)
}
