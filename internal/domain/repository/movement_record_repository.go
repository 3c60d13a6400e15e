package repository

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// MovementRecordRepository define el puerto de persistencia para registros de movimiento.
type MovementRecordRepository interface {
	Create(ctx context.Context, record *entity.MovementRecord) error
	GetByID(ctx context.Context, id string) (*entity.MovementRecord, error)
	// GetByIDForUpdate igual que GetByID pero bloquea el registro hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.MovementRecord, error)
	// ListAll devuelve todos los registros ordenados por fecha descendente, sin filtro.
	ListAll(ctx context.Context) ([]*entity.MovementRecord, error)
	ListByMember(ctx context.Context, member string, limit, offset int) ([]*entity.MovementRecord, error)
	ListMembers(ctx context.Context) ([]string, error)
}
