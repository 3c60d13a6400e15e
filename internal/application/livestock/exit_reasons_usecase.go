package livestock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
	"github.com/jhoicas/Ganaderia-api/pkg/logger"
)

// ExitReasonsUseCase reparte las salidas de un registro entre venta, muerte y robo.
type ExitReasonsUseCase struct {
	tx         TxRunner
	detailRepo repository.ExitDetailRepository
	log        *logger.Logger
	now        func() time.Time
}

// NewExitReasonsUseCase construye el caso de uso.
func NewExitReasonsUseCase(tx TxRunner, detailRepo repository.ExitDetailRepository, log *logger.Logger) *ExitReasonsUseCase {
	return &ExitReasonsUseCase{tx: tx, detailRepo: detailRepo, log: logger.OrNop(log).Named("exit_reasons"), now: time.Now}
}

// Register valida y guarda el detalle de salidas del registro en una sola transacción.
//
// Reglas:
//   - La suma de cantidades debe ser igual a las salidas del registro (ErrExitsMismatch).
//   - Una venta con cantidad > 0 requiere precio por kilo y kilos mayores que cero.
//   - Con cero salidas se guarda una sola fila de venta con cantidad 0; cualquier cantidad distinta de 0 es ErrInvalidInput.
//   - Un registro que ya tiene detalle no se vuelve a repartir (ErrConflict).
func (uc *ExitReasonsUseCase) Register(ctx context.Context, movementRecordID string, reasons []dto.ExitReasonInput) ([]dto.ExitDetailResponse, error) {
	var saved []*entity.ExitDetailEntry
	err := uc.tx.Run(ctx, func(recordRepo repository.MovementRecordRepository, detailRepo repository.ExitDetailRepository) error {
		// El bloqueo serializa dos repartos concurrentes del mismo registro.
		rec, err := recordRepo.GetByIDForUpdate(ctx, movementRecordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		existing, err := detailRepo.ListByMovementRecord(ctx, rec.ID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: el registro ya tiene causas de salida asignadas", domain.ErrConflict)
		}

		entries, err := uc.buildEntries(rec, reasons)
		if err != nil {
			return err
		}
		if err := detailRepo.CreateBatch(ctx, entries); err != nil {
			return err
		}
		saved = entries
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("movement_record_id", movementRecordID).Int("rows", len(saved)).Msg("causas de salida registradas")
	out := make([]dto.ExitDetailResponse, 0, len(saved))
	for _, e := range saved {
		out = append(out, toExitDetailResponse(e))
	}
	return out, nil
}

// ListByRecord detalle de salidas de un registro.
func (uc *ExitReasonsUseCase) ListByRecord(ctx context.Context, movementRecordID string) ([]dto.ExitDetailResponse, error) {
	entries, err := uc.detailRepo.ListByMovementRecord(ctx, movementRecordID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExitDetailResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toExitDetailResponse(e))
	}
	return out, nil
}

func (uc *ExitReasonsUseCase) buildEntries(rec *entity.MovementRecord, reasons []dto.ExitReasonInput) ([]*entity.ExitDetailEntry, error) {
	now := uc.now()
	newEntry := func(cause entity.ExitCause, qty int, notes string) *entity.ExitDetailEntry {
		return &entity.ExitDetailEntry{
			ID:               uuid.New().String(),
			MovementRecordID: rec.ID,
			Member:           rec.Member,
			Date:             rec.Date,
			Cause:            cause,
			Quantity:         qty,
			Notes:            notes,
			CreatedAt:        now,
		}
	}

	if rec.Exits == 0 {
		for i, r := range reasons {
			if r.Quantity != 0 {
				return nil, fmt.Errorf("%w: el registro no tiene salidas y la fila %d asigna %d", domain.ErrInvalidInput, i+1, r.Quantity)
			}
		}
		return []*entity.ExitDetailEntry{newEntry(entity.ExitCauseSale, 0, entity.DefaultSaleNotes)}, nil
	}
	if len(reasons) == 0 {
		return nil, fmt.Errorf("%w: debe asignar al menos una causa", domain.ErrInvalidInput)
	}

	entries := make([]*entity.ExitDetailEntry, 0, len(reasons))
	sum := 0
	for i, r := range reasons {
		cause, ok := entity.ParseExitCause(r.Cause)
		if !ok {
			return nil, fmt.Errorf("%w: causa %q desconocida (fila %d)", domain.ErrInvalidInput, r.Cause, i+1)
		}
		if r.Quantity < 0 || r.Quantity > rec.Exits {
			return nil, fmt.Errorf("%w: cantidad %d fuera de rango 0..%d (fila %d)", domain.ErrInvalidInput, r.Quantity, rec.Exits, i+1)
		}
		notes := strings.TrimSpace(r.Notes)
		e := newEntry(cause, r.Quantity, notes)
		if cause == entity.ExitCauseSale {
			if r.Quantity > 0 && (!r.PricePerKg.IsPositive() || !r.TotalKg.IsPositive()) {
				return nil, fmt.Errorf("%w: la venta requiere valor por kilo y total de kilos (fila %d)", domain.ErrInvalidInput, i+1)
			}
			if notes == "" {
				e.Notes = entity.DefaultSaleNotes
			}
			e.PricePerKg = r.PricePerKg
			e.TotalKg = r.TotalKg
		}
		sum += r.Quantity
		entries = append(entries, e)
	}
	if sum != rec.Exits {
		return nil, fmt.Errorf("%w: la cantidad asignada (%d) debe ser igual al total de salidas (%d)", domain.ErrExitsMismatch, sum, rec.Exits)
	}
	return entries, nil
}

func toExitDetailResponse(e *entity.ExitDetailEntry) dto.ExitDetailResponse {
	return dto.ExitDetailResponse{
		ID:               e.ID,
		MovementRecordID: e.MovementRecordID,
		Member:           e.Member,
		Date:             e.Date,
		Cause:            string(e.Cause),
		Quantity:         e.Quantity,
		Notes:            e.Notes,
		PricePerKg:       e.PricePerKg,
		TotalKg:          e.TotalKg,
	}
}
