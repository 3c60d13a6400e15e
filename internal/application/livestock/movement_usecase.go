package livestock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
	"github.com/jhoicas/Ganaderia-api/pkg/logger"
)

// MovementUseCase alta y consulta de registros diarios de movimiento.
type MovementUseCase struct {
	recordRepo repository.MovementRecordRepository
	log        *logger.Logger
	now        func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(recordRepo repository.MovementRecordRepository, log *logger.Logger) *MovementUseCase {
	return &MovementUseCase{recordRepo: recordRepo, log: logger.OrNop(log).Named("movements"), now: time.Now}
}

// Create valida y guarda un registro. Balance por defecto = entradas − salidas;
// Total por defecto = precio por kilo × kilos totales.
func (uc *MovementUseCase) Create(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	member := strings.TrimSpace(in.Member)
	if member == "" {
		return nil, fmt.Errorf("%w: el socio es obligatorio", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(entity.DateLayout, in.Date); err != nil {
		return nil, fmt.Errorf("%w: fecha %q debe tener formato AAAA-MM-DD", domain.ErrInvalidInput, in.Date)
	}
	if in.Entries < 0 || in.Exits < 0 {
		return nil, fmt.Errorf("%w: entradas y salidas no pueden ser negativas", domain.ErrInvalidInput)
	}
	for name, v := range map[string]decimal.Decimal{
		"kg_totales":   in.TotalKg,
		"vr_kilo":      in.PricePerKg,
		"fletes":       in.FreightCost,
		"comision":     in.Commission,
		"valor_animal": in.AnimalValue,
	} {
		if v.IsNegative() {
			return nil, fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, name)
		}
	}

	balance := in.Entries - in.Exits
	if in.Balance != nil {
		balance = *in.Balance
	}
	total := in.PricePerKg.Mul(in.TotalKg)
	if in.Total != nil {
		if in.Total.IsNegative() {
			return nil, fmt.Errorf("%w: total no puede ser negativo", domain.ErrInvalidInput)
		}
		total = *in.Total
	}

	now := uc.now()
	rec := &entity.MovementRecord{
		ID:          uuid.New().String(),
		Member:      member,
		Date:        in.Date,
		Entries:     in.Entries,
		Exits:       in.Exits,
		Balance:     balance,
		TotalKg:     in.TotalKg,
		PricePerKg:  in.PricePerKg,
		FreightCost: in.FreightCost,
		Commission:  in.Commission,
		AnimalValue: in.AnimalValue,
		Total:       total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.recordRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", rec.ID).Str("member", rec.Member).Str("date", rec.Date).
		Int("entries", rec.Entries).Int("exits", rec.Exits).Msg("registro creado")
	return toMovementResponse(rec), nil
}

// Get devuelve un registro por id.
func (uc *MovementUseCase) Get(ctx context.Context, id string) (*dto.MovementResponse, error) {
	rec, err := uc.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(rec), nil
}

// List registros de un socio (o de todos si member es vacío), fecha descendente.
func (uc *MovementUseCase) List(ctx context.Context, member string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	recs, err := uc.recordRepo.ListByMember(ctx, member, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(recs)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, r := range recs {
		out.Items = append(out.Items, *toMovementResponse(r))
	}
	return out, nil
}

// Members socios distintos, en orden alfabético.
func (uc *MovementUseCase) Members(ctx context.Context) (*dto.MembersResponse, error) {
	members, err := uc.recordRepo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []string{}
	}
	return &dto.MembersResponse{Members: members}, nil
}

func toMovementResponse(r *entity.MovementRecord) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          r.ID,
		Member:      r.Member,
		Date:        r.Date,
		Entries:     r.Entries,
		Exits:       r.Exits,
		Balance:     r.Balance,
		TotalKg:     r.TotalKg,
		PricePerKg:  r.PricePerKg,
		FreightCost: r.FreightCost,
		Commission:  r.Commission,
		AnimalValue: r.AnimalValue,
		Total:       r.Total,
		CreatedAt:   r.CreatedAt,
	}
}
