package livestock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/memory"
)

var errStore = errors.New("conexión rechazada")

// failingRecords falla en ListAll; el resto lo delega.
type failingRecords struct {
	repository.MovementRecordRepository
}

func (failingRecords) ListAll(context.Context) ([]*entity.MovementRecord, error) {
	return nil, errStore
}

// failingDetails falla en las lecturas del reporte.
type failingDetails struct {
	repository.ExitDetailRepository
}

func (failingDetails) ListByCause(context.Context, entity.ExitCause) ([]*entity.ExitDetailEntry, error) {
	return nil, errStore
}

func (failingDetails) ListAll(context.Context) ([]*entity.ExitDetailEntry, error) {
	return nil, errStore
}

func seedRecord(t *testing.T, s *memory.Store, id, member, date string, entries, exits int, total string) {
	t.Helper()
	require.NoError(t, s.MovementRecords().Create(context.Background(), &entity.MovementRecord{
		ID:      id,
		Member:  member,
		Date:    date,
		Entries: entries,
		Exits:   exits,
		Balance: entries - exits,
		Total:   decimal.RequireFromString(total),
	}))
}

func seedDetail(t *testing.T, s *memory.Store, recordID, member, date string, cause entity.ExitCause, qty int) {
	t.Helper()
	require.NoError(t, s.ExitDetails().CreateBatch(context.Background(), []*entity.ExitDetailEntry{{
		ID:               recordID + "-" + string(cause),
		MovementRecordID: recordID,
		Member:           member,
		Date:             date,
		Cause:            cause,
		Quantity:         qty,
	}}))
}
