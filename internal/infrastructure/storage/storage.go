// Package storage elige el almacén según STORE_DRIVER y expone sus repositorios.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ganaderia-api/internal/application/livestock"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ganaderia-api/pkg/config"
	"github.com/jhoicas/Ganaderia-api/pkg/logger"
)

// Repos repositorios y runner de transacciones de un almacén abierto.
type Repos struct {
	Records repository.MovementRecordRepository
	Details repository.ExitDetailRepository
	Users   repository.UserRepository
	Tx      livestock.TxRunner
	close   func()
}

// Close libera el pool si lo hay.
func (r *Repos) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open abre el almacén configurado.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repos, error) {
	log = logger.OrNop(log)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &Repos{Records: s.MovementRecords(), Details: s.ExitDetails(), Users: s.Users(), Tx: s}, nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		log.Info().Msg("conectado a PostgreSQL")
		return &Repos{
			Records: postgres.NewMovementRecordRepository(pool),
			Details: postgres.NewExitDetailRepository(pool),
			Users:   postgres.NewUserRepository(pool),
			Tx:      postgres.NewTxRunner(pool),
			close:   pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
	}
}
