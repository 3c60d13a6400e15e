// Package memory almacén en memoria para demo local y tests. Mismo contrato que los repositorios postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// Store guarda registros, detalle de salidas y usuarios.
// Las transacciones (Run) se serializan con txMu y escriben en un buffer propio que solo se
// aplica si fn termina sin error; las escrituras hechas fuera de la tx nunca se deshacen.
type Store struct {
	mu      sync.RWMutex
	txMu    sync.Mutex
	records []*entity.MovementRecord
	details []*entity.ExitDetailEntry
	users   map[string]*entity.User // por email en minúsculas
}

// txBuffer escrituras pendientes de una transacción.
type txBuffer struct {
	records []*entity.MovementRecord
	details []*entity.ExitDetailEntry
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{users: make(map[string]*entity.User)}
}

// MovementRecords repositorio de registros sobre el almacén.
func (s *Store) MovementRecords() repository.MovementRecordRepository { return recordRepo{s: s} }

// ExitDetails repositorio de detalle de salidas sobre el almacén.
func (s *Store) ExitDetails() repository.ExitDetailRepository { return detailRepo{s: s} }

// Users repositorio de usuarios sobre el almacén.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Run ejecuta fn de forma exclusiva respecto a otras transacciones. Los repositorios que recibe
// ven lo confirmado más lo escrito por fn; al terminar sin error se confirma todo junto.
func (s *Store) Run(ctx context.Context, fn func(repository.MovementRecordRepository, repository.ExitDetailRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &txBuffer{}
	if err := fn(recordRepo{s: s, tx: tx}, detailRepo{s: s, tx: tx}); err != nil {
		return err
	}
	return s.commit(tx)
}

func (s *Store) commit(tx *txBuffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range tx.records {
		if hasRecordID(s.records, rec.ID) {
			return domain.ErrConflict
		}
	}
	s.records = append(s.records, tx.records...)
	s.details = append(s.details, tx.details...)
	return nil
}

func hasRecordID(records []*entity.MovementRecord, id string) bool {
	for _, r := range records {
		if r.ID == id {
			return true
		}
	}
	return false
}

// recordRepo con tx nil escribe directo en el almacén; con tx escribe en el buffer.
type recordRepo struct {
	s  *Store
	tx *txBuffer
}

// visible copia de los registros confirmados más los pendientes de la tx.
func (r recordRepo) visible() []*entity.MovementRecord {
	r.s.mu.RLock()
	out := make([]*entity.MovementRecord, 0, len(r.s.records))
	for _, rec := range r.s.records {
		c := *rec
		out = append(out, &c)
	}
	r.s.mu.RUnlock()
	if r.tx != nil {
		for _, rec := range r.tx.records {
			c := *rec
			out = append(out, &c)
		}
	}
	return out
}

func (r recordRepo) Create(ctx context.Context, rec *entity.MovementRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := *rec
	if r.tx != nil {
		if hasRecordID(r.visible(), rec.ID) {
			return domain.ErrConflict
		}
		r.tx.records = append(r.tx.records, &c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if hasRecordID(r.s.records, rec.ID) {
		return domain.ErrConflict
	}
	r.s.records = append(r.s.records, &c)
	return nil
}

func (r recordRepo) GetByID(ctx context.Context, id string) (*entity.MovementRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, rec := range r.visible() {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

// GetByIDForUpdate dentro de Run las transacciones ya son exclusivas entre sí.
func (r recordRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.MovementRecord, error) {
	return r.GetByID(ctx, id)
}

func (r recordRepo) ListAll(ctx context.Context) ([]*entity.MovementRecord, error) {
	return r.list(ctx, "", 0, 0)
}

func (r recordRepo) ListByMember(ctx context.Context, member string, limit, offset int) ([]*entity.MovementRecord, error) {
	return r.list(ctx, member, limit, offset)
}

func (r recordRepo) list(ctx context.Context, member string, limit, offset int) ([]*entity.MovementRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*entity.MovementRecord, 0)
	for _, rec := range r.visible() {
		if member != "" && rec.Member != member {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if offset > 0 {
		if offset >= len(out) {
			return []*entity.MovementRecord{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r recordRepo) ListMembers(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	members := make([]string, 0)
	for _, rec := range r.visible() {
		if _, ok := seen[rec.Member]; ok {
			continue
		}
		seen[rec.Member] = struct{}{}
		members = append(members, rec.Member)
	}
	sort.Strings(members)
	return members, nil
}

type detailRepo struct {
	s  *Store
	tx *txBuffer
}

func (r detailRepo) CreateBatch(ctx context.Context, entries []*entity.ExitDetailEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	copies := make([]*entity.ExitDetailEntry, 0, len(entries))
	for _, e := range entries {
		c := *e
		copies = append(copies, &c)
	}
	if r.tx != nil {
		r.tx.details = append(r.tx.details, copies...)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.details = append(r.s.details, copies...)
	return nil
}

func (r detailRepo) ListByCause(ctx context.Context, cause entity.ExitCause) ([]*entity.ExitDetailEntry, error) {
	return r.filter(ctx, func(e *entity.ExitDetailEntry) bool { return e.Cause == cause })
}

func (r detailRepo) ListAll(ctx context.Context) ([]*entity.ExitDetailEntry, error) {
	return r.filter(ctx, func(*entity.ExitDetailEntry) bool { return true })
}

func (r detailRepo) ListByMovementRecord(ctx context.Context, movementRecordID string) ([]*entity.ExitDetailEntry, error) {
	return r.filter(ctx, func(e *entity.ExitDetailEntry) bool { return e.MovementRecordID == movementRecordID })
}

func (r detailRepo) filter(ctx context.Context, keep func(*entity.ExitDetailEntry) bool) ([]*entity.ExitDetailEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*entity.ExitDetailEntry, 0)
	add := func(list []*entity.ExitDetailEntry) {
		for _, e := range list {
			if keep(e) {
				c := *e
				out = append(out, &c)
			}
		}
	}
	r.s.mu.RLock()
	add(r.s.details)
	r.s.mu.RUnlock()
	if r.tx != nil {
		add(r.tx.details)
	}
	return out, nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, u *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := strings.ToLower(u.Email)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[key]; ok {
		return domain.ErrEmailAlreadyExists
	}
	c := *u
	r.s.users[key] = &c
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}
