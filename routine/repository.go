package routine

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Routines is the persistence surface for care routines.
type Routines interface {
	Create(ctx context.Context, record *Routine, criteria ...repository.InsertCriteria) (*Routine, error)
	Update(ctx context.Context, record *Routine, criteria ...repository.UpdateCriteria) (*Routine, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Routine, error)
	ListAll(ctx context.Context) ([]*Routine, error)
	ListByUser(ctx context.Context, userID string) ([]*Routine, error)
	ListByUserAndStatus(ctx context.Context, userID string, status Status) ([]*Routine, error)
	ListByStatus(ctx context.Context, status Status) ([]*Routine, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error
}

type routines struct {
	repository.Repository[*Routine]
	db *bun.DB
}

var _ Routines = (*routines)(nil)

// NewRepository wires the generic repository with routine model handlers.
func NewRepository(db *bun.DB) Routines {
	repo := repository.NewRepository[*Routine](db, repository.ModelHandlers[*Routine]{
		NewRecord: func() *Routine { return &Routine{} },
		GetID: func(r *Routine) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *Routine, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
	})

	return &routines{
		Repository: repo,
		db:         db,
	}
}

func (r *routines) Create(ctx context.Context, record *Routine, criteria ...repository.InsertCriteria) (*Routine, error) {
	return r.Repository.CreateTx(ctx, r.db, record, criteria...)
}

func (r *routines) Update(ctx context.Context, record *Routine, criteria ...repository.UpdateCriteria) (*Routine, error) {
	return r.Repository.UpdateTx(ctx, r.db, record, criteria...)
}

func (r *routines) GetByID(ctx context.Context, id uuid.UUID) (*Routine, error) {
	record := &Routine{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

func (r *routines) ListAll(ctx context.Context) ([]*Routine, error) {
	return r.list(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q
	})
}

func (r *routines) ListByUser(ctx context.Context, userID string) ([]*Routine, error) {
	return r.list(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.user_id = ?", userID)
	})
}

func (r *routines) ListByUserAndStatus(ctx context.Context, userID string, status Status) ([]*Routine, error) {
	return r.list(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("?TableAlias.user_id = ?", userID).
			Where("?TableAlias.status = ?", status)
	})
}

func (r *routines) ListByStatus(ctx context.Context, status Status) ([]*Routine, error) {
	return r.list(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.status = ?", status)
	})
}

func (r *routines) list(ctx context.Context, apply func(*bun.SelectQuery) *bun.SelectQuery) ([]*Routine, error) {
	var records []*Routine
	q := r.db.NewSelect().Model(&records)

	if err := apply(q).Order("created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

// SoftDelete stamps deleted_by and relies on the soft delete column for the
// actual tombstone.
func (r *routines) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	now := time.Now()
	res, err := r.db.NewUpdate().
		Model((*Routine)(nil)).
		Set("deleted_by = ?", deletedBy).
		Set("deleted_at = ?", &now).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id.String()})
	}

	return nil
}

func isNoRows(err error) bool {
	return repository.IsRecordNotFound(err) || errors.Is(err, sql.ErrNoRows)
}
