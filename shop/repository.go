package shop

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Shops is the persistence surface for shop profiles.
type Shops interface {
	Create(ctx context.Context, record *Shop, criteria ...repository.InsertCriteria) (*Shop, error)
	Update(ctx context.Context, record *Shop, criteria ...repository.UpdateCriteria) (*Shop, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	GetByUser(ctx context.Context, userID string) (*Shop, error)
	ListAll(ctx context.Context) ([]*Shop, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error
}

type shops struct {
	repository.Repository[*Shop]
	db *bun.DB
}

var _ Shops = (*shops)(nil)

// NewRepository wires the generic repository with shop model handlers.
func NewRepository(db *bun.DB) Shops {
	repo := repository.NewRepository[*Shop](db, repository.ModelHandlers[*Shop]{
		NewRecord: func() *Shop { return &Shop{} },
		GetID: func(s *Shop) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Shop, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
	})

	return &shops{
		Repository: repo,
		db:         db,
	}
}

func (r *shops) Create(ctx context.Context, record *Shop, criteria ...repository.InsertCriteria) (*Shop, error) {
	return r.Repository.CreateTx(ctx, r.db, record, criteria...)
}

func (r *shops) Update(ctx context.Context, record *Shop, criteria ...repository.UpdateCriteria) (*Shop, error) {
	return r.Repository.UpdateTx(ctx, r.db, record, criteria...)
}

func (r *shops) GetByID(ctx context.Context, id uuid.UUID) (*Shop, error) {
	record := &Shop{}
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

func (r *shops) GetByUser(ctx context.Context, userID string) (*Shop, error) {
	record := &Shop{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"user_id": userID})
		}
		return nil, err
	}

	return record, nil
}

func (r *shops) ListAll(ctx context.Context) ([]*Shop, error) {
	var records []*Shop
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// SoftDelete stamps deleted_by and tombstones the record.
func (r *shops) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	now := time.Now()
	res, err := r.db.NewUpdate().
		Model((*Shop)(nil)).
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
