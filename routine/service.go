package routine

import (
	"context"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/careloop/backend/auth"
)

// ErrRoutineNotFound is returned for lookups of missing or deleted routines.
var ErrRoutineNotFound = errors.New("Routine not found", errors.CategoryNotFound).
	WithTextCode("ROUTINE_NOT_FOUND")

// Service coordinates routine CRUD, stamping audit fields from the request
// identity.
type Service struct {
	store  Routines
	logger auth.Logger
}

func NewService(store Routines, logger auth.Logger) *Service {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &Service{store: store, logger: logger}
}

// Create persists a new routine owned by the request identity.
func (s *Service) Create(ctx context.Context, record *Routine) (*Routine, error) {
	actor := auth.UsernameFromContext(ctx)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Status == "" {
		record.Status = StatusDraft
	}
	if record.UserID == "" {
		record.UserID = actor
	}
	record.CreatedBy = actor

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to create routine")
	}

	s.logger.Info("routine created", "id", created.ID, "status", created.Status)
	return created, nil
}

// Get returns a routine by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Routine, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return record, nil
}

// ListMine returns the routines owned by the request identity.
func (s *Service) ListMine(ctx context.Context) ([]*Routine, error) {
	return s.store.ListByUser(ctx, auth.UsernameFromContext(ctx))
}

// ListByUser returns the routines owned by the given account.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Routine, error) {
	return s.store.ListByUser(ctx, userID)
}

// ListMineByStatus filters the caller's routines by lifecycle state.
func (s *Service) ListMineByStatus(ctx context.Context, status Status) ([]*Routine, error) {
	if !status.Valid() {
		return nil, invalidStatus(status)
	}
	return s.store.ListByUserAndStatus(ctx, auth.UsernameFromContext(ctx), status)
}

// ListByStatus returns every routine in the given state.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]*Routine, error) {
	if !status.Valid() {
		return nil, invalidStatus(status)
	}
	return s.store.ListByStatus(ctx, status)
}

// List returns all non-deleted routines.
func (s *Service) List(ctx context.Context) ([]*Routine, error) {
	return s.store.ListAll(ctx)
}

// Update applies caller-supplied fields to an existing routine.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch *Routine) (*Routine, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = patch.Name
	existing.Description = patch.Description
	existing.Type = patch.Type
	existing.Frequency = patch.Frequency
	if patch.Status != "" {
		if !patch.Status.Valid() {
			return nil, invalidStatus(patch.Status)
		}
		existing.Status = patch.Status
	}
	existing.UpdatedBy = auth.UsernameFromContext(ctx)

	updated, err := s.store.Update(ctx, existing)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to update routine")
	}

	s.logger.Info("routine updated", "id", updated.ID, "status", updated.Status)
	return updated, nil
}

// UpdateStatus moves a routine to a new lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Routine, error) {
	if !status.Valid() {
		return nil, invalidStatus(status)
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Status = status
	existing.UpdatedBy = auth.UsernameFromContext(ctx)

	updated, err := s.store.Update(ctx, existing)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to update routine status")
	}

	s.logger.Info("routine status updated", "id", updated.ID, "status", updated.Status)
	return updated, nil
}

// Delete soft deletes a routine, recording who removed it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.SoftDelete(ctx, id, auth.UsernameFromContext(ctx))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return ErrRoutineNotFound
		}
		return err
	}

	s.logger.Info("routine deleted", "id", id)
	return nil
}

func invalidStatus(status Status) error {
	return errors.New("Invalid routine status", errors.CategoryValidation).
		WithMetadata(map[string]any{"status": string(status)})
}
