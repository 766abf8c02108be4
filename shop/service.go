package shop

import (
	"context"
	"regexp"
	"strings"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/careloop/backend/auth"
)

// ErrShopNotFound is returned for lookups of missing or deleted shops.
var ErrShopNotFound = errors.New("Shop not found", errors.CategoryNotFound).
	WithTextCode("SHOP_NOT_FOUND")

// Indian GST identification number: state code, PAN, entity code, checksum.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// DefaultPhoneRegion is assumed for phone numbers given without a country
// prefix.
const DefaultPhoneRegion = "IN"

// Service coordinates shop CRUD with field validation and audit stamps.
type Service struct {
	store  Shops
	logger auth.Logger
}

func NewService(store Shops, logger auth.Logger) *Service {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &Service{store: store, logger: logger}
}

// Create persists a new shop owned by the request identity.
func (s *Service) Create(ctx context.Context, record *Shop) (*Shop, error) {
	if err := validateFields(record); err != nil {
		return nil, err
	}

	actor := auth.UsernameFromContext(ctx)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.UserID == "" {
		record.UserID = actor
	}
	record.CreatedBy = actor

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to create shop")
	}

	s.logger.Info("shop created", "id", created.ID, "name", created.Name)
	return created, nil
}

// List returns all non-deleted shops.
func (s *Service) List(ctx context.Context) ([]*Shop, error) {
	return s.store.ListAll(ctx)
}

// GetByUser returns the shop owned by the given account.
func (s *Service) GetByUser(ctx context.Context, userID string) (*Shop, error) {
	record, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return record, nil
}

// Update applies caller-supplied fields to an existing shop.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch *Shop) (*Shop, error) {
	if err := validateFields(patch); err != nil {
		return nil, err
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	existing.Name = patch.Name
	existing.Description = patch.Description
	existing.GSTIN = patch.GSTIN
	existing.PhoneNumber = patch.PhoneNumber
	existing.Address = patch.Address
	existing.UpdatedBy = auth.UsernameFromContext(ctx)

	updated, err := s.store.Update(ctx, existing)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to update shop")
	}

	s.logger.Info("shop updated", "id", updated.ID)
	return updated, nil
}

// Delete soft deletes a shop, recording who removed it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.SoftDelete(ctx, id, auth.UsernameFromContext(ctx))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return ErrShopNotFound
		}
		return err
	}

	s.logger.Info("shop deleted", "id", id)
	return nil
}

func validateFields(record *Shop) error {
	if strings.TrimSpace(record.Name) == "" {
		return errors.New("Shop name is required", errors.CategoryValidation)
	}

	if record.GSTIN != "" && !gstinPattern.MatchString(record.GSTIN) {
		return errors.New("Invalid GSTIN format", errors.CategoryValidation).
			WithMetadata(map[string]any{"gstin": record.GSTIN})
	}

	if record.PhoneNumber != "" {
		parsed, err := phonenumbers.Parse(record.PhoneNumber, DefaultPhoneRegion)
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			return errors.New("Invalid phone number", errors.CategoryValidation).
				WithMetadata(map[string]any{"phoneNumber": record.PhoneNumber})
		}
		record.PhoneNumber = phonenumbers.Format(parsed, phonenumbers.E164)
	}

	return nil
}
