// Package shop implements shop profile management: one shop per account,
// with GSTIN and phone number validation on write.
package shop

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Shop is the persisted model. UserID holds the owning account's username.
type Shop struct {
	bun.BaseModel `bun:"table:shops,alias:shp"`

	ID          uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Name        string     `bun:"name,notnull" json:"name"`
	Description string     `bun:"description" json:"description,omitempty"`
	GSTIN       string     `bun:"gstin" json:"gstin,omitempty"`
	PhoneNumber string     `bun:"phone_number" json:"phoneNumber,omitempty"`
	Address     string     `bun:"address" json:"address,omitempty"`
	UserID      string     `bun:"user_id,notnull" json:"userId"`
	CreatedBy   string     `bun:"created_by" json:"createdBy,omitempty"`
	UpdatedBy   string     `bun:"updated_by" json:"updatedBy,omitempty"`
	DeletedBy   string     `bun:"deleted_by" json:"-"`
	CreatedAt   *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
	DeletedAt   *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}
