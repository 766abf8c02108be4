// Package routine implements care routine management: owner-scoped CRUD with
// soft deletes, audit stamps, and a small status lifecycle.
package routine

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Type labels what a routine cares for.
type Type string

const (
	TypeSkin Type = "SKIN"
	TypeHair Type = "HAIR"
	TypeFace Type = "FACE"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSkin, TypeHair, TypeFace:
		return true
	}
	return false
}

// Frequency is how often a routine is performed.
type Frequency string

const (
	OnceADay   Frequency = "ONCE_A_DAY"
	TwiceADay  Frequency = "TWICE_A_DAY"
	ThriceADay Frequency = "THRICE_A_DAY"
	OnceAWeek  Frequency = "ONCE_A_WEEK"
	BiWeekly   Frequency = "BI_WEEKLY"
	OnceAMonth Frequency = "ONCE_A_MONTH"
)

func (f Frequency) Valid() bool {
	switch f {
	case OnceADay, TwiceADay, ThriceADay, OnceAWeek, BiWeekly, OnceAMonth:
		return true
	}
	return false
}

// Status is the routine lifecycle state. New routines start as StatusDraft
// unless the caller says otherwise.
type Status string

const (
	StatusDraft        Status = "DRAFT"
	StatusActive       Status = "ACTIVE"
	StatusPaused       Status = "PAUSED"
	StatusDiscontinued Status = "DISCONTINUED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusDiscontinued:
		return true
	}
	return false
}

// Routine is the persisted model. UserID holds the owning account's
// username; audit columns record who touched the record last.
type Routine struct {
	bun.BaseModel `bun:"table:routines,alias:rtn"`

	ID          uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Name        string     `bun:"name,notnull" json:"name"`
	Description string     `bun:"description" json:"description,omitempty"`
	Type        Type       `bun:"routine_type,notnull" json:"routineType"`
	Frequency   Frequency  `bun:"frequency" json:"routineFrequency,omitempty"`
	Status      Status     `bun:"status,notnull" json:"routineStatus"`
	UserID      string     `bun:"user_id,notnull" json:"userId"`
	CreatedBy   string     `bun:"created_by" json:"createdBy,omitempty"`
	UpdatedBy   string     `bun:"updated_by" json:"updatedBy,omitempty"`
	DeletedBy   string     `bun:"deleted_by" json:"-"`
	CreatedAt   *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
	DeletedAt   *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}
