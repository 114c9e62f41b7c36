package entity

import (
	"time"

	"github.com/google/uuid"

	coreEntity "rite-api/core/entity"
)

// User is the internal identity record. Rows are created on first sight of a
// verified external identity and never deleted by this service.
type User struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Email       string     `db:"email" json:"email"`
	DisplayName *string    `db:"display_name" json:"display_name,omitempty"`
	LastLoginAt *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	coreEntity.BaseEntity
}

// ExternalIdentity is what the identity provider vouched for. Email is the
// resolution key.
type ExternalIdentity struct {
	Email string
	Name  string
}
