package contract

import (
	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

// Owned is any record that carries an owning-user reference.
type Owned interface {
	SetOwner(id uuid.UUID)
}

// StampOwner sets the owner of a record about to be created to the
// authenticated principal, overriding anything the client submitted.
// Applied uniformly wherever a principal-owned entity is created.
func StampOwner(principal *domain.User, record Owned) {
	if principal == nil || record == nil {
		return
	}
	record.SetOwner(principal.ID)
}
