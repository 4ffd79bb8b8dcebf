// Package access holds the permission predicates the HTTP layer composes
// per request. Both are pure functions of (principal, method, target owner)
// with no side effects.
package access

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/domain"
)

// SafeMethod reports whether the HTTP verb is read-only.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// OwnerOrReadOnly grants reads to everyone, creation to any authenticated
// principal, and object mutation only to the record's owner. owner is nil
// when there is no target object yet (creation) or the record has been
// orphaned.
func OwnerOrReadOnly(principal *domain.User, method string, owner *uuid.UUID) bool {
	if SafeMethod(method) {
		return true
	}
	if principal == nil {
		return false
	}
	if owner == nil {
		// Creation, or an orphaned record nobody owns anymore.
		return method == http.MethodPost
	}
	return *owner == principal.ID
}

// OwnerOrAdmin grants object mutation to staff principals or the record's
// owner; no other path.
func OwnerOrAdmin(principal *domain.User, owner *uuid.UUID) bool {
	if principal == nil {
		return false
	}
	if principal.IsStaff {
		return true
	}
	return owner != nil && *owner == principal.ID
}
