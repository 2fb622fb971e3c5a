package auth

import (
	errors "github.com/gastora/expense-api/internal"
)

// Operation names an expense action for authorization purposes.
type Operation string

const (
	OpView    Operation = "view"
	OpEdit    Operation = "edit"
	OpCancel  Operation = "cancel"
	OpApprove Operation = "approve"
	OpReject  Operation = "reject"
)

// Authorize is the single capability check applied before every expense
// operation. Tenant isolation is not judged here: lookups are already
// company-scoped, so a cross-tenant id never reaches this function.
//
// Rules:
//   - view: owner or admin
//   - edit, cancel: owner only, regardless of role
//   - approve, reject: admin only
func Authorize(op Operation, actor *User, ownerID string) error {
	if actor == nil {
		return errors.ErrExpenseForbidden
	}

	switch op {
	case OpView:
		if actor.IsAdmin() || actor.ID == ownerID {
			return nil
		}
	case OpEdit, OpCancel:
		if actor.ID == ownerID {
			return nil
		}
	case OpApprove, OpReject:
		if actor.IsAdmin() {
			return nil
		}
	}

	return errors.ErrExpenseForbidden
}
