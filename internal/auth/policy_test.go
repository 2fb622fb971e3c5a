package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/gastora/expense-api/internal"
	"github.com/gastora/expense-api/internal/auth"
)

var _ = Describe("Authorize", func() {
	var owner, coworker, admin, superAdmin *auth.User

	const ownerID = "user-1"

	BeforeEach(func() {
		owner = &auth.User{ID: ownerID, Role: auth.RoleEmployee}
		coworker = &auth.User{ID: "user-2", Role: auth.RoleEmployee}
		admin = &auth.User{ID: "admin-1", Role: auth.RoleAdmin}
		superAdmin = &auth.User{ID: "admin-2", Role: auth.RoleSuperAdmin}
	})

	Describe("view", func() {
		It("allows the owner", func() {
			Expect(auth.Authorize(auth.OpView, owner, ownerID)).To(Succeed())
		})

		It("allows admins and super admins", func() {
			Expect(auth.Authorize(auth.OpView, admin, ownerID)).To(Succeed())
			Expect(auth.Authorize(auth.OpView, superAdmin, ownerID)).To(Succeed())
		})

		It("denies an unrelated employee", func() {
			Expect(auth.Authorize(auth.OpView, coworker, ownerID)).To(MatchError(apperrors.ErrExpenseForbidden))
		})
	})

	Describe("edit and cancel", func() {
		It("allows only the owner", func() {
			Expect(auth.Authorize(auth.OpEdit, owner, ownerID)).To(Succeed())
			Expect(auth.Authorize(auth.OpCancel, owner, ownerID)).To(Succeed())
		})

		It("denies admins on someone else's expense", func() {
			Expect(auth.Authorize(auth.OpEdit, admin, ownerID)).To(MatchError(apperrors.ErrExpenseForbidden))
			Expect(auth.Authorize(auth.OpCancel, superAdmin, ownerID)).To(MatchError(apperrors.ErrExpenseForbidden))
		})
	})

	Describe("approve and reject", func() {
		It("allows admins and super admins", func() {
			Expect(auth.Authorize(auth.OpApprove, admin, ownerID)).To(Succeed())
			Expect(auth.Authorize(auth.OpReject, superAdmin, ownerID)).To(Succeed())
		})

		It("denies the owner approving their own expense", func() {
			Expect(auth.Authorize(auth.OpApprove, owner, ownerID)).To(MatchError(apperrors.ErrExpenseForbidden))
		})

		It("denies any employee", func() {
			Expect(auth.Authorize(auth.OpReject, coworker, ownerID)).To(MatchError(apperrors.ErrExpenseForbidden))
		})
	})

	It("denies a nil actor outright", func() {
		Expect(auth.Authorize(auth.OpView, nil, ownerID)).To(MatchError(apperrors.ErrExpenseForbidden))
	})

	It("denies an unknown operation", func() {
		Expect(auth.Authorize(auth.Operation("transfer"), admin, ownerID)).To(MatchError(apperrors.ErrExpenseForbidden))
	})
})
