package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/gastora/expense-api/internal"
	datamodel "github.com/gastora/expense-api/internal/core/datamodel/expense"
	"github.com/gastora/expense-api/internal/expense"
)

func TestExpenseRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ExpenseRepository Suite")
}

var _ = Describe("ExpenseRepository", func() {
	var (
		db   *gorm.DB
		repo expense.RepositoryAPI
		ctx  context.Context
	)

	const companyID = "11111111-1111-1111-1111-111111111111"
	const otherCompanyID = "22222222-2222-2222-2222-222222222222"
	const userID = "aaaaaaaa-0000-0000-0000-000000000001"

	seedRow := func(id, company, user, status, amount string, date time.Time) {
		row := &datamodel.Expense{
			ID:          id,
			CompanyID:   company,
			UserID:      user,
			ExpenseDate: date,
			Amount:      decimal.RequireFromString(amount),
			Currency:    "MXN",
			Description: "Seeded expense row for repository test",
			Status:      status,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		Expect(db.Create(row).Error).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&datamodel.Expense{}, &datamodel.Attachment{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewExpenseRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).NotTo(HaveOccurred())
	})

	Describe("Create and GetByID", func() {
		It("round-trips an expense within its company", func() {
			e := &expense.Expense{
				ID:          "e0000000-0000-0000-0000-000000000001",
				CompanyID:   companyID,
				UserID:      userID,
				ExpenseDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
				Amount:      decimal.RequireFromString("150.75"),
				Currency:    "MXN",
				Description: "Client lunch at downtown restaurant",
				Status:      expense.StatusPending,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}
			Expect(repo.Create(ctx, e)).NotTo(HaveOccurred())

			got, err := repo.GetByID(ctx, e.ID, companyID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Description).To(Equal(e.Description))
			Expect(got.Amount.Equal(e.Amount)).To(BeTrue())
			Expect(got.Status).To(Equal(expense.StatusPending))
		})

		It("treats another tenant's id as not found", func() {
			seedRow("e0000000-0000-0000-0000-000000000001", companyID, userID, "pending", "100.00", time.Now())

			_, err := repo.GetByID(ctx, "e0000000-0000-0000-0000-000000000001", otherCompanyID)
			Expect(err).To(MatchError(apperrors.ErrExpenseNotFound))
		})
	})

	Describe("List", func() {
		It("paginates a large result set", func() {
			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < 120; i++ {
				seedRow(fmt.Sprintf("e0000000-0000-0000-0000-%012d", i), companyID, userID, "pending", "10.00", base.AddDate(0, 0, i))
			}

			filter := expense.FilterDTO{Page: 3, Limit: 50}
			filter.Normalize()
			rows, total, err := repo.List(ctx, companyID, filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(120)))
			Expect(rows).To(HaveLen(20))
		})

		It("orders by expense date descending with id as tie-break", func() {
			day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
			seedRow("e0000000-0000-0000-0000-000000000001", companyID, userID, "pending", "10.00", day)
			seedRow("e0000000-0000-0000-0000-000000000003", companyID, userID, "pending", "10.00", day)
			seedRow("e0000000-0000-0000-0000-000000000002", companyID, userID, "pending", "10.00", day.AddDate(0, 0, 1))

			filter := expense.FilterDTO{}
			filter.Normalize()
			rows, _, err := repo.List(ctx, companyID, filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0].ID).To(HaveSuffix("2"))
			Expect(rows[1].ID).To(HaveSuffix("3"))
			Expect(rows[2].ID).To(HaveSuffix("1"))
		})

		It("combines status, user and date filters with AND", func() {
			jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
			jun := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
			seedRow("e0000000-0000-0000-0000-000000000001", companyID, userID, "approved", "10.00", jan)
			seedRow("e0000000-0000-0000-0000-000000000002", companyID, userID, "approved", "10.00", jun)
			seedRow("e0000000-0000-0000-0000-000000000003", companyID, userID, "pending", "10.00", jun)
			seedRow("e0000000-0000-0000-0000-000000000004", companyID, "someone-else", "approved", "10.00", jun)

			status := "approved"
			start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
			end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
			uid := userID
			filter := expense.FilterDTO{Status: &status, UserID: &uid, StartDate: &start, EndDate: &end}
			filter.Normalize()

			rows, total, err := repo.List(ctx, companyID, filter)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(rows[0].ID).To(HaveSuffix("2"))
		})

		It("never leaks rows across companies", func() {
			seedRow("e0000000-0000-0000-0000-000000000001", companyID, userID, "pending", "10.00", time.Now())
			seedRow("e0000000-0000-0000-0000-000000000002", otherCompanyID, userID, "pending", "10.00", time.Now())

			filter := expense.FilterDTO{}
			filter.Normalize()
			rows, total, err := repo.List(ctx, companyID, filter)

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(rows[0].CompanyID).To(Equal(companyID))
		})
	})

	Describe("Stats", func() {
		It("aggregates counts and sums by status", func() {
			now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
			seedRow("e0000000-0000-0000-0000-000000000001", companyID, userID, "pending", "100.00", now)
			seedRow("e0000000-0000-0000-0000-000000000002", companyID, userID, "pending", "200.00", now)
			seedRow("e0000000-0000-0000-0000-000000000003", companyID, userID, "pending", "300.00", now)
			seedRow("e0000000-0000-0000-0000-000000000004", companyID, userID, "approved", "50.00", now)
			seedRow("e0000000-0000-0000-0000-000000000005", companyID, userID, "approved", "150.00", now)
			seedRow("e0000000-0000-0000-0000-000000000006", companyID, userID, "rejected", "999.00", now)
			seedRow("e0000000-0000-0000-0000-000000000007", otherCompanyID, userID, "approved", "777.00", now)

			stats, err := repo.Stats(ctx, companyID, expense.StatsDTO{})

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalExpenses).To(Equal(int64(6)))
			Expect(stats.Pending).To(Equal(int64(3)))
			Expect(stats.Approved).To(Equal(int64(2)))
			Expect(stats.Rejected).To(Equal(int64(1)))
			Expect(stats.TotalAmount.Equal(decimal.RequireFromString("1799"))).To(BeTrue())
			Expect(stats.ApprovedAmount.Equal(decimal.RequireFromString("200"))).To(BeTrue())
		})

		It("returns zeros for a company with no expenses", func() {
			stats, err := repo.Stats(ctx, companyID, expense.StatsDTO{})

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalExpenses).To(BeZero())
			Expect(stats.TotalAmount.IsZero()).To(BeTrue())
			Expect(stats.ApprovedAmount.IsZero()).To(BeTrue())
		})

		It("bounds the aggregation to the date window", func() {
			seedRow("e0000000-0000-0000-0000-000000000001", companyID, userID, "approved", "100.00", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
			seedRow("e0000000-0000-0000-0000-000000000002", companyID, userID, "approved", "200.00", time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC))

			start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
			end := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
			stats, err := repo.Stats(ctx, companyID, expense.StatsDTO{StartDate: &start, EndDate: &end})

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalExpenses).To(Equal(int64(1)))
			Expect(stats.ApprovedAmount.Equal(decimal.RequireFromString("200"))).To(BeTrue())
		})
	})

	Describe("UpdateStatusFromPending", func() {
		It("moves a pending expense to approved exactly once", func() {
			seedRow("e0000000-0000-0000-0000-000000000001", companyID, userID, "pending", "100.00", time.Now())

			e, err := repo.GetByID(ctx, "e0000000-0000-0000-0000-000000000001", companyID)
			Expect(err).NotTo(HaveOccurred())

			approver := "admin-1"
			e.Approve(approver, nil, time.Now())
			Expect(repo.UpdateStatusFromPending(ctx, e)).NotTo(HaveOccurred())

			// A concurrent reviewer holding the stale pending snapshot
			// must lose the race.
			stale, _ := repo.GetByID(ctx, e.ID, companyID)
			stale.Status = expense.StatusRejected
			err = repo.UpdateStatusFromPending(ctx, stale)
			Expect(err).To(MatchError(apperrors.ErrExpenseNotPending))

			final, err := repo.GetByID(ctx, e.ID, companyID)
			Expect(err).NotTo(HaveOccurred())
			Expect(final.Status).To(Equal(expense.StatusApproved))
			Expect(final.ApprovedBy).ToNot(BeNil())
			Expect(*final.ApprovedBy).To(Equal(approver))
		})
	})

	Describe("UpdatePending", func() {
		It("refuses to edit a decided expense", func() {
			seedRow("e0000000-0000-0000-0000-000000000001", companyID, userID, "approved", "100.00", time.Now())

			e, err := repo.GetByID(ctx, "e0000000-0000-0000-0000-000000000001", companyID)
			Expect(err).NotTo(HaveOccurred())

			e.Description = "Attempted edit after the approval already landed"
			err = repo.UpdatePending(ctx, e)
			Expect(err).To(MatchError(apperrors.ErrExpenseNotPending))
		})
	})

	Describe("CreateAttachment", func() {
		It("stores the file record and flags the expense", func() {
			seedRow("e0000000-0000-0000-0000-000000000001", companyID, userID, "pending", "100.00", time.Now())

			a := &expense.Attachment{
				ID:        "a0000000-0000-0000-0000-000000000001",
				ExpenseID: "e0000000-0000-0000-0000-000000000001",
				FileName:  "receipt.pdf",
				FilePath:  "/uploads/receipt.pdf",
				FileType:  "application/pdf",
				CreatedAt: time.Now(),
			}
			Expect(repo.CreateAttachment(ctx, a)).NotTo(HaveOccurred())

			attachments, err := repo.GetAttachments(ctx, a.ExpenseID)
			Expect(err).NotTo(HaveOccurred())
			Expect(attachments).To(HaveLen(1))
			Expect(attachments[0].FileName).To(Equal("receipt.pdf"))

			e, err := repo.GetByID(ctx, a.ExpenseID, companyID)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.HasReceipt).To(BeTrue())
		})
	})
})
