package category_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gastora/expense-api/internal/category"
	datamodel "github.com/gastora/expense-api/internal/core/datamodel/category"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

type mockCategoryRepository struct {
	categories []*datamodel.ExpenseCategory
	getError   error
}

func (m *mockCategoryRepository) GetActiveByCompany(ctx context.Context, companyID string) ([]*datamodel.ExpenseCategory, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var active []*datamodel.ExpenseCategory
	for _, c := range m.categories {
		if c.CompanyID == companyID && c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id, companyID string) (*datamodel.ExpenseCategory, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, c := range m.categories {
		if c.ID == id && c.CompanyID == companyID {
			return c, nil
		}
	}
	return nil, nil
}

var _ = Describe("CategoryService", func() {
	var (
		service  *category.Service
		mockRepo *mockCategoryRepository
		ctx      context.Context
	)

	const companyID = "11111111-1111-1111-1111-111111111111"

	BeforeEach(func() {
		mockRepo = &mockCategoryRepository{}
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, logger)
	})

	Describe("GetCompanyCategories", func() {
		It("returns only the company's active categories", func() {
			mockRepo.categories = []*datamodel.ExpenseCategory{
				{ID: "cat-1", CompanyID: companyID, Name: "Travel", IsActive: true},
				{ID: "cat-2", CompanyID: companyID, Name: "Office", IsActive: false},
				{ID: "cat-3", CompanyID: "other-company", Name: "Travel", IsActive: true},
			}

			categories, err := service.GetCompanyCategories(ctx, companyID)

			Expect(err).ToNot(HaveOccurred())
			Expect(categories).To(HaveLen(1))
			Expect(categories[0].Name).To(Equal("Travel"))
		})

		It("returns an empty list for an unseeded company", func() {
			categories, err := service.GetCompanyCategories(ctx, companyID)

			Expect(err).ToNot(HaveOccurred())
			Expect(categories).To(BeEmpty())
		})
	})

	Describe("IsValidCategory", func() {
		BeforeEach(func() {
			mockRepo.categories = []*datamodel.ExpenseCategory{
				{ID: "cat-1", CompanyID: companyID, Name: "Travel", IsActive: true},
				{ID: "cat-2", CompanyID: companyID, Name: "Legacy", IsActive: false},
			}
		})

		It("accepts an active category of the company", func() {
			Expect(service.IsValidCategory(ctx, "cat-1", companyID)).To(BeTrue())
		})

		It("rejects an inactive category", func() {
			Expect(service.IsValidCategory(ctx, "cat-2", companyID)).To(BeFalse())
		})

		It("rejects a category from another company", func() {
			Expect(service.IsValidCategory(ctx, "cat-1", "other-company")).To(BeFalse())
		})
	})
})
