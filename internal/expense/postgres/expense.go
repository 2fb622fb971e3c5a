package postgres

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	errors "github.com/gastora/expense-api/internal"
	datamodel "github.com/gastora/expense-api/internal/core/datamodel/expense"
	"github.com/gastora/expense-api/internal/expense"
)

// ExpenseRepository implements expense.RepositoryAPI using GORM. Every
// read is filtered by company_id, so an id from another tenant resolves
// to a not found error.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	return r.db.WithContext(ctx).Create(e.ToDataModel()).Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id, companyID string) (*expense.Expense, error) {
	var row datamodel.Expense
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense.FromDataModel(&row), nil
}

func (r *ExpenseRepository) List(ctx context.Context, companyID string, filter expense.FilterDTO) ([]*expense.Expense, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&datamodel.Expense{}).
		Where("company_id = ?", companyID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("expense_date BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []datamodel.Expense
	err := query.
		Order("expense_date DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	expenses := make([]*expense.Expense, 0, len(rows))
	for i := range rows {
		expenses = append(expenses, expense.FromDataModel(&rows[i]))
	}
	return expenses, total, nil
}

func (r *ExpenseRepository) GetPending(ctx context.Context, companyID string) ([]*expense.Expense, error) {
	var rows []datamodel.Expense
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ?", companyID, string(expense.StatusPending)).
		Order("expense_date DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	expenses := make([]*expense.Expense, 0, len(rows))
	for i := range rows {
		expenses = append(expenses, expense.FromDataModel(&rows[i]))
	}
	return expenses, nil
}

type statusAggregate struct {
	Status string
	Count  int64
	Sum    decimal.Decimal
}

func (r *ExpenseRepository) Stats(ctx context.Context, companyID string, window expense.StatsDTO) (*expense.Stats, error) {
	query := r.db.WithContext(ctx).
		Model(&datamodel.Expense{}).
		Where("company_id = ?", companyID)
	if window.StartDate != nil && window.EndDate != nil {
		query = query.Where("expense_date BETWEEN ? AND ?", *window.StartDate, *window.EndDate)
	}

	var aggregates []statusAggregate
	err := query.
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS sum").
		Group("status").
		Scan(&aggregates).Error
	if err != nil {
		return nil, err
	}

	stats := &expense.Stats{
		TotalAmount:    decimal.Zero,
		ApprovedAmount: decimal.Zero,
	}
	for _, agg := range aggregates {
		stats.TotalExpenses += agg.Count
		stats.TotalAmount = stats.TotalAmount.Add(agg.Sum)

		switch expense.Status(agg.Status) {
		case expense.StatusPending:
			stats.Pending = agg.Count
		case expense.StatusApproved:
			stats.Approved = agg.Count
			stats.ApprovedAmount = agg.Sum
		case expense.StatusRejected:
			stats.Rejected = agg.Count
		}
	}
	return stats, nil
}

// UpdatePending rewrites the editable columns of a pending expense. The
// status predicate makes the write a no-op when a reviewer decided the
// expense between read and write.
func (r *ExpenseRepository) UpdatePending(ctx context.Context, e *expense.Expense) error {
	result := r.db.WithContext(ctx).
		Model(&datamodel.Expense{}).
		Where("id = ? AND company_id = ? AND status = ?", e.ID, e.CompanyID, string(expense.StatusPending)).
		Updates(map[string]interface{}{
			"category_id":       e.CategoryID,
			"project_id":        e.ProjectID,
			"expense_date":      e.ExpenseDate,
			"amount":            e.Amount,
			"currency":          e.Currency,
			"description":       e.Description,
			"merchant_name":     e.MerchantName,
			"payment_method":    e.PaymentMethod,
			"invoice_folio":     e.InvoiceFolio,
			"rfc_vendor":        e.RFCVendor,
			"is_tax_deductible": e.IsTaxDeductible,
			"updated_at":        e.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrExpenseNotPending
	}
	return nil
}

// UpdateStatusFromPending performs the pending to terminal transition.
// Concurrent reviewers race on the status predicate; the loser affects
// zero rows and gets ErrExpenseNotPending.
func (r *ExpenseRepository) UpdateStatusFromPending(ctx context.Context, e *expense.Expense) error {
	result := r.db.WithContext(ctx).
		Model(&datamodel.Expense{}).
		Where("id = ? AND company_id = ? AND status = ?", e.ID, e.CompanyID, string(expense.StatusPending)).
		Updates(map[string]interface{}{
			"status":          string(e.Status),
			"approval_notes":  e.ApprovalNotes,
			"approved_by":     e.ApprovedBy,
			"approved_at":     e.ApprovedAt,
			"rejected_reason": e.RejectedReason,
			"updated_at":      e.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrExpenseNotPending
	}
	return nil
}

func (r *ExpenseRepository) CreateAttachment(ctx context.Context, a *expense.Attachment) error {
	row := datamodel.Attachment{
		ID:        a.ID,
		ExpenseID: a.ExpenseID,
		FileName:  a.FileName,
		FilePath:  a.FilePath,
		FileType:  a.FileType,
		CreatedAt: a.CreatedAt,
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Model(&datamodel.Expense{}).
			Where("id = ?", a.ExpenseID).
			Update("has_receipt", true).Error
	})
}

func (r *ExpenseRepository) GetAttachments(ctx context.Context, expenseID string) ([]*expense.Attachment, error) {
	var rows []datamodel.Attachment
	err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	attachments := make([]*expense.Attachment, 0, len(rows))
	for i := range rows {
		attachments = append(attachments, expense.AttachmentFromDataModel(&rows[i]))
	}
	return attachments, nil
}
