package expense

import (
	"time"

	"github.com/shopspring/decimal"

	errors "github.com/gastora/expense-api/internal"
	"github.com/gastora/expense-api/internal/core/common/validation"
)

const dateLayout = "2006-01-02"

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

type CreateExpenseDTO struct {
	CategoryID      *string         `json:"category_id"`
	ProjectID       *string         `json:"project_id"`
	ExpenseDate     string          `json:"expense_date"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	MerchantName    *string         `json:"merchant_name"`
	PaymentMethod   *string         `json:"payment_method"`
	InvoiceFolio    *string         `json:"invoice_folio"`
	RFCVendor       *string         `json:"rfc_vendor"`
	IsTaxDeductible bool            `json:"is_tax_deductible"`

	date time.Time
}

func (d *CreateExpenseDTO) Validate() *errors.AppError {
	if err := validation.ValidateExpenseAmount(d.Amount); err != nil {
		return err
	}
	if err := validation.ValidateExpenseDescription(d.Description); err != nil {
		return err
	}
	parsed, err := time.Parse(dateLayout, d.ExpenseDate)
	if err != nil {
		return errors.NewValidationFieldError("expense_date", "must be a date formatted YYYY-MM-DD", errors.ErrCodeInvalidDate)
	}
	d.date = parsed
	return nil
}

func (d *CreateExpenseDTO) Date() time.Time { return d.date }

// UpdateExpenseDTO applies a partial edit to a pending expense. Nil
// fields are left untouched; status and ownership are never editable.
type UpdateExpenseDTO struct {
	CategoryID      *string          `json:"category_id"`
	ProjectID       *string          `json:"project_id"`
	ExpenseDate     *string          `json:"expense_date"`
	Amount          *decimal.Decimal `json:"amount"`
	Currency        *string          `json:"currency"`
	Description     *string          `json:"description"`
	MerchantName    *string          `json:"merchant_name"`
	PaymentMethod   *string          `json:"payment_method"`
	InvoiceFolio    *string          `json:"invoice_folio"`
	RFCVendor       *string          `json:"rfc_vendor"`
	IsTaxDeductible *bool            `json:"is_tax_deductible"`

	date *time.Time
}

func (d *UpdateExpenseDTO) Validate() *errors.AppError {
	if d.Amount != nil {
		if err := validation.ValidateExpenseAmount(*d.Amount); err != nil {
			return err
		}
	}
	if d.Description != nil {
		if err := validation.ValidateExpenseDescription(*d.Description); err != nil {
			return err
		}
	}
	if d.ExpenseDate != nil {
		parsed, err := time.Parse(dateLayout, *d.ExpenseDate)
		if err != nil {
			return errors.NewValidationFieldError("expense_date", "must be a date formatted YYYY-MM-DD", errors.ErrCodeInvalidDate)
		}
		d.date = &parsed
	}
	return nil
}

// ApplyTo copies the provided fields onto e.
func (d *UpdateExpenseDTO) ApplyTo(e *Expense) {
	if d.CategoryID != nil {
		e.CategoryID = d.CategoryID
	}
	if d.ProjectID != nil {
		e.ProjectID = d.ProjectID
	}
	if d.date != nil {
		e.ExpenseDate = *d.date
	}
	if d.Amount != nil {
		e.Amount = *d.Amount
	}
	if d.Currency != nil {
		e.Currency = *d.Currency
	}
	if d.Description != nil {
		e.Description = *d.Description
	}
	if d.MerchantName != nil {
		e.MerchantName = d.MerchantName
	}
	if d.PaymentMethod != nil {
		e.PaymentMethod = d.PaymentMethod
	}
	if d.InvoiceFolio != nil {
		e.InvoiceFolio = d.InvoiceFolio
	}
	if d.RFCVendor != nil {
		e.RFCVendor = d.RFCVendor
	}
	if d.IsTaxDeductible != nil {
		e.IsTaxDeductible = *d.IsTaxDeductible
	}
}

type ApproveExpenseDTO struct {
	Comments *string `json:"comments"`
}

type RejectExpenseDTO struct {
	Reason string `json:"reason"`
}

func (d *RejectExpenseDTO) Validate() *errors.AppError {
	return validation.ValidateRejectReason(d.Reason)
}

// FilterDTO carries the list query. All present filters are combined
// with AND; the date range applies only when both bounds are set.
type FilterDTO struct {
	Status     *string
	CategoryID *string
	ProjectID  *string
	UserID     *string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

// Normalize clamps pagination to sane bounds and drops a half-open
// date range.
func (f *FilterDTO) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.StartDate == nil || f.EndDate == nil {
		f.StartDate = nil
		f.EndDate = nil
	}
}

func (f *FilterDTO) Offset() int {
	return (f.Page - 1) * f.Limit
}

type ListMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type ListResult struct {
	Data []*Expense `json:"data"`
	Meta ListMeta   `json:"meta"`
}

func NewListMeta(total int64, page, limit int) ListMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return ListMeta{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// StatsDTO bounds the aggregation window; both dates must be present
// for the range to apply.
type StatsDTO struct {
	StartDate *time.Time
	EndDate   *time.Time
}

type Stats struct {
	TotalExpenses  int64           `json:"totalExpenses"`
	Pending        int64           `json:"pending"`
	Approved       int64           `json:"approved"`
	Rejected       int64           `json:"rejected"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
}
