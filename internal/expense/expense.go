package expense

import (
	"time"

	"github.com/shopspring/decimal"

	datamodel "github.com/gastora/expense-api/internal/core/datamodel/expense"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether no further transition is allowed from s.
// Every status except pending is terminal.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Expense is the domain representation of a single expense report entry.
type Expense struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	UserID          string          `json:"user_id"`
	CategoryID      *string         `json:"category_id,omitempty"`
	ProjectID       *string         `json:"project_id,omitempty"`
	ExpenseDate     time.Time       `json:"expense_date"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	MerchantName    *string         `json:"merchant_name,omitempty"`
	PaymentMethod   *string         `json:"payment_method,omitempty"`
	InvoiceFolio    *string         `json:"invoice_folio,omitempty"`
	RFCVendor       *string         `json:"rfc_vendor,omitempty"`
	IsTaxDeductible bool            `json:"is_tax_deductible"`
	Status          Status          `json:"status"`
	ApprovalNotes   *string         `json:"approval_notes,omitempty"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	RejectedReason  *string         `json:"rejected_reason,omitempty"`
	HasReceipt      bool            `json:"has_receipt"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Attachment is a file stored against an expense.
type Attachment struct {
	ID        string    `json:"id"`
	ExpenseID string    `json:"expense_id"`
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Approve records the reviewer decision. Callers must have verified the
// pending status beforehand; the repository re-checks it on write.
func (e *Expense) Approve(approverID string, notes *string, now time.Time) {
	e.Status = StatusApproved
	e.ApprovedBy = &approverID
	e.ApprovedAt = &now
	e.ApprovalNotes = notes
	e.UpdatedAt = now
}

func (e *Expense) Reject(approverID string, reason string, now time.Time) {
	e.Status = StatusRejected
	e.ApprovedBy = &approverID
	e.ApprovedAt = &now
	e.RejectedReason = &reason
	e.UpdatedAt = now
}

func (e *Expense) Cancel(now time.Time) {
	e.Status = StatusCancelled
	e.UpdatedAt = now
}

func (e *Expense) ToDataModel() *datamodel.Expense {
	return &datamodel.Expense{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		UserID:          e.UserID,
		CategoryID:      e.CategoryID,
		ProjectID:       e.ProjectID,
		ExpenseDate:     e.ExpenseDate,
		Amount:          e.Amount,
		Currency:        e.Currency,
		Description:     e.Description,
		MerchantName:    e.MerchantName,
		PaymentMethod:   e.PaymentMethod,
		InvoiceFolio:    e.InvoiceFolio,
		RFCVendor:       e.RFCVendor,
		IsTaxDeductible: e.IsTaxDeductible,
		Status:          string(e.Status),
		ApprovalNotes:   e.ApprovalNotes,
		ApprovedBy:      e.ApprovedBy,
		ApprovedAt:      e.ApprovedAt,
		RejectedReason:  e.RejectedReason,
		HasReceipt:      e.HasReceipt,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func FromDataModel(m *datamodel.Expense) *Expense {
	return &Expense{
		ID:              m.ID,
		CompanyID:       m.CompanyID,
		UserID:          m.UserID,
		CategoryID:      m.CategoryID,
		ProjectID:       m.ProjectID,
		ExpenseDate:     m.ExpenseDate,
		Amount:          m.Amount,
		Currency:        m.Currency,
		Description:     m.Description,
		MerchantName:    m.MerchantName,
		PaymentMethod:   m.PaymentMethod,
		InvoiceFolio:    m.InvoiceFolio,
		RFCVendor:       m.RFCVendor,
		IsTaxDeductible: m.IsTaxDeductible,
		Status:          Status(m.Status),
		ApprovalNotes:   m.ApprovalNotes,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectedReason:  m.RejectedReason,
		HasReceipt:      m.HasReceipt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func AttachmentFromDataModel(m *datamodel.Attachment) *Attachment {
	return &Attachment{
		ID:        m.ID,
		ExpenseID: m.ExpenseID,
		FileName:  m.FileName,
		FilePath:  m.FilePath,
		FileType:  m.FileType,
		CreatedAt: m.CreatedAt,
	}
}
