package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the persistence row for an expense report entry.
type Expense struct {
	ID              string          `gorm:"type:uuid;primaryKey"`
	CompanyID       string          `gorm:"column:company_id;type:uuid;not null;index"`
	UserID          string          `gorm:"column:user_id;type:uuid;not null;index"`
	CategoryID      *string         `gorm:"column:category_id;type:uuid"`
	ProjectID       *string         `gorm:"column:project_id;type:uuid"`
	ExpenseDate     time.Time       `gorm:"column:expense_date;type:date;not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency        string          `gorm:"default:MXN"`
	Description     string          `gorm:"type:text;not null"`
	MerchantName    *string         `gorm:"column:merchant_name"`
	PaymentMethod   *string         `gorm:"column:payment_method"`
	InvoiceFolio    *string         `gorm:"column:invoice_folio"`
	RFCVendor       *string         `gorm:"column:rfc_vendor"`
	IsTaxDeductible bool            `gorm:"column:is_tax_deductible;default:false"`
	Status          string          `gorm:"column:status;default:pending;index"`
	ApprovalNotes   *string         `gorm:"column:approval_notes;type:text"`
	ApprovedBy      *string         `gorm:"column:approved_by;type:uuid"`
	ApprovedAt      *time.Time      `gorm:"column:approved_at"`
	RejectedReason  *string         `gorm:"column:rejected_reason;type:text"`
	HasReceipt      bool            `gorm:"column:has_receipt;default:false"`
	Attachments     []Attachment    `gorm:"foreignKey:ExpenseID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

// Attachment is a file record owned by exactly one expense; rows are
// removed with the expense through the FK cascade.
type Attachment struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	ExpenseID string    `gorm:"column:expense_id;type:uuid;not null;index"`
	FileName  string    `gorm:"column:file_name;not null"`
	FilePath  string    `gorm:"column:file_path;not null"`
	FileType  string    `gorm:"column:file_type;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}
