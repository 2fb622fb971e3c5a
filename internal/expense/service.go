package expense

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/gastora/expense-api/internal"
	"github.com/gastora/expense-api/internal/auth"
	"github.com/gastora/expense-api/internal/core/common/validation"
)

// RepositoryAPI defines the data access methods for expenses. All
// lookups are scoped by company so a cross-tenant id behaves like a
// missing row.
type RepositoryAPI interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id, companyID string) (*Expense, error)
	List(ctx context.Context, companyID string, filter FilterDTO) ([]*Expense, int64, error)
	GetPending(ctx context.Context, companyID string) ([]*Expense, error)
	Stats(ctx context.Context, companyID string, window StatsDTO) (*Stats, error)

	// UpdatePending and UpdateStatusFromPending write conditionally on
	// status still being pending and return ErrExpenseNotPending when
	// another writer got there first.
	UpdatePending(ctx context.Context, e *Expense) error
	UpdateStatusFromPending(ctx context.Context, e *Expense) error

	CreateAttachment(ctx context.Context, a *Attachment) error
	GetAttachments(ctx context.Context, expenseID string) ([]*Attachment, error)
}

// FileStore persists uploaded receipt files.
type FileStore interface {
	Save(ctx context.Context, fileName string, content io.Reader) (path string, err error)
}

type Service struct {
	repo   RepositoryAPI
	files  FileStore
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, files FileStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		logger: logger,
		now:    time.Now,
	}
}

// CreateExpense records a new expense in pending status for the actor.
func (s *Service) CreateExpense(ctx context.Context, dto *CreateExpenseDTO, actor *auth.User) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err, "user_id", actor.ID)
		return nil, err
	}

	currency := dto.Currency
	if currency == "" {
		currency = "MXN"
	}

	now := s.now()
	e := &Expense{
		ID:              uuid.NewString(),
		CompanyID:       actor.CompanyID,
		UserID:          actor.ID,
		CategoryID:      dto.CategoryID,
		ProjectID:       dto.ProjectID,
		ExpenseDate:     dto.Date(),
		Amount:          dto.Amount,
		Currency:        currency,
		Description:     dto.Description,
		MerchantName:    dto.MerchantName,
		PaymentMethod:   dto.PaymentMethod,
		InvoiceFolio:    dto.InvoiceFolio,
		RFCVendor:       dto.RFCVendor,
		IsTaxDeductible: dto.IsTaxDeductible,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", actor.ID)
		return nil, err
	}

	s.logger.Info("expense created",
		"expense_id", e.ID,
		"user_id", actor.ID,
		"amount", e.Amount.String())

	return e, nil
}

// ListExpenses returns a page of company expenses. Non-admin actors
// only ever see their own rows regardless of the requested filters.
func (s *Service) ListExpenses(ctx context.Context, filter FilterDTO, actor *auth.User) (*ListResult, error) {
	filter.Normalize()

	if !actor.IsAdmin() {
		filter.UserID = &actor.ID
	}

	expenses, total, err := s.repo.List(ctx, actor.CompanyID, filter)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "company_id", actor.CompanyID)
		return nil, err
	}

	return &ListResult{
		Data: expenses,
		Meta: NewListMeta(total, filter.Page, filter.Limit),
	}, nil
}

// GetExpense fetches a single expense with ownership checks.
func (s *Service) GetExpense(ctx context.Context, id string, actor *auth.User) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(auth.OpView, actor, e.UserID); err != nil {
		s.logger.Warn("expense view denied", "expense_id", id, "user_id", actor.ID)
		return nil, err
	}

	return e, nil
}

// UpdateExpense applies a partial edit. Only the owner may edit and
// only while the expense is still pending.
func (s *Service) UpdateExpense(ctx context.Context, id string, dto *UpdateExpenseDTO, actor *auth.User) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(auth.OpEdit, actor, e.UserID); err != nil {
		s.logger.Warn("expense edit denied", "expense_id", id, "user_id", actor.ID)
		return nil, err
	}

	if e.Status != StatusPending {
		s.logger.Warn("cannot edit expense in current status", "expense_id", id, "status", e.Status)
		return nil, errors.ErrExpenseNotPending
	}

	dto.ApplyTo(e)
	e.UpdatedAt = s.now()

	if err := s.repo.UpdatePending(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("expense updated", "expense_id", id, "user_id", actor.ID)
	return e, nil
}

// CancelExpense moves an owner's pending expense to cancelled.
func (s *Service) CancelExpense(ctx context.Context, id string, actor *auth.User) error {
	e, err := s.repo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return err
	}

	if err := auth.Authorize(auth.OpCancel, actor, e.UserID); err != nil {
		s.logger.Warn("expense cancel denied", "expense_id", id, "user_id", actor.ID)
		return err
	}

	if e.Status != StatusPending {
		s.logger.Warn("cannot cancel expense in current status", "expense_id", id, "status", e.Status)
		return errors.ErrExpenseNotPending
	}

	e.Cancel(s.now())
	if err := s.repo.UpdateStatusFromPending(ctx, e); err != nil {
		return err
	}

	s.logger.Info("expense cancelled", "expense_id", id, "user_id", actor.ID)
	return nil
}

// ApproveExpense records an admin approval on a pending expense.
func (s *Service) ApproveExpense(ctx context.Context, id string, dto *ApproveExpenseDTO, actor *auth.User) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(auth.OpApprove, actor, e.UserID); err != nil {
		s.logger.Warn("expense approve denied", "expense_id", id, "user_id", actor.ID)
		return nil, err
	}

	if e.Status != StatusPending {
		s.logger.Warn("cannot approve expense in current status", "expense_id", id, "status", e.Status)
		return nil, errors.ErrExpenseNotPending
	}

	e.Approve(actor.ID, dto.Comments, s.now())
	if err := s.repo.UpdateStatusFromPending(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("expense approved",
		"expense_id", id,
		"approver_id", actor.ID,
		"amount", e.Amount.String())

	return e, nil
}

// RejectExpense records an admin rejection with a mandatory reason.
func (s *Service) RejectExpense(ctx context.Context, id string, dto *RejectExpenseDTO, actor *auth.User) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(auth.OpReject, actor, e.UserID); err != nil {
		s.logger.Warn("expense reject denied", "expense_id", id, "user_id", actor.ID)
		return nil, err
	}

	if e.Status != StatusPending {
		s.logger.Warn("cannot reject expense in current status", "expense_id", id, "status", e.Status)
		return nil, errors.ErrExpenseNotPending
	}

	e.Reject(actor.ID, dto.Reason, s.now())
	if err := s.repo.UpdateStatusFromPending(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("expense rejected",
		"expense_id", id,
		"approver_id", actor.ID,
		"reason", dto.Reason)

	return e, nil
}

// GetPendingExpenses returns the company review queue, newest first.
func (s *Service) GetPendingExpenses(ctx context.Context, actor *auth.User) ([]*Expense, error) {
	if !actor.IsAdmin() {
		return nil, errors.ErrExpenseForbidden
	}

	expenses, err := s.repo.GetPending(ctx, actor.CompanyID)
	if err != nil {
		s.logger.Error("failed to get pending expenses", "error", err, "company_id", actor.CompanyID)
		return nil, err
	}

	return expenses, nil
}

// GetStats aggregates company expense counts and amounts, optionally
// bounded to a date window.
func (s *Service) GetStats(ctx context.Context, window StatsDTO, actor *auth.User) (*Stats, error) {
	if !actor.IsAdmin() {
		return nil, errors.ErrExpenseForbidden
	}

	if window.StartDate == nil || window.EndDate == nil {
		window.StartDate = nil
		window.EndDate = nil
	}

	stats, err := s.repo.Stats(ctx, actor.CompanyID, window)
	if err != nil {
		s.logger.Error("failed to aggregate expense stats", "error", err, "company_id", actor.CompanyID)
		return nil, err
	}

	return stats, nil
}

// UploadAttachment validates and stores a receipt file for an expense
// the actor may view, then records it against the expense.
func (s *Service) UploadAttachment(ctx context.Context, expenseID, fileName, mimeType string, size int64, content io.Reader, actor *auth.User) (*Attachment, error) {
	e, err := s.repo.GetByID(ctx, expenseID, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(auth.OpView, actor, e.UserID); err != nil {
		return nil, err
	}

	if err := validation.ValidateUploadedFile(fileName, mimeType, size); err != nil {
		s.logger.Warn("attachment rejected", "expense_id", expenseID, "file_name", fileName, "error", err)
		return nil, err
	}

	storedName := validation.SafeFileName(fileName)
	path, err := s.files.Save(ctx, storedName, content)
	if err != nil {
		s.logger.Error("failed to store attachment", "error", err, "expense_id", expenseID)
		return nil, err
	}

	a := &Attachment{
		ID:        uuid.NewString(),
		ExpenseID: e.ID,
		FileName:  fileName,
		FilePath:  path,
		FileType:  mimeType,
		CreatedAt: s.now(),
	}

	if err := s.repo.CreateAttachment(ctx, a); err != nil {
		s.logger.Error("failed to record attachment", "error", err, "expense_id", expenseID)
		return nil, err
	}

	s.logger.Info("attachment uploaded", "expense_id", expenseID, "attachment_id", a.ID)
	return a, nil
}

// GetAttachments lists files stored against an expense the actor may view.
func (s *Service) GetAttachments(ctx context.Context, expenseID string, actor *auth.User) ([]*Attachment, error) {
	e, err := s.repo.GetByID(ctx, expenseID, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(auth.OpView, actor, e.UserID); err != nil {
		return nil, err
	}

	return s.repo.GetAttachments(ctx, e.ID)
}
