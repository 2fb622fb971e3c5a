package category

import (
	"context"
	"net/http"

	"github.com/gastora/expense-api/internal/auth"
	"github.com/gastora/expense-api/internal/transport"
)

type ServiceAPI interface {
	GetCompanyCategories(ctx context.Context, companyID string) ([]CategoryResponse, error)
	IsValidCategory(ctx context.Context, id, companyID string) bool
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categories, err := h.Service.GetCompanyCategories(r.Context(), actor.CompanyID)
	if err != nil {
		h.Logger.Error("GetCategories: failed to get categories", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get categories")
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Categories: categories,
	})
}
