package category

import (
	"context"
	"net/http"

	"github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/transport"
)

type ServiceAPI interface {
	ListVisible(ctx context.Context, familyID int64) ([]*Category, error)
	Get(ctx context.Context, familyID, id int64) (*Category, error)
	Create(ctx context.Context, familyID int64, in Input) (*Category, error)
	Update(ctx context.Context, familyID, id int64, in Input) (*Category, error)
	Delete(ctx context.Context, familyID, id int64) error
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
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrFamilyNotFound)
		return
	}

	categories, err := h.Service.ListVisible(r.Context(), scope.FamilyID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := CategoriesResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, c.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrFamilyNotFound)
		return
	}

	var in Input
	if err := h.DecodeJSON(r, &in); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	cat, err := h.Service.Create(r.Context(), scope.FamilyID, in)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, cat.ToResponse())
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrFamilyNotFound)
		return
	}

	id, ok := h.IDParam(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var in Input
	if err := h.DecodeJSON(r, &in); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	cat, err := h.Service.Update(r.Context(), scope.FamilyID, id, in)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, cat.ToResponse())
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrFamilyNotFound)
		return
	}

	id, ok := h.IDParam(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := h.Service.Delete(r.Context(), scope.FamilyID, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
