package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/core/common/period"
	"github.com/frahmantamala/family-ledger/internal/transport"
)

type ServiceAPI interface {
	Append(ctx context.Context, scope internal.Scope, userID int64, in AppendInput) (*Transaction, error)
	Query(ctx context.Context, scope internal.Scope, f Filter) ([]*View, period.Period, error)
	ResetFamily(ctx context.Context, familyID int64) error
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

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrFamilyNotFound)
		return
	}

	q := r.URL.Query()
	views, window, err := h.Service.Query(r.Context(), scope, Filter{
		From:       q.Get("from"),
		To:         q.Get("to"),
		CategoryID: q.Get("category_id"),
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := TransactionsResponse{
		From:         window.From.Format(time.DateOnly),
		To:           window.To.Format(time.DateOnly),
		Transactions: make([]TransactionResponse, 0, len(views)),
	}
	for _, v := range views {
		resp.Transactions = append(resp.Transactions, v.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrFamilyNotFound)
		return
	}
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in AppendInput
	if err := h.DecodeJSON(r, &in); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	t, err := h.Service.Append(r.Context(), scope, userID, in)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, t.ToResponse())
}

// ResetFamily is destructive: it clears the family's ledger and private catalog.
func (h *Handler) ResetFamily(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrFamilyNotFound)
		return
	}

	if err := h.Service.ResetFamily(r.Context(), scope.FamilyID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
