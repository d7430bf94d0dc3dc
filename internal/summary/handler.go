package summary

import (
	"context"
	"net/http"

	"github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/transport"
)

type ServiceAPI interface {
	Summarize(ctx context.Context, scope internal.Scope, from, to string) (*Summary, error)
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

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrFamilyNotFound)
		return
	}

	q := r.URL.Query()
	s, err := h.Service.Summarize(r.Context(), scope, q.Get("from"), q.Get("to"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s.ToResponse())
}
