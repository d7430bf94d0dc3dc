package family

import (
	"context"
	"net/http"

	"github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/transport"
	"github.com/frahmantamala/family-ledger/pkg/logger"
)

type ServiceAPI interface {
	ResolveScope(ctx context.Context, userID int64) (internal.Scope, error)
	Overview(ctx context.Context, scope internal.Scope) (*Overview, error)
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

// ScopeMiddleware resolves the caller's family and main account. It must run
// after authentication.
func (h *Handler) ScopeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := internal.UserIDFromContext(r.Context())
		if userID == 0 {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		scope, err := h.Service.ResolveScope(r.Context(), userID)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithScope(r.Context(), scope)
		ctx = logger.With(ctx, "family_id", scope.FamilyID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) GetFamily(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrFamilyNotFound)
		return
	}

	o, err := h.Service.Overview(r.Context(), scope)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, o)
}
