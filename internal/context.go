package internal

import "context"

type ctxKey string

const (
	ContextUserKey   ctxKey = "userID"
	ContextFamilyKey ctxKey = "familyScope"
)

// Scope is the tenancy boundary of a request: the caller's family and its main account.
type Scope struct {
	FamilyID  int64
	AccountID int64
}

func UserIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if userID, ok := ctx.Value(ContextUserKey).(int64); ok {
		return userID
	}
	return 0
}

func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}

func ScopeFromContext(ctx context.Context) (Scope, bool) {
	if ctx == nil {
		return Scope{}, false
	}
	scope, ok := ctx.Value(ContextFamilyKey).(Scope)
	return scope, ok
}

func ContextWithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, ContextFamilyKey, scope)
}

