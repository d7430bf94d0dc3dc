package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserRegistered      = "user.registered"
	EventTypeTransactionRecorded = "transaction.recorded"
	EventTypeCategoryDeleted     = "category.deleted"
	EventTypeFamilyReset         = "family.reset"
)

// LedgerEventTypes is every event type the ledger emits.
var LedgerEventTypes = []string{
	EventTypeUserRegistered,
	EventTypeTransactionRecorded,
	EventTypeCategoryDeleted,
	EventTypeFamilyReset,
}

// New stamps an event of the given type with a fresh id and the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type UserRegisteredEvent struct {
	BaseEvent
	UserID   int64 `json:"user_id"`
	FamilyID int64 `json:"family_id"`
}

func NewUserRegisteredEvent(userID, familyID int64) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: New(EventTypeUserRegistered, map[string]interface{}{
			"user_id":   userID,
			"family_id": familyID,
		}),
		UserID:   userID,
		FamilyID: familyID,
	}
}

type TransactionRecordedEvent struct {
	BaseEvent
	TransactionID int64  `json:"transaction_id"`
	FamilyID      int64  `json:"family_id"`
	CategoryID    int64  `json:"category_id"`
	Amount        string `json:"amount"`
}

func NewTransactionRecordedEvent(transactionID, familyID, categoryID int64, amount string) *TransactionRecordedEvent {
	return &TransactionRecordedEvent{
		BaseEvent: New(EventTypeTransactionRecorded, map[string]interface{}{
			"transaction_id": transactionID,
			"family_id":      familyID,
			"category_id":    categoryID,
			"amount":         amount,
		}),
		TransactionID: transactionID,
		FamilyID:      familyID,
		CategoryID:    categoryID,
		Amount:        amount,
	}
}

type CategoryDeletedEvent struct {
	BaseEvent
	FamilyID   int64 `json:"family_id"`
	CategoryID int64 `json:"category_id"`
	Hidden     bool  `json:"hidden"`
}

func NewCategoryDeletedEvent(familyID, categoryID int64, hidden bool) *CategoryDeletedEvent {
	return &CategoryDeletedEvent{
		BaseEvent: New(EventTypeCategoryDeleted, map[string]interface{}{
			"family_id":   familyID,
			"category_id": categoryID,
			"hidden":      hidden,
		}),
		FamilyID:   familyID,
		CategoryID: categoryID,
		Hidden:     hidden,
	}
}

type FamilyResetEvent struct {
	BaseEvent
	FamilyID int64 `json:"family_id"`
}

func NewFamilyResetEvent(familyID int64) *FamilyResetEvent {
	return &FamilyResetEvent{
		BaseEvent: New(EventTypeFamilyReset, map[string]interface{}{
			"family_id": familyID,
		}),
		FamilyID: familyID,
	}
}

// AuditHandler writes every ledger event to the structured log.
func AuditHandler(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "ledger event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}
}
