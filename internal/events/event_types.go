package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
	EventDocumentCreated   EventType = "document_created"
	EventDocumentUpdated   EventType = "document_updated"
	EventDocumentDeleted   EventType = "document_deleted"
)

// AllEventTypes lists every event type published by the service.
var AllEventTypes = []EventType{
	EventAccountRegistered,
	EventLoginSucceeded,
	EventLoginFailed,
	EventDocumentCreated,
	EventDocumentUpdated,
	EventDocumentDeleted,
}

// Event represents a domain event emitted by services.
// Payloads never carry passwords, hashes or tokens.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Actor      string    `json:"actor,omitempty"`
	Collection string    `json:"collection,omitempty"`
	DocumentID string    `json:"document_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
