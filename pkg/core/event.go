package core

import "fmt"

// EventType represents the type of change in the store.
type EventType string

const (
	EventCreate     EventType = "CREATE"
	EventModify     EventType = "MODIFY"
	EventDelete     EventType = "DELETE"
	EventSaved      EventType = "SAVED"
	EventSaveFailed EventType = "SAVE_FAILED"
)

// Event represents a change in the store.
// For save events ID is the sequence number of the save, not a note id.
type Event struct {
	Type      EventType
	ID        int64
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %d", e.Type, e.ID)
}
