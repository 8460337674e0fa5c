package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchRequested EventType = "SearchRequested"
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventIndexPopulated  EventType = "IndexPopulated"
	EventScrapeCompleted EventType = "ScrapeCompleted"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchRequestedEvent is emitted when the input coordinator decides a
// search should fire, before the request goes out.
type SearchRequestedEvent struct {
	Query   string
	Seq     int
	Trigger string // "debounce", "enter" or "button"
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// SearchStartedEvent is emitted when a request is actually dispatched
type SearchStartedEvent struct {
	Query string
	Seq   int
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a dispatch settles successfully
type SearchCompletedEvent struct {
	Query       string
	Seq         int
	ResultCount int
	Stale       bool // response arrived after a newer dispatch
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a dispatch settles with an error.
// Err is the diagnostic cause; the user only ever sees a generic message.
type SearchFailedEvent struct {
	Query string
	Seq   int
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// IndexPopulatedEvent is emitted after a dump load finishes
type IndexPopulatedEvent struct {
	Loaded  int
	Skipped int
}

func (e IndexPopulatedEvent) Type() EventType { return EventIndexPopulated }

// ScrapeCompletedEvent is emitted after a scrape pass finishes
type ScrapeCompletedEvent struct {
	Source string
	Links  int
}

func (e ScrapeCompletedEvent) Type() EventType { return EventScrapeCompleted }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
