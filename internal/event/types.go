package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "match.started").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeMatchStarted  = "match.started"
	TypeScoreUpdated  = "match.score_updated"
	TypeMatchFinished = "match.finished"
	TypeMatchRejected = "match.rejected"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// MatchStartedEvent is emitted when a match is added to the board.
type MatchStartedEvent struct {
	baseEvent
	BoardID string
	Home    string
	Away    string
}

// NewMatchStartedEvent creates a MatchStartedEvent.
func NewMatchStartedEvent(boardID, home, away string) MatchStartedEvent {
	return MatchStartedEvent{
		baseEvent: newBaseEvent(TypeMatchStarted),
		BoardID:   boardID,
		Home:      home,
		Away:      away,
	}
}

// ScoreUpdatedEvent is emitted when an ongoing match's score is replaced.
type ScoreUpdatedEvent struct {
	baseEvent
	BoardID   string
	Home      string
	Away      string
	HomeScore int
	AwayScore int
}

// NewScoreUpdatedEvent creates a ScoreUpdatedEvent.
func NewScoreUpdatedEvent(boardID, home, away string, homeScore, awayScore int) ScoreUpdatedEvent {
	return ScoreUpdatedEvent{
		baseEvent: newBaseEvent(TypeScoreUpdated),
		BoardID:   boardID,
		Home:      home,
		Away:      away,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
}

// MatchFinishedEvent is emitted when a match is removed from the board.
// The final score is the last one recorded before removal.
type MatchFinishedEvent struct {
	baseEvent
	BoardID   string
	Home      string
	Away      string
	HomeScore int
	AwayScore int
}

// NewMatchFinishedEvent creates a MatchFinishedEvent.
func NewMatchFinishedEvent(boardID, home, away string, homeScore, awayScore int) MatchFinishedEvent {
	return MatchFinishedEvent{
		baseEvent: newBaseEvent(TypeMatchFinished),
		BoardID:   boardID,
		Home:      home,
		Away:      away,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
}

// MatchRejectedEvent is emitted when a board operation fails.
type MatchRejectedEvent struct {
	baseEvent
	BoardID   string
	Operation string // "start", "update" or "finish"
	Home      string
	Away      string
	Err       error
}

// NewMatchRejectedEvent creates a MatchRejectedEvent.
func NewMatchRejectedEvent(boardID, operation, home, away string, err error) MatchRejectedEvent {
	return MatchRejectedEvent{
		baseEvent: newBaseEvent(TypeMatchRejected),
		BoardID:   boardID,
		Operation: operation,
		Home:      home,
		Away:      away,
		Err:       err,
	}
}
