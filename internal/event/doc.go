// Package event provides a pub-sub event bus that lets the scoreboard's outer
// layers observe board activity without the board knowing who is listening.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Board Events
//
//   - [MatchStartedEvent]: a match was added to the board
//   - [ScoreUpdatedEvent]: an ongoing match's score was replaced
//   - [MatchFinishedEvent]: a match was removed from the board
//   - [MatchRejectedEvent]: an operation was refused; the board is unchanged
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Handlers are called
// synchronously and protected against panics - a panicking handler will not
// prevent other handlers from being called.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	bus.Subscribe(event.TypeScoreUpdated, func(e event.Event) {
//	    u := e.(event.ScoreUpdatedEvent)
//	    log.Printf("%s %d - %d %s", u.Home, u.HomeScore, u.AwayScore, u.Away)
//	})
//
//	bus.SubscribeAll(func(e event.Event) {
//	    log.Printf("Event: %s at %v", e.EventType(), e.Timestamp())
//	})
package event
