package tui

import (
	"fmt"

	"github.com/Iron-Ham/scoreboard/internal/errors"
	"github.com/Iron-Ham/scoreboard/internal/event"
	"github.com/Iron-Ham/scoreboard/internal/tui/styles"
)

// EventMsg delivers a board event to the model.
type EventMsg struct {
	Event event.Event
}

// ThemeChangedMsg switches the active theme. It is sent when the config
// file changes while the TUI is running.
type ThemeChangedMsg struct {
	Name styles.ThemeName
}

// feedLine is one entry in the activity feed.
type feedLine struct {
	text     string
	rejected bool
}

func describeEvent(e event.Event) (feedLine, bool) {
	switch ev := e.(type) {
	case event.MatchStartedEvent:
		return feedLine{text: fmt.Sprintf("Kick-off: %s vs %s", ev.Home, ev.Away)}, true
	case event.ScoreUpdatedEvent:
		return feedLine{text: fmt.Sprintf("Score: %s %d - %s %d", ev.Home, ev.HomeScore, ev.Away, ev.AwayScore)}, true
	case event.MatchFinishedEvent:
		return feedLine{text: fmt.Sprintf("Full time: %s %d - %s %d", ev.Home, ev.HomeScore, ev.Away, ev.AwayScore)}, true
	case event.MatchRejectedEvent:
		return feedLine{
			text:     fmt.Sprintf("Rejected %s: %s", ev.Operation, errors.UserMessage(ev.Err)),
			rejected: true,
		}, true
	default:
		return feedLine{}, false
	}
}
