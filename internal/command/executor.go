package command

import (
	"fmt"

	"github.com/Iron-Ham/scoreboard/internal/match"
)

// Board is the scoreboard API commands are applied to.
type Board interface {
	StartMatch(home, away string) error
	UpdateScore(home, away string, homeScore, awayScore int) error
	FinishMatch(home, away string) error
	Summary() []match.Snapshot
}

// Result is the outcome of a successfully applied command.
type Result struct {
	// Message is a one-line confirmation, empty for commands that only
	// produce a summary or nothing at all.
	Message string
	// Summary is set for the summary command.
	Summary []match.Snapshot
	// ShowSummary distinguishes an empty summary from no summary.
	ShowSummary bool
	// Help is set for the help command.
	Help string
	// Quit asks the caller to end the session.
	Quit bool
}

// Executor applies parsed commands to a board.
type Executor struct {
	board    Board
	handlers map[Verb]handlerFunc
}

type handlerFunc func(b Board, c Command) (Result, error)

// NewExecutor creates an Executor for b.
func NewExecutor(b Board) *Executor {
	e := &Executor{
		board:    b,
		handlers: make(map[Verb]handlerFunc),
	}
	e.registerHandlers()
	return e
}

func (e *Executor) registerHandlers() {
	e.handlers[VerbNone] = cmdNone
	e.handlers[VerbStart] = cmdStart
	e.handlers[VerbUpdate] = cmdUpdate
	e.handlers[VerbFinish] = cmdFinish
	e.handlers[VerbSummary] = cmdSummary
	e.handlers[VerbHelp] = cmdHelp
	e.handlers[VerbQuit] = cmdQuit
}

// Execute applies c. Board rejections are returned unchanged so callers can
// match them with errors.Is.
func (e *Executor) Execute(c Command) (Result, error) {
	fn, ok := e.handlers[c.Verb]
	if !ok {
		return Result{}, fmt.Errorf("no handler for verb %q", c.Verb)
	}
	return fn(e.board, c)
}

// ExecuteLine parses line and applies it.
func (e *Executor) ExecuteLine(line string) (Result, error) {
	c, err := Parse(line)
	if err != nil {
		return Result{}, err
	}
	return e.Execute(c)
}

func cmdNone(Board, Command) (Result, error) {
	return Result{}, nil
}

func cmdStart(b Board, c Command) (Result, error) {
	if err := b.StartMatch(c.Home, c.Away); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("Started %s vs %s", c.Home, c.Away)}, nil
}

func cmdUpdate(b Board, c Command) (Result, error) {
	if err := b.UpdateScore(c.Home, c.Away, c.HomeScore, c.AwayScore); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("Updated %s %d - %s %d", c.Home, c.HomeScore, c.Away, c.AwayScore)}, nil
}

func cmdFinish(b Board, c Command) (Result, error) {
	if err := b.FinishMatch(c.Home, c.Away); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("Finished %s vs %s", c.Home, c.Away)}, nil
}

func cmdSummary(b Board, _ Command) (Result, error) {
	return Result{Summary: b.Summary(), ShowSummary: true}, nil
}

func cmdHelp(Board, Command) (Result, error) {
	return Result{Help: Help()}, nil
}

func cmdQuit(Board, Command) (Result, error) {
	return Result{Quit: true}, nil
}
