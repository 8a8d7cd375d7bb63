// Package errors provides centralized error definitions and error handling utilities
// for the scoreboard codebase. It defines sentinel errors for every rejected
// board operation, domain error types that carry the offending input, and
// classification helpers used by the CLI and TUI when reporting failures.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - MatchError: a board or match operation was rejected
//   - CommandError: a line of user input could not be parsed
//
// Every MatchError wraps exactly one sentinel, so callers branch on the
// sentinel rather than on the message:
//
//	if errors.Is(err, errors.ErrMatchNotFound) { ... }
//
//	var matchErr *errors.MatchError
//	if errors.As(err, &matchErr) {
//	    fmt.Println(matchErr.UserMessage())
//	}
//
// # Error Classification
//
// Errors can be classified by severity and audience:
//   - UserFacing: errors safe to display to users (vs internal errors)
//   - Severity: Debug, Info, Warning, Error, Critical
//
// None of the board errors are retryable: every rejection is a property of
// the input or of the current board state, and the state is left unchanged.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Name validation sentinel errors
var (
	// ErrInvalidName indicates that a team name is empty or only whitespace.
	ErrInvalidName = New("team names cannot be empty or blank")
	// ErrSameTeams indicates that home and away are the same team.
	ErrSameTeams = New("team names must be different")
	// ErrInvalidCharacter indicates that a team name contains the reserved key separator.
	ErrInvalidCharacter = New("team names cannot contain the key separator")
)

// Board sentinel errors
var (
	// ErrNegativeScore indicates that a supplied score is below zero.
	ErrNegativeScore = New("score cannot be negative")
	// ErrMatchAlreadyExists indicates that the exact home/away pairing is already ongoing.
	ErrMatchAlreadyExists = New("match already exists")
	// ErrTeamAlreadyPlaying indicates that one of the teams is in another ongoing match.
	ErrTeamAlreadyPlaying = New("team is already playing")
	// ErrMatchNotFound indicates that no ongoing match exists for the pairing.
	ErrMatchNotFound = New("no ongoing match found")
)

// Command sentinel errors
var (
	// ErrUnknownCommand indicates that the command verb is not recognized.
	ErrUnknownCommand = New("unknown command")
	// ErrWrongArity indicates that a command received the wrong number of arguments.
	ErrWrongArity = New("wrong number of arguments")
	// ErrInvalidScore indicates that a score argument is not an integer.
	ErrInvalidScore = New("score must be an integer")
	// ErrUnterminatedQuote indicates that a quoted argument was never closed.
	ErrUnterminatedQuote = New("unterminated quote")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// ScoreboardError is the base interface for all scoreboard errors.
type ScoreboardError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error      { return e.cause }
func (e *baseError) Severity() Severity { return e.severity }
func (e *baseError) IsRetryable() bool  { return e.retryable }
func (e *baseError) IsUserFacing() bool { return e.userFacing }

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// MatchError represents a rejected board or match operation.
//
// Example:
//
//	err := errors.NewMatchError("finish", errors.ErrMatchNotFound).WithTeams("Spain", "Brazil")
//	fmt.Println(err) // "match error [op=finish, home=Spain, away=Brazil]: no ongoing match found"
type MatchError struct {
	baseError
	Operation string
	Home      string
	Away      string
	HomeScore int
	AwayScore int
	hasScore  bool
}

// NewMatchError creates a new MatchError for the named operation.
func NewMatchError(operation string, cause error) *MatchError {
	return &MatchError{
		baseError: baseError{
			message:    operation,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		Operation: operation,
	}
}

// WithTeams adds the home and away team names to the error context.
func (e *MatchError) WithTeams(home, away string) *MatchError {
	e.Home = home
	e.Away = away
	return e
}

// WithScore adds the rejected score pair to the error context.
func (e *MatchError) WithScore(home, away int) *MatchError {
	e.HomeScore = home
	e.AwayScore = away
	e.hasScore = true
	return e
}

// WithSeverity sets the error severity.
func (e *MatchError) WithSeverity(s Severity) *MatchError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *MatchError) Error() string {
	var parts []string
	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Operation))
	}
	if e.Home != "" {
		parts = append(parts, fmt.Sprintf("home=%s", e.Home))
	}
	if e.Away != "" {
		parts = append(parts, fmt.Sprintf("away=%s", e.Away))
	}
	if e.hasScore {
		parts = append(parts, fmt.Sprintf("score=%d-%d", e.HomeScore, e.AwayScore))
	}

	prefix := "match error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("match error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %v", prefix, e.cause)
	}
	return prefix
}

// Is checks if this error matches the target.
func (e *MatchError) Is(target error) bool {
	if _, ok := target.(*MatchError); ok {
		return true
	}
	return false
}

// UserMessage renders the rejection the way it is shown to a person at the
// scoreboard, e.g. "No ongoing game between Spain and Brazil found."
func (e *MatchError) UserMessage() string {
	switch {
	case Is(e.cause, ErrInvalidName):
		return "Team names cannot be null or empty"
	case Is(e.cause, ErrSameTeams):
		return "Team names must be different."
	case Is(e.cause, ErrInvalidCharacter):
		return "Team names cannot contain the character '-'"
	case Is(e.cause, ErrNegativeScore):
		return "Score cannot be negative"
	case Is(e.cause, ErrMatchAlreadyExists):
		return fmt.Sprintf("Game between %s and %s already exists.", e.Home, e.Away)
	case Is(e.cause, ErrTeamAlreadyPlaying):
		return "One or two of the teams is already playing."
	case Is(e.cause, ErrMatchNotFound):
		return fmt.Sprintf("No ongoing game between %s and %s found.", e.Home, e.Away)
	case e.cause != nil:
		return e.cause.Error()
	default:
		return e.message
	}
}

// CommandError represents a line of user input that could not be parsed
// into a board command.
//
// Example:
//
//	err := errors.NewCommandError("update", errors.ErrWrongArity).WithInput("update Spain")
//	fmt.Println(err) // "command error [cmd=update]: wrong number of arguments"
type CommandError struct {
	baseError
	Command string
	Input   string
	Usage   string
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, cause error) *CommandError {
	return &CommandError{
		baseError: baseError{
			message:    command,
			cause:      cause,
			severity:   SeverityInfo,
			retryable:  false,
			userFacing: true,
		},
		Command: command,
	}
}

// WithInput records the raw line that failed to parse.
func (e *CommandError) WithInput(input string) *CommandError {
	e.Input = input
	return e
}

// WithUsage attaches the usage string for the command.
func (e *CommandError) WithUsage(usage string) *CommandError {
	e.Usage = usage
	return e
}

// Error returns the formatted error message.
func (e *CommandError) Error() string {
	prefix := "command error"
	if e.Command != "" {
		prefix = fmt.Sprintf("command error [cmd=%s]", e.Command)
	}
	msg := prefix
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", prefix, e.cause)
	}
	if e.Usage != "" {
		msg = fmt.Sprintf("%s (usage: %s)", msg, e.Usage)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *CommandError) Is(target error) bool {
	if _, ok := target.(*CommandError); ok {
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var sbErr ScoreboardError
	if As(err, &sbErr) {
		return sbErr.IsUserFacing()
	}
	return false
}

// IsRetryable returns true if the error represents a transient condition.
// Board rejections never are; the helper exists so outer layers can treat
// wrapped infrastructure errors uniformly.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var sbErr ScoreboardError
	if As(err, &sbErr) {
		return sbErr.IsRetryable()
	}
	return false
}

// GetSeverity returns the severity of an error, or SeverityError for
// errors that don't carry one.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var sbErr ScoreboardError
	if As(err, &sbErr) {
		return sbErr.Severity()
	}
	return SeverityError
}

// UserMessage returns the text to show a person for err. Match rejections
// use their scoreboard wording; other user-facing errors use Error(); anything
// else is reported generically.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var matchErr *MatchError
	if As(err, &matchErr) {
		return matchErr.UserMessage()
	}
	if IsUserFacing(err) {
		return err.Error()
	}
	return "An internal error occurred"
}
