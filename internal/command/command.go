// Package command implements the scoreboard's line-oriented command
// language: tokenizing and parsing a line into a Command, applying it to a
// board, and running whole scripts of commands.
//
// Grammar (verbs are case-insensitive, names may be quoted):
//
//	start  <home> <away>
//	update <home> <away> <homeScore> <awayScore>
//	finish <home> <away>
//	summary
//	help
//	quit | exit
//
// Blank lines and lines starting with # are ignored.
package command

import (
	"fmt"
	"strings"
	"unicode"
)

// Verb identifies what a Command does.
type Verb string

// Verbs understood by the parser.
const (
	VerbNone    Verb = ""
	VerbStart   Verb = "start"
	VerbUpdate  Verb = "update"
	VerbFinish  Verb = "finish"
	VerbSummary Verb = "summary"
	VerbHelp    Verb = "help"
	VerbQuit    Verb = "quit"
)

// Command is one parsed line.
type Command struct {
	Verb      Verb
	Home      string
	Away      string
	HomeScore int
	AwayScore int
}

func (c Command) String() string {
	switch c.Verb {
	case VerbStart, VerbFinish:
		return fmt.Sprintf("%s %s %s", c.Verb, quote(c.Home), quote(c.Away))
	case VerbUpdate:
		return fmt.Sprintf("%s %s %s %d %d", c.Verb, quote(c.Home), quote(c.Away), c.HomeScore, c.AwayScore)
	default:
		return string(c.Verb)
	}
}

// quote wraps s in double quotes when it would not survive tokenizing as a
// bare word, escaping backslashes and quotes inside.
func quote(s string) string {
	if s != "" && !strings.ContainsRune(s, '"') && strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
