package command

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/Iron-Ham/scoreboard/internal/errors"
)

// Tokenize splits line into words. Double quotes group words and may
// produce an empty token (""). Inside quotes, \" and \\ stand for a literal
// quote and backslash. Apostrophes are ordinary characters. An unclosed
// quote is an error.
func Tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inWord  bool
		quoted  bool
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quoted && r == '\\':
			escaped = true
		case quoted && r == '"':
			quoted = false
		case quoted:
			current.WriteRune(r)
		case r == '"':
			quoted = true
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				tokens = append(tokens, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quoted {
		return nil, errors.NewCommandError("", errors.ErrUnterminatedQuote).WithInput(line)
	}
	if inWord {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// Parse turns one line into a Command. Blank lines and # comments parse to
// a Command with VerbNone.
func Parse(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Command{}, nil
	}

	tokens, err := Tokenize(trimmed)
	if err != nil {
		return Command{}, err
	}

	verb, ok := aliases[strings.ToLower(tokens[0])]
	if !ok {
		return Command{}, errors.NewCommandError(tokens[0], errors.ErrUnknownCommand).
			WithInput(line).
			WithUsage("help")
	}

	sp := lookup(verb)
	args := tokens[1:]
	if len(args) != sp.args {
		return Command{}, errors.NewCommandError(string(verb), errors.ErrWrongArity).
			WithInput(line).
			WithUsage(sp.usage)
	}

	cmd := Command{Verb: verb}
	switch verb {
	case VerbStart, VerbFinish:
		cmd.Home, cmd.Away = args[0], args[1]
	case VerbUpdate:
		cmd.Home, cmd.Away = args[0], args[1]
		if cmd.HomeScore, err = parseScore(args[2]); err != nil {
			return Command{}, errors.NewCommandError(string(verb), err).WithInput(line).WithUsage(sp.usage)
		}
		if cmd.AwayScore, err = parseScore(args[3]); err != nil {
			return Command{}, errors.NewCommandError(string(verb), err).WithInput(line).WithUsage(sp.usage)
		}
	}
	return cmd, nil
}

// parseScore accepts any integer, including negatives; range checks belong
// to the board.
func parseScore(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.ErrInvalidScore
	}
	return n, nil
}
