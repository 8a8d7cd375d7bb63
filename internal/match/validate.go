package match

import (
	"strings"

	"github.com/Iron-Ham/scoreboard/internal/errors"
)

// KeySeparator joins home and away names in a Key's string form.
const KeySeparator = "-"

type validateConfig struct {
	rejectSeparator bool
}

// ValidateOption configures ValidateNames.
type ValidateOption func(*validateConfig)

// WithReservedSeparator rejects names containing KeySeparator when enabled.
func WithReservedSeparator(enabled bool) ValidateOption {
	return func(c *validateConfig) {
		c.rejectSeparator = enabled
	}
}

// ValidateNames checks a home/away pair. Checks run in a fixed order so the
// reported error is deterministic: blank names, then identical names, then
// (in strict mode) the reserved separator.
//
// The returned error wraps one of errors.ErrInvalidName, errors.ErrSameTeams
// or errors.ErrInvalidCharacter.
func ValidateNames(home, away string, opts ...ValidateOption) error {
	var cfg validateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if isBlank(home) || isBlank(away) {
		return errors.ErrInvalidName
	}
	// Case-sensitive and untrimmed.
	if home == away {
		return errors.ErrSameTeams
	}
	if cfg.rejectSeparator && (strings.Contains(home, KeySeparator) || strings.Contains(away, KeySeparator)) {
		return errors.ErrInvalidCharacter
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
