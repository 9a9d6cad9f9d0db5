package transfers

import "strings"

// DefaultTerminalStates are the substrings known to mark a transfer state
// label as terminal. The daemon may emit compound labels such as
// "Completed, Succeeded"; substring containment still matches.
var DefaultTerminalStates = []string{
	"Completed",
	"Succeeded",
	"Cancelled",
	"Canceled",
	"Failed",
	"Errored",
}

// Classifier decides whether a transfer state label is terminal.
//
// Matching is a case-sensitive substring check against an extensible set of
// labels; the daemon's vocabulary is not guaranteed to be exhaustively
// known, so callers can supply their own set from configuration.
type Classifier struct {
	terminal []string
}

// NewClassifier creates a Classifier for the given terminal-state
// substrings, falling back to [DefaultTerminalStates] when none are given.
func NewClassifier(states []string) *Classifier {
	if len(states) == 0 {
		states = DefaultTerminalStates
	}
	terminal := make([]string, len(states))
	copy(terminal, states)
	return &Classifier{terminal: terminal}
}

// IsTerminal reports whether state contains any known terminal substring.
//
// Empty or unrecognized labels are non-terminal: absence of evidence of
// completion must not be mistaken for completion.
func (c *Classifier) IsTerminal(state string) bool {
	if state == "" {
		return false
	}
	for _, label := range c.terminal {
		if strings.Contains(state, label) {
			return true
		}
	}
	return false
}
