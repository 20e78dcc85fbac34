// Package strategy defines the resolution state machine for a search.
//
// Valid state graph:
//
//	ServerAttempt ──► Fallback ──► Failed
//
// Entry picks the first state. A successful resolver ends the run in the state
// it ran in; Failed is terminal and carries the error.
package strategy

import (
	"fmt"

	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
)

// State is a step of the resolution state machine.
type State string

// States.
const (
	ServerAttempt State = "server"
	Fallback      State = "fallback"
	Failed        State = "failed"
)

// Reason explains why a run is in Fallback.
type Reason string

// Fallback reasons.
const (
	// ReasonNone means the run never left ServerAttempt.
	ReasonNone          Reason = ""
	ReasonLocations     Reason = "locations"
	ReasonServerError   Reason = "server_error"
	ReasonServerTimeout Reason = "server_timeout"
	ReasonTaxonomy      Reason = "taxonomy_lookup"
)

// Notice is shown to the user when a failed server attempt was replaced by the fallback.
const Notice = "using enhanced filtering"

var validTransitions = map[State][]State{
	ServerAttempt: {Fallback},
	Fallback:      {Failed},
}

// ParseState converts a raw string to a State.
func ParseState(s string) (State, error) {
	st := State(s)
	switch st {
	case ServerAttempt, Fallback, Failed:
		return st, nil
	}
	return "", fmt.Errorf("unknown resolution state %q", s)
}

// IsTransitionAllowed reports whether moving from → to is permitted.
func IsTransitionAllowed(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether st has no outgoing transitions.
func (st State) IsTerminal() bool {
	return len(validTransitions[st]) == 0
}

// Entry is the trigger predicate: location-filtered searches skip the server
// resolver and start in Fallback; every other search starts with a server attempt.
func Entry(s spec.Spec) (State, Reason) {
	if s.HasLocations() {
		return Fallback, ReasonLocations
	}
	return ServerAttempt, ReasonNone
}
