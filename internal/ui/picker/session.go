package picker

import (
	"context"
	"fmt"

	"github.com/cpa750/git-sift/internal/finder"
	"github.com/cpa750/git-sift/internal/git"
)

// State is the lifecycle state of a Session.
type State int

const (
	Running State = iota
	Submitted
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Submitted:
		return "submitted"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ActionKind identifies a user action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionNext
	ActionPrev
	ActionSubmit
	ActionInsert
	ActionErase
)

// Action is a dispatched key press. Text is set for ActionInsert.
type Action struct {
	Kind ActionKind
	Text string
}

// Checkouter resolves and checks out a selected branch name.
type Checkouter interface {
	Checkout(ctx context.Context, name string) (git.Outcome, error)
}

// Result is the terminal state of a session.
// Outcome and Err are only meaningful when State is Submitted.
type Result struct {
	State   State
	Outcome git.Outcome
	Err     error
}

// Session is the picker's state machine.
type Session struct {
	candidates []string
	checkouter Checkouter

	needle   string
	results  []finder.Match
	selected int

	state   State
	outcome git.Outcome
	err     error
}

// NewSession starts a Running session filtered by needle.
func NewSession(candidates []string, needle string, c Checkouter) *Session {
	s := &Session{
		candidates: candidates,
		checkouter: c,
		needle:     needle,
	}
	s.refilter()
	return s
}

// Apply handles one action and returns the resulting state.
// Actions after the session has left Running are ignored.
func (s *Session) Apply(ctx context.Context, a Action) State {
	if s.state != Running {
		return s.state
	}

	switch a.Kind {
	case ActionQuit:
		s.state = Cancelled

	case ActionNext:
		if len(s.results) > 0 {
			s.selected = min(s.selected+1, len(s.results)-1)
		}

	case ActionPrev:
		s.selected = max(s.selected-1, 0)

	case ActionSubmit:
		name, ok := s.Selection()
		if !ok {
			break
		}
		s.outcome, s.err = s.checkouter.Checkout(ctx, name)
		s.state = Submitted

	case ActionInsert:
		if a.Text != "" {
			s.needle += a.Text
			s.refilter()
		}

	case ActionErase:
		if s.needle != "" {
			runes := []rune(s.needle)
			s.needle = string(runes[:len(runes)-1])
			s.refilter()
		}
	}

	return s.state
}

// refilter matches the needle against the full candidate set.
func (s *Session) refilter() {
	s.results = finder.Find(s.needle, s.candidates)
	s.selected = 0
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Needle returns the current query.
func (s *Session) Needle() string { return s.needle }

// Results returns the current matches, best first.
func (s *Session) Results() []finder.Match { return s.results }

// Selected returns the index of the highlighted result.
func (s *Session) Selected() int { return s.selected }

// Candidates returns the number of branch names being filtered.
func (s *Session) Candidates() int { return len(s.candidates) }

// Selection returns the highlighted branch name.
// ok is false when there are no results.
func (s *Session) Selection() (name string, ok bool) {
	if s.selected < 0 || s.selected >= len(s.results) {
		return "", false
	}
	return s.results[s.selected].Str, true
}

// Result returns the session's outcome.
func (s *Session) Result() Result {
	return Result{State: s.state, Outcome: s.outcome, Err: s.err}
}
