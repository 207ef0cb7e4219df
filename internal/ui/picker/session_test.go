package picker

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cpa750/git-sift/internal/finder"
	"github.com/cpa750/git-sift/internal/git"
)

var testCandidates = []string{"dev", "main", "origin/feature", "origin/main"}

// fakeCheckouter records checkout requests.
type fakeCheckouter struct {
	names   []string
	outcome git.Outcome
	err     error
}

func (f *fakeCheckouter) Checkout(ctx context.Context, name string) (git.Outcome, error) {
	f.names = append(f.names, name)
	if f.err != nil {
		return git.Outcome{}, f.err
	}
	if f.outcome != (git.Outcome{}) {
		return f.outcome, nil
	}
	return git.Outcome{Branch: name, Mode: git.AttachedLocal}, nil
}

func names(matches []finder.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}

func apply(s *Session, actions ...Action) State {
	var st State
	for _, a := range actions {
		st = s.Apply(context.Background(), a)
	}
	return st
}

func insert(text string) Action { return Action{Kind: ActionInsert, Text: text} }

var (
	next   = Action{Kind: ActionNext}
	prev   = Action{Kind: ActionPrev}
	submit = Action{Kind: ActionSubmit}
	quit   = Action{Kind: ActionQuit}
	erase  = Action{Kind: ActionErase}
)

func TestNewSession(t *testing.T) {
	t.Parallel()

	s := NewSession(testCandidates, "", &fakeCheckouter{})
	if s.State() != Running {
		t.Errorf("State() = %v, want running", s.State())
	}
	if got := names(s.Results()); !reflect.DeepEqual(got, testCandidates) {
		t.Errorf("Results() = %v, want %v", got, testCandidates)
	}
	if s.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", s.Selected())
	}

	s = NewSession(testCandidates, "feat", &fakeCheckouter{})
	if got := names(s.Results()); !reflect.DeepEqual(got, []string{"origin/feature"}) {
		t.Errorf("Results() with needle = %v, want [origin/feature]", got)
	}
}

func TestSession_Navigation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		actions []Action
		want    int
	}{
		{"next", []Action{next}, 1},
		{"next clamps at end", []Action{next, next, next, next, next, next}, 3},
		{"prev clamps at start", []Action{prev, prev}, 0},
		{"next then prev", []Action{next, next, prev}, 1},
		{"typing resets selection", []Action{next, next, insert("m")}, 0},
		{"one result", []Action{insert("dev"), next, next}, 0},
		{"no results", []Action{insert("zzz"), next, prev, next}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewSession(testCandidates, "", &fakeCheckouter{})
			apply(s, tt.actions...)
			if s.Selected() != tt.want {
				t.Errorf("Selected() = %d, want %d", s.Selected(), tt.want)
			}
			if n := len(s.Results()); n > 0 && (s.Selected() < 0 || s.Selected() >= n) {
				t.Errorf("Selected() = %d out of range for %d results", s.Selected(), n)
			}
		})
	}
}

func TestSession_EraseRefiltersFullSet(t *testing.T) {
	t.Parallel()

	s := NewSession(testCandidates, "", &fakeCheckouter{})
	apply(s, insert("m"))
	if s.Needle() != "m" {
		t.Fatalf("Needle() = %q, want %q", s.Needle(), "m")
	}
	narrowed := names(s.Results())

	apply(s, erase)
	if s.Needle() != "" {
		t.Errorf("Needle() after erase = %q, want empty", s.Needle())
	}
	want := finder.Filter("", testCandidates)
	if got := names(s.Results()); !reflect.DeepEqual(got, want) {
		t.Errorf("Results() after erase = %v, want %v (narrowed was %v)", got, want, narrowed)
	}

	// Erasing an empty needle is a no-op.
	apply(s, erase)
	if got := names(s.Results()); !reflect.DeepEqual(got, want) {
		t.Errorf("Results() after second erase = %v, want %v", got, want)
	}
}

func TestSession_EraseMultibyte(t *testing.T) {
	t.Parallel()

	s := NewSession([]string{"café"}, "", &fakeCheckouter{})
	apply(s, insert("cé"), erase)
	if s.Needle() != "c" {
		t.Errorf("Needle() = %q, want %q", s.Needle(), "c")
	}
}

func TestSession_Quit(t *testing.T) {
	t.Parallel()

	prefixes := [][]Action{
		nil,
		{insert("ma"), next},
		{insert("zzz")},
		{next, next, prev},
	}
	for _, prefix := range prefixes {
		co := &fakeCheckouter{}
		s := NewSession(testCandidates, "", co)
		apply(s, prefix...)
		if st := apply(s, quit); st != Cancelled {
			t.Errorf("after %v quit: State() = %v, want cancelled", prefix, st)
		}
		if len(co.names) != 0 {
			t.Errorf("after %v quit: checkouts = %v, want none", prefix, co.names)
		}
		if r := s.Result(); r.Outcome != (git.Outcome{}) || r.Err != nil {
			t.Errorf("after %v quit: Result() = %+v, want no outcome", prefix, r)
		}
	}
}

func TestSession_Submit(t *testing.T) {
	t.Parallel()

	t.Run("checks out the selected name once", func(t *testing.T) {
		t.Parallel()
		co := &fakeCheckouter{}
		s := NewSession(testCandidates, "", co)

		if st := apply(s, next, submit); st != Submitted {
			t.Fatalf("State() = %v, want submitted", st)
		}
		if !reflect.DeepEqual(co.names, []string{"main"}) {
			t.Errorf("checkouts = %v, want [main]", co.names)
		}
		r := s.Result()
		if r.Outcome != (git.Outcome{Branch: "main", Mode: git.AttachedLocal}) || r.Err != nil {
			t.Errorf("Result() = %+v, want attached main", r)
		}

		// Further actions are ignored.
		apply(s, submit, insert("x"), quit)
		if s.State() != Submitted || len(co.names) != 1 || s.Needle() != "" {
			t.Errorf("actions after submit changed the session: state=%v checkouts=%v needle=%q",
				s.State(), co.names, s.Needle())
		}
	})

	t.Run("empty results is a no-op", func(t *testing.T) {
		t.Parallel()
		co := &fakeCheckouter{}
		s := NewSession(testCandidates, "", co)

		if st := apply(s, insert("zzz"), submit); st != Running {
			t.Errorf("State() = %v, want running", st)
		}
		if len(co.names) != 0 {
			t.Errorf("checkouts = %v, want none", co.names)
		}
	})

	t.Run("error is captured", func(t *testing.T) {
		t.Parallel()
		co := &fakeCheckouter{err: git.ErrCheckoutConflict}
		s := NewSession(testCandidates, "dev", co)

		if st := apply(s, submit); st != Submitted {
			t.Fatalf("State() = %v, want submitted", st)
		}
		if r := s.Result(); !errors.Is(r.Err, git.ErrCheckoutConflict) {
			t.Errorf("Result().Err = %v, want ErrCheckoutConflict", r.Err)
		}
	})
}
