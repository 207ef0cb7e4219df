package git

import (
	"fmt"
	"strings"
)

// PlanKind identifies what a checkout will do.
type PlanKind int

const (
	// PlanCheckoutLocal checks out an existing local branch.
	PlanCheckoutLocal PlanKind = iota
	// PlanCreateTracking creates a local branch tracking a remote branch and
	// checks it out.
	PlanCreateTracking
	// PlanDetachRemote checks out a remote branch's commit as a detached HEAD.
	PlanDetachRemote
)

func (k PlanKind) String() string {
	switch k {
	case PlanCheckoutLocal:
		return "checkout-local"
	case PlanCreateTracking:
		return "create-tracking"
	case PlanDetachRemote:
		return "detach-remote"
	default:
		return fmt.Sprintf("PlanKind(%d)", int(k))
	}
}

// Plan is the resolved action for a selected branch name.
type Plan struct {
	Kind      PlanKind
	Branch    string // local branch to check out; unset for PlanDetachRemote
	Remote    string // remote name; set for PlanCreateTracking
	RemoteRef string // selected remote/name; unset for PlanCheckoutLocal
	Commit    string // target commit; unset for PlanCheckoutLocal
}

// Resolution holds the commits Decide needs for a remote name.
type Resolution struct {
	RemoteCommit string
	LocalCommit  string // empty when no local branch of the same name exists
}

// Decide maps a selected name to a Plan.
//
// A name in locals is always a local checkout, even if it contains a slash.
// Any other name is split once on "/" into remote and branch, so
// "origin/feature/x" is branch "feature/x" on remote "origin".
func Decide(name string, locals map[string]bool, res Resolution) (Plan, error) {
	if locals[name] {
		return Plan{Kind: PlanCheckoutLocal, Branch: name}, nil
	}

	remote, branch, ok := SplitRemoteName(name)
	if !ok {
		return Plan{}, fmt.Errorf("%w: %q", ErrMalformedRemoteName, name)
	}

	if !locals[branch] {
		return Plan{
			Kind:      PlanCreateTracking,
			Branch:    branch,
			Remote:    remote,
			RemoteRef: name,
			Commit:    res.RemoteCommit,
		}, nil
	}

	if res.LocalCommit == res.RemoteCommit {
		return Plan{Kind: PlanCheckoutLocal, Branch: branch}, nil
	}
	return Plan{Kind: PlanDetachRemote, RemoteRef: name, Commit: res.RemoteCommit}, nil
}

// SplitRemoteName splits remote/branch at the first slash.
// ok is false when either side would be empty.
func SplitRemoteName(name string) (remote, branch string, ok bool) {
	remote, branch, found := strings.Cut(name, "/")
	if !found || remote == "" || branch == "" {
		return "", "", false
	}
	return remote, branch, true
}

// Mode describes where HEAD ends up after a checkout.
type Mode int

const (
	// AttachedLocal means HEAD is attached to a local branch.
	AttachedLocal Mode = iota
	// DetachedRemote means HEAD is detached at a remote branch's commit.
	DetachedRemote
)

func (m Mode) String() string {
	switch m {
	case AttachedLocal:
		return "attached"
	case DetachedRemote:
		return "detached"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Outcome is the result of a successful checkout.
// Branch is the local branch for AttachedLocal and the remote/name for
// DetachedRemote.
type Outcome struct {
	Branch string
	Mode   Mode
}
