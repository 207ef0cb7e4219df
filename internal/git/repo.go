package git

import (
	"context"
	"fmt"

	"github.com/cpa750/git-sift/internal/log"
)

// BranchKind tells local branches from remote-tracking ones.
type BranchKind int

const (
	Local BranchKind = iota
	Remote
)

func (k BranchKind) String() string {
	if k == Remote {
		return "remote"
	}
	return "local"
}

// Branch is a listed branch name with its kind.
type Branch struct {
	Name string
	Kind BranchKind
}

// Options configures Open.
type Options struct {
	// LocalOnly skips listing remote-tracking branches.
	LocalOnly bool
}

// Repo lists branches once and resolves checkouts against a Backend.
type Repo struct {
	backend Backend
	local   []string
	remote  []string
	locals  map[string]bool
}

// Open lists the repository's branches.
// Any listing failure is returned as ErrRepositoryUnavailable.
func Open(ctx context.Context, backend Backend, opts Options) (*Repo, error) {
	local, err := backend.LocalBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing local branches: %w", ErrRepositoryUnavailable, err)
	}

	var remote []string
	if !opts.LocalOnly {
		remote, err = backend.RemoteBranches(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: listing remote branches: %w", ErrRepositoryUnavailable, err)
		}
	}

	locals := make(map[string]bool, len(local))
	for _, name := range local {
		locals[name] = true
	}

	log.FromContext(ctx).Debug("listed branches", "local", len(local), "remote", len(remote))

	return &Repo{backend: backend, local: local, remote: remote, locals: locals}, nil
}

// Branches returns local then remote branches, tagged with their kind.
func (r *Repo) Branches() []Branch {
	branches := make([]Branch, 0, len(r.local)+len(r.remote))
	for _, name := range r.local {
		branches = append(branches, Branch{Name: name, Kind: Local})
	}
	for _, name := range r.remote {
		branches = append(branches, Branch{Name: name, Kind: Remote})
	}
	return branches
}

// Candidates returns local then remote branch names.
func (r *Repo) Candidates() []string {
	names := make([]string, 0, len(r.local)+len(r.remote))
	names = append(names, r.local...)
	return append(names, r.remote...)
}

// Plan resolves the commits needed for name and decides what to do.
// Local names never touch remote refs.
func (r *Repo) Plan(ctx context.Context, name string) (Plan, error) {
	if r.locals[name] {
		return Decide(name, r.locals, Resolution{})
	}

	_, branch, ok := SplitRemoteName(name)
	if !ok {
		return Decide(name, r.locals, Resolution{})
	}

	var res Resolution
	var err error
	res.RemoteCommit, err = r.backend.ResolveCommit(ctx, RemoteRef(name))
	if err != nil {
		return Plan{}, err
	}
	if r.locals[branch] {
		res.LocalCommit, err = r.backend.ResolveCommit(ctx, LocalRef(branch))
		if err != nil {
			return Plan{}, err
		}
	}
	return Decide(name, r.locals, res)
}

// Execute carries out a plan.
//
// When the checkout of a freshly created tracking branch fails, the branch
// is left in place.
func (r *Repo) Execute(ctx context.Context, p Plan) (Outcome, error) {
	switch p.Kind {
	case PlanCheckoutLocal:
		if err := r.backend.CheckoutBranch(ctx, p.Branch); err != nil {
			return Outcome{}, err
		}
		return Outcome{Branch: p.Branch, Mode: AttachedLocal}, nil

	case PlanCreateTracking:
		tb := TrackingBranch{Name: p.Branch, Remote: p.Remote, Merge: p.Branch, Commit: p.Commit}
		if err := r.backend.CreateTrackingBranch(ctx, tb); err != nil {
			return Outcome{}, err
		}
		if err := r.backend.CheckoutBranch(ctx, p.Branch); err != nil {
			return Outcome{}, err
		}
		return Outcome{Branch: p.Branch, Mode: AttachedLocal}, nil

	case PlanDetachRemote:
		if err := r.backend.CheckoutDetached(ctx, p.Commit); err != nil {
			return Outcome{}, err
		}
		return Outcome{Branch: p.RemoteRef, Mode: DetachedRemote}, nil

	default:
		return Outcome{}, fmt.Errorf("unknown plan kind %v", p.Kind)
	}
}

// Checkout plans and executes the checkout of a listed branch name.
func (r *Repo) Checkout(ctx context.Context, name string) (Outcome, error) {
	p, err := r.Plan(ctx, name)
	if err != nil {
		return Outcome{}, err
	}
	log.FromContext(ctx).Debug("checkout", "name", name, "plan", p.Kind, "branch", p.Branch, "commit", p.Commit)
	return r.Execute(ctx, p)
}
