package git

import "context"

// Backend performs the primitive repository operations a [Repo] needs.
//
// Branch names are short names: "main" for refs/heads/main and
// "origin/main" for refs/remotes/origin/main. Commits are hex object ids.
type Backend interface {
	// LocalBranches returns local branch names sorted by name.
	LocalBranches(ctx context.Context) ([]string, error)

	// RemoteBranches returns remote-tracking branch names as remote/name,
	// sorted by name. Symbolic refs such as origin/HEAD are skipped.
	RemoteBranches(ctx context.Context) ([]string, error)

	// ResolveCommit returns the commit a full ref name points at.
	// Returns ErrReferenceNotFound if the ref does not exist.
	ResolveCommit(ctx context.Context, ref string) (string, error)

	// CreateTrackingBranch creates a local branch at a commit and records
	// its upstream.
	CreateTrackingBranch(ctx context.Context, b TrackingBranch) error

	// CheckoutBranch updates the working tree and attaches HEAD to a local
	// branch. Returns ErrCheckoutConflict instead of overwriting changes.
	CheckoutBranch(ctx context.Context, name string) error

	// CheckoutDetached updates the working tree and detaches HEAD at a
	// commit. Returns ErrCheckoutConflict instead of overwriting changes.
	CheckoutDetached(ctx context.Context, commit string) error
}

// TrackingBranch describes a local branch created from a remote branch.
type TrackingBranch struct {
	Name   string // local branch name
	Remote string // remote name, e.g. "origin"
	Merge  string // branch name on the remote
	Commit string // commit the new branch points at
}

// LocalRef returns the full ref name of a local branch.
func LocalRef(name string) string {
	return "refs/heads/" + name
}

// RemoteRef returns the full ref name of a remote-tracking branch given as
// remote/name.
func RemoteRef(name string) string {
	return "refs/remotes/" + name
}
