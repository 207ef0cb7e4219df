package git

import "errors"

var (
	// ErrRepositoryUnavailable indicates no repository could be opened or its
	// branches could not be listed.
	ErrRepositoryUnavailable = errors.New("repository unavailable")

	// ErrMalformedRemoteName indicates a name that is neither a local branch
	// nor of the form remote/branch.
	ErrMalformedRemoteName = errors.New("malformed remote branch name")

	// ErrReferenceNotFound indicates a branch or commit that does not exist.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrCheckoutConflict indicates the checkout was refused because it would
	// overwrite uncommitted changes.
	ErrCheckoutConflict = errors.New("checkout would overwrite local changes")
)
