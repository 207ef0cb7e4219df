// Package git lists branches and checks them out.
//
// A [Repo] enumerates local and remote-tracking branch names once through a
// [Backend] and resolves a selected name into one of four checkout outcomes:
//
//   - a known local branch is checked out directly
//   - a remote branch without a local counterpart gets a new local branch
//     that tracks it
//   - a remote branch whose local counterpart points at the same commit
//     checks out the local branch
//   - a remote branch whose local counterpart has diverged is checked out as
//     a detached HEAD, leaving the local branch untouched
//
// The decision itself is the pure function [Decide]; backends only perform
// primitive operations.
//
// # Backends
//
//   - [ExecBackend]: calls the git CLI, honoring the user's git configuration
//   - [GoGitBackend]: runs in-process on top of go-git
//
// Both refuse to check out over uncommitted changes and report that as
// [ErrCheckoutConflict].
package git
