package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	pathpkg "path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/cpa750/git-sift/internal/log"
)

// GoGitBackend implements Backend in-process with go-git.
type GoGitBackend struct {
	repo *gogit.Repository
}

// OpenGoGit opens the repository containing path, searching parent
// directories for .git.
func OpenGoGit(ctx context.Context, path string) (*GoGitBackend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}
	log.FromContext(ctx).Debug("opened repository", "backend", "go-git", "path", path)
	return NewGoGitBackend(repo), nil
}

// NewGoGitBackend wraps an already opened repository.
func NewGoGitBackend(repo *gogit.Repository) *GoGitBackend {
	return &GoGitBackend{repo: repo}
}

func (b *GoGitBackend) LocalBranches(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	iter, err := b.repo.Branches()
	if err != nil {
		return nil, err
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (b *GoGitBackend) RemoteBranches(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	iter, err := b.repo.References()
	if err != nil {
		return nil, err
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsRemote() && ref.Type() == plumbing.HashReference {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (b *GoGitBackend) ResolveCommit(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r, err := b.repo.Reference(plumbing.ReferenceName(ref), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", fmt.Errorf("%w: %s", ErrReferenceNotFound, ref)
		}
		return "", err
	}
	commit, err := b.repo.CommitObject(r.Hash())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReferenceNotFound, ref, err)
	}
	return commit.Hash.String(), nil
}

func (b *GoGitBackend) CreateTrackingBranch(ctx context.Context, tb TrackingBranch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := plumbing.NewBranchReferenceName(tb.Name)
	ref := plumbing.NewHashReference(name, plumbing.NewHash(tb.Commit))
	if err := b.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("create branch %s: %w", tb.Name, err)
	}
	err := b.repo.CreateBranch(&config.Branch{
		Name:   tb.Name,
		Remote: tb.Remote,
		Merge:  plumbing.NewBranchReferenceName(tb.Merge),
	})
	if err != nil {
		return fmt.Errorf("set upstream of %s: %w", tb.Name, err)
	}
	return nil
}

func (b *GoGitBackend) CheckoutBranch(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	branch := plumbing.NewBranchReferenceName(name)
	ref, err := b.repo.Reference(branch, true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("%w: %s", ErrReferenceNotFound, branch)
		}
		return err
	}
	return b.checkout(ctx, ref.Hash(), &gogit.CheckoutOptions{Branch: branch, Keep: true})
}

func (b *GoGitBackend) CheckoutDetached(ctx context.Context, commit string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hash := plumbing.NewHash(commit)
	return b.checkout(ctx, hash, &gogit.CheckoutOptions{Hash: hash, Keep: true})
}

// checkout moves HEAD to target and rewrites only the paths that differ
// between the HEAD and target trees; every other file is left alone.
// opts must carry Keep so go-git leaves the worktree to this function.
func (b *GoGitBackend) checkout(ctx context.Context, target plumbing.Hash, opts *gogit.CheckoutOptions) error {
	wt, err := b.repo.Worktree()
	if err != nil {
		return err
	}
	head, err := b.repo.Head()
	if err != nil {
		return err
	}
	from, err := b.treeAt(head.Hash())
	if err != nil {
		return err
	}
	to, err := b.treeAt(target)
	if err != nil {
		return err
	}

	status, err := wt.Status()
	if err != nil {
		return err
	}
	if paths := conflictingPaths(status, to); len(paths) > 0 {
		return fmt.Errorf("%w: %s", ErrCheckoutConflict, strings.Join(paths, ", "))
	}

	changes, err := object.DiffTreeWithOptions(ctx, from, to, nil)
	if err != nil {
		return err
	}
	for _, ch := range changes {
		if err := applyChange(wt.Filesystem, ch); err != nil {
			return err
		}
	}

	if err := wt.Checkout(opts); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("%w: %w", ErrReferenceNotFound, err)
		}
		return err
	}
	return wt.Reset(&gogit.ResetOptions{Commit: target, Mode: gogit.MixedReset})
}

func (b *GoGitBackend) treeAt(hash plumbing.Hash) (*object.Tree, error) {
	commit, err := b.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReferenceNotFound, hash, err)
	}
	return commit.Tree()
}

// conflictingPaths lists what a checkout to the tree to would destroy:
// every tracked path with staged or unstaged changes, and every untracked
// path that to would write over.
func conflictingPaths(status gogit.Status, to *object.Tree) []string {
	var paths []string
	for path, fs := range status {
		if fs.Staging == gogit.Untracked || fs.Worktree == gogit.Untracked {
			if collides(to, path) {
				paths = append(paths, path)
			}
			continue
		}
		if fs.Staging != gogit.Unmodified || fs.Worktree != gogit.Unmodified {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// collides reports whether to holds path itself or a file at one of
// its parent directories.
func collides(to *object.Tree, path string) bool {
	if _, err := to.FindEntry(path); err == nil {
		return true
	}
	for dir := pathpkg.Dir(path); dir != "."; dir = pathpkg.Dir(dir) {
		if e, err := to.FindEntry(dir); err == nil && e.Mode != filemode.Dir {
			return true
		}
	}
	return false
}

// applyChange writes one tree change to fs.
func applyChange(fs billy.Filesystem, ch *object.Change) error {
	action, err := ch.Action()
	if err != nil {
		return err
	}
	if action == merkletrie.Delete {
		return removeFile(fs, ch.From.Name)
	}

	name, entry := ch.To.Name, ch.To.TreeEntry
	if !validPath(name) {
		return fmt.Errorf("invalid path in tree: %q", name)
	}
	if entry.Mode == filemode.Submodule {
		return nil
	}
	if action == merkletrie.Modify {
		if err := fs.Remove(name); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	f, err := ch.To.Tree.TreeEntryFile(&entry)
	if err != nil {
		return err
	}
	f.Name = name
	return writeFile(fs, f)
}

func writeFile(fs billy.Filesystem, f *object.File) (err error) {
	mode, err := f.Mode.ToOSFileMode()
	if err != nil {
		return err
	}
	if dir := pathpkg.Dir(f.Name); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	if mode&os.ModeSymlink != 0 {
		target, err := f.Contents()
		if err != nil {
			return err
		}
		return fs.Symlink(target, f.Name)
	}

	r, err := f.Reader()
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := fs.OpenFile(f.Name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(w, r)
	return err
}

// removeFile deletes name and any parent directories it leaves empty.
func removeFile(fs billy.Filesystem, name string) error {
	if err := fs.Remove(name); err != nil && !os.IsNotExist(err) {
		return err
	}
	for dir := pathpkg.Dir(name); dir != "."; dir = pathpkg.Dir(dir) {
		entries, err := fs.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			break
		}
		if err := fs.Remove(dir); err != nil {
			break
		}
	}
	return nil
}

// validPath rejects tree paths that would escape the worktree or touch .git.
func validPath(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if part == ".." || strings.EqualFold(part, ".git") {
			return false
		}
	}
	return true
}
