package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cpa750/git-sift/internal/cmd"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}

// ExecBackend implements Backend by calling the git CLI.
type ExecBackend struct {
	dir string
}

// OpenExec locates the repository containing dir.
// An empty dir means the current working directory.
func OpenExec(ctx context.Context, dir string) (*ExecBackend, error) {
	if err := CheckGit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}
	out, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		if isCanceled(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}
	return &ExecBackend{dir: strings.TrimSpace(string(out))}, nil
}

func (b *ExecBackend) LocalBranches(ctx context.Context) ([]string, error) {
	return b.listRefs(ctx, "refs/heads/")
}

func (b *ExecBackend) RemoteBranches(ctx context.Context) ([]string, error) {
	return b.listRefs(ctx, "refs/remotes/")
}

// listRefs lists direct refs under prefix with the prefix stripped.
func (b *ExecBackend) listRefs(ctx context.Context, prefix string) ([]string, error) {
	out, err := outputGit(ctx, b.dir, "for-each-ref", "--format=%(refname) %(symref)", prefix)
	if err != nil {
		return nil, err
	}
	return parseRefList(string(out), prefix), nil
}

// parseRefList parses "<refname> <symref>" lines, dropping symbolic refs.
func parseRefList(out, prefix string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ref, symref, _ := strings.Cut(line, " ")
		if symref != "" {
			continue
		}
		name, ok := strings.CutPrefix(ref, prefix)
		if !ok || name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *ExecBackend) ResolveCommit(ctx context.Context, ref string) (string, error) {
	out, err := outputGit(ctx, b.dir, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		if isCanceled(err) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s", ErrReferenceNotFound, ref)
	}
	return strings.TrimSpace(string(out)), nil
}

func (b *ExecBackend) CreateTrackingBranch(ctx context.Context, tb TrackingBranch) error {
	if err := runGit(ctx, b.dir, "branch", "--no-track", tb.Name, tb.Commit); err != nil {
		return fmt.Errorf("create branch %s: %w", tb.Name, err)
	}
	if err := runGit(ctx, b.dir, "config", "branch."+tb.Name+".remote", tb.Remote); err != nil {
		return fmt.Errorf("set upstream of %s: %w", tb.Name, err)
	}
	if err := runGit(ctx, b.dir, "config", "branch."+tb.Name+".merge", LocalRef(tb.Merge)); err != nil {
		return fmt.Errorf("set upstream of %s: %w", tb.Name, err)
	}
	return nil
}

func (b *ExecBackend) CheckoutBranch(ctx context.Context, name string) error {
	if _, err := b.ResolveCommit(ctx, LocalRef(name)); err != nil {
		return err
	}
	return checkoutErr(runGit(ctx, b.dir, "checkout", "--no-guess", name, "--"))
}

func (b *ExecBackend) CheckoutDetached(ctx context.Context, commit string) error {
	return checkoutErr(runGit(ctx, b.dir, "checkout", "--detach", commit))
}

// checkoutErr maps git's refusal to overwrite local changes to
// ErrCheckoutConflict naming the affected paths on one line.
func checkoutErr(err error) error {
	if err == nil || isCanceled(err) {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, "would be overwritten by checkout") &&
		!strings.Contains(msg, "Please commit your changes or stash them") {
		return err
	}
	if paths := refusedPaths(msg); len(paths) > 0 {
		return fmt.Errorf("%w: %s", ErrCheckoutConflict, strings.Join(paths, ", "))
	}
	first, _, _ := strings.Cut(msg, "\n")
	return fmt.Errorf("%w: %s", ErrCheckoutConflict, strings.TrimPrefix(first, "error: "))
}

// refusedPaths returns the tab-indented paths git lists under a refusal.
func refusedPaths(msg string) []string {
	var paths []string
	for _, line := range strings.Split(msg, "\n") {
		if strings.HasPrefix(line, "\t") {
			if p := strings.TrimSpace(line); p != "" {
				paths = append(paths, p)
			}
		}
	}
	return paths
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
