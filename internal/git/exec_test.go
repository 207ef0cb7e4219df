package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// requireGit skips the test when git is not installed.
func requireGit(t *testing.T) {
	t.Helper()
	if err := CheckGit(); err != nil {
		t.Skip(err)
	}
}

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

func mustGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := outputGit(context.Background(), dir, args...)
	if err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
	return strings.TrimSpace(string(out))
}

// configureTestRepo sets git user config and disables GPG signing.
func configureTestRepo(t *testing.T, repoPath string) {
	t.Helper()
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		mustGit(t, repoPath, args...)
	}
}

func writeReadme(t *testing.T, repoPath, content string) {
	t.Helper()
	writeFile(t, repoPath, "README.md", content)
}

func writeFile(t *testing.T, repoPath, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(repoPath, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func readFile(t *testing.T, repoPath, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(repoPath, name))
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	return string(data)
}

// execFixture is a repository with
//
//	local:  main=c1, dev=c1
//	remote: origin/main=c1 or c2, origin/feature=c2, origin/HEAD -> origin/main
//
// where c2 changes README.md and adds NOTES.md.
type execFixture struct {
	path string
	c1   string
	c2   string
}

func setupExecRepo(t *testing.T, diverged bool) *execFixture {
	t.Helper()
	requireGit(t)

	repoPath := filepath.Join(resolveTempDir(t), "test-repo")
	mustGit(t, "", "init", "-b", "main", repoPath)
	configureTestRepo(t, repoPath)

	writeReadme(t, repoPath, "# one\n")
	mustGit(t, repoPath, "add", "README.md")
	mustGit(t, repoPath, "commit", "-m", "first")
	c1 := mustGit(t, repoPath, "rev-parse", "HEAD")
	mustGit(t, repoPath, "branch", "dev")

	writeReadme(t, repoPath, "# two\n")
	writeFile(t, repoPath, "NOTES.md", "notes\n")
	mustGit(t, repoPath, "add", "README.md", "NOTES.md")
	mustGit(t, repoPath, "commit", "-m", "second")
	c2 := mustGit(t, repoPath, "rev-parse", "HEAD")
	mustGit(t, repoPath, "reset", "--hard", c1)

	originMain := c1
	if diverged {
		originMain = c2
	}
	mustGit(t, repoPath, "update-ref", "refs/remotes/origin/main", originMain)
	mustGit(t, repoPath, "update-ref", "refs/remotes/origin/feature", c2)
	mustGit(t, repoPath, "symbolic-ref", "refs/remotes/origin/HEAD", "refs/remotes/origin/main")

	return &execFixture{path: repoPath, c1: c1, c2: c2}
}

func (f *execFixture) open(t *testing.T) *Repo {
	t.Helper()
	ctx := context.Background()
	b, err := OpenExec(ctx, f.path)
	if err != nil {
		t.Fatalf("OpenExec() error = %v", err)
	}
	r, err := Open(ctx, b, Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return r
}

func TestParseRefList(t *testing.T) {
	t.Parallel()

	out := "refs/remotes/origin/HEAD refs/remotes/origin/main\n" +
		"refs/remotes/upstream/dev \n" +
		"refs/remotes/origin/main \n" +
		"refs/remotes/origin/feature/x \n\n"

	got := parseRefList(out, "refs/remotes/")
	want := []string{"origin/feature/x", "origin/main", "upstream/dev"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseRefList() = %v, want %v", got, want)
	}
}

func TestOpenExec_NotARepo(t *testing.T) {
	t.Parallel()
	requireGit(t)

	_, err := OpenExec(context.Background(), resolveTempDir(t))
	if !errors.Is(err, ErrRepositoryUnavailable) {
		t.Errorf("OpenExec(empty dir) error = %v, want ErrRepositoryUnavailable", err)
	}
}

func TestExecBackend_List(t *testing.T) {
	t.Parallel()

	f := setupExecRepo(t, false)
	r := f.open(t)

	want := []Branch{
		{Name: "dev", Kind: Local},
		{Name: "main", Kind: Local},
		{Name: "origin/feature", Kind: Remote},
		{Name: "origin/main", Kind: Remote},
	}
	if got := r.Branches(); !reflect.DeepEqual(got, want) {
		t.Errorf("Branches() = %v, want %v", got, want)
	}
}

func TestExecBackend_Checkout(t *testing.T) {
	t.Parallel()

	t.Run("local branch", func(t *testing.T) {
		t.Parallel()
		f := setupExecRepo(t, false)
		r := f.open(t)

		got, err := r.Checkout(context.Background(), "dev")
		if err != nil {
			t.Fatalf("Checkout(dev) error = %v", err)
		}
		if got != (Outcome{Branch: "dev", Mode: AttachedLocal}) {
			t.Errorf("Checkout(dev) = %+v, want attached dev", got)
		}
		if head := mustGit(t, f.path, "symbolic-ref", "--short", "HEAD"); head != "dev" {
			t.Errorf("HEAD = %q, want dev", head)
		}
	})

	t.Run("remote creates tracking branch", func(t *testing.T) {
		t.Parallel()
		f := setupExecRepo(t, false)
		r := f.open(t)

		got, err := r.Checkout(context.Background(), "origin/feature")
		if err != nil {
			t.Fatalf("Checkout(origin/feature) error = %v", err)
		}
		if got != (Outcome{Branch: "feature", Mode: AttachedLocal}) {
			t.Errorf("Checkout(origin/feature) = %+v, want attached feature", got)
		}
		if head := mustGit(t, f.path, "symbolic-ref", "--short", "HEAD"); head != "feature" {
			t.Errorf("HEAD = %q, want feature", head)
		}
		if c := mustGit(t, f.path, "rev-parse", "feature"); c != f.c2 {
			t.Errorf("feature = %s, want %s", c, f.c2)
		}
		if remote := mustGit(t, f.path, "config", "branch.feature.remote"); remote != "origin" {
			t.Errorf("branch.feature.remote = %q, want origin", remote)
		}
		if merge := mustGit(t, f.path, "config", "branch.feature.merge"); merge != "refs/heads/feature" {
			t.Errorf("branch.feature.merge = %q, want refs/heads/feature", merge)
		}
	})

	t.Run("remote up to date", func(t *testing.T) {
		t.Parallel()
		f := setupExecRepo(t, false)
		mustGit(t, f.path, "checkout", "dev")
		r := f.open(t)

		got, err := r.Checkout(context.Background(), "origin/main")
		if err != nil {
			t.Fatalf("Checkout(origin/main) error = %v", err)
		}
		if got != (Outcome{Branch: "main", Mode: AttachedLocal}) {
			t.Errorf("Checkout(origin/main) = %+v, want attached main", got)
		}
		if head := mustGit(t, f.path, "symbolic-ref", "--short", "HEAD"); head != "main" {
			t.Errorf("HEAD = %q, want main", head)
		}
	})

	t.Run("remote diverged detaches", func(t *testing.T) {
		t.Parallel()
		f := setupExecRepo(t, true)
		r := f.open(t)

		got, err := r.Checkout(context.Background(), "origin/main")
		if err != nil {
			t.Fatalf("Checkout(origin/main) error = %v", err)
		}
		if got != (Outcome{Branch: "origin/main", Mode: DetachedRemote}) {
			t.Errorf("Checkout(origin/main) = %+v, want detached origin/main", got)
		}
		if err := runGit(context.Background(), f.path, "symbolic-ref", "-q", "HEAD"); err == nil {
			t.Error("HEAD is attached, want detached")
		}
		if head := mustGit(t, f.path, "rev-parse", "HEAD"); head != f.c2 {
			t.Errorf("HEAD = %s, want %s", head, f.c2)
		}
		if main := mustGit(t, f.path, "rev-parse", "main"); main != f.c1 {
			t.Errorf("main = %s, want %s unchanged", main, f.c1)
		}
	})

	dirty := []struct {
		name    string
		prepare func(t *testing.T, f *execFixture)
		path    string
		want    string
	}{
		{
			name: "unstaged edit",
			prepare: func(t *testing.T, f *execFixture) {
				writeReadme(t, f.path, "# local edit\n")
			},
			path: "README.md",
			want: "# local edit\n",
		},
		{
			name: "staged edit",
			prepare: func(t *testing.T, f *execFixture) {
				writeReadme(t, f.path, "# staged edit\n")
				mustGit(t, f.path, "add", "README.md")
			},
			path: "README.md",
			want: "# staged edit\n",
		},
		{
			name: "untracked file in the way",
			prepare: func(t *testing.T, f *execFixture) {
				writeFile(t, f.path, "NOTES.md", "my own notes\n")
			},
			path: "NOTES.md",
			want: "my own notes\n",
		},
	}
	for _, tt := range dirty {
		t.Run(tt.name+" refuses checkout", func(t *testing.T) {
			t.Parallel()
			f := setupExecRepo(t, true)
			r := f.open(t)
			tt.prepare(t, f)

			_, err := r.Checkout(context.Background(), "origin/main")
			if !errors.Is(err, ErrCheckoutConflict) {
				t.Fatalf("Checkout(origin/main) error = %v, want ErrCheckoutConflict", err)
			}
			if msg := err.Error(); strings.Contains(msg, "\n") || !strings.Contains(msg, tt.path) {
				t.Errorf("error = %q, want one line naming %s", msg, tt.path)
			}
			if head := mustGit(t, f.path, "symbolic-ref", "--short", "HEAD"); head != "main" {
				t.Errorf("HEAD = %q, want main", head)
			}
			if got := readFile(t, f.path, tt.path); got != tt.want {
				t.Errorf("%s = %q, want %q kept", tt.path, got, tt.want)
			}
		})
	}

	t.Run("missing local branch", func(t *testing.T) {
		t.Parallel()
		f := setupExecRepo(t, false)
		b, err := OpenExec(context.Background(), f.path)
		if err != nil {
			t.Fatalf("OpenExec() error = %v", err)
		}
		if err := b.CheckoutBranch(context.Background(), "nosuch"); !errors.Is(err, ErrReferenceNotFound) {
			t.Errorf("CheckoutBranch(nosuch) error = %v, want ErrReferenceNotFound", err)
		}
	})
}

func TestCheckoutErr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		wantConflict bool
		want         string
	}{
		{
			name: "local changes",
			err: errors.New("error: Your local changes to the following files would be overwritten by checkout:\n" +
				"\tREADME.md\n\tdocs/guide.md\n" +
				"Please commit your changes or stash them before you switch branches.\nAborting"),
			wantConflict: true,
			want:         "checkout would overwrite local changes: README.md, docs/guide.md",
		},
		{
			name: "untracked files",
			err: errors.New("error: The following untracked working tree files would be overwritten by checkout:\n" +
				"\tNOTES.md\nPlease move or remove them before you switch branches.\nAborting"),
			wantConflict: true,
			want:         "checkout would overwrite local changes: NOTES.md",
		},
		{
			name:         "no path list",
			err:          errors.New("error: Please commit your changes or stash them before you switch branches.\nAborting"),
			wantConflict: true,
			want:         "checkout would overwrite local changes: Please commit your changes or stash them before you switch branches.",
		},
		{
			name: "other failure",
			err:  errors.New("fatal: reference is not a tree: abc"),
			want: "fatal: reference is not a tree: abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := checkoutErr(tt.err)
			if errors.Is(got, ErrCheckoutConflict) != tt.wantConflict {
				t.Errorf("checkoutErr() = %v, want conflict %v", got, tt.wantConflict)
			}
			if got.Error() != tt.want {
				t.Errorf("checkoutErr() = %q, want %q", got.Error(), tt.want)
			}
		})
	}

	if err := checkoutErr(nil); err != nil {
		t.Errorf("checkoutErr(nil) = %v, want nil", err)
	}
}
