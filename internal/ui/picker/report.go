package picker

import (
	"strings"

	"github.com/cpa750/git-sift/internal/git"
	"github.com/cpa750/git-sift/internal/output"
)

// Report prints the result of a session. A cancelled session prints nothing.
func Report(p *output.Printer, r Result) {
	if r.State != Submitted {
		return
	}
	if r.Err != nil {
		p.Error("Error checking out branch: %s", oneLine(r.Err.Error()))
		return
	}
	if r.Outcome.Mode == git.DetachedRemote {
		p.Warning("Caution: Checking out a remote ref puts you in a detached HEAD state.")
		p.Success("Successfully checked out remote ref %s.", r.Outcome.Branch)
		return
	}
	p.Success("Successfully checked out %s.", r.Outcome.Branch)
}

// oneLine folds a multi-line message onto a single line.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
