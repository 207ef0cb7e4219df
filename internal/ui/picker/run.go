package picker

import (
	"bytes"
	"context"
	"errors"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"

	"github.com/cpa750/git-sift/internal/config"
	"github.com/cpa750/git-sift/internal/log"
)

// RunParams configures Run.
type RunParams struct {
	Candidates []string // local names followed by remote names
	Needle     string   // initial query
	Keys       config.KeysConfig
	Checkouter Checkouter
}

// Run shows the picker on stderr until the user submits or quits.
//
// Log output produced while the picker is on screen is held back and
// written once the terminal has been restored.
func Run(ctx context.Context, p RunParams) (Result, error) {
	l := log.FromContext(ctx)
	var held bytes.Buffer
	ctx = log.WithLogger(ctx, l.WithWriter(&held))
	defer func() {
		_, _ = held.WriteTo(l.Writer())
	}()

	session := NewSession(p.Candidates, p.Needle, p.Checkouter)
	width, height := terminalSize(os.Stderr)
	m := newModel(ctx, session, NewKeymap(p.Keys), width, height)

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)

	if _, err := prog.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return Result{State: Cancelled}, nil
		}
		return Result{}, err
	}
	return session.Result(), nil
}

// terminalSize returns the size of f, or zeros when f is not a terminal.
func terminalSize(f *os.File) (width, height int) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return 0, 0
	}
	return width, height
}
