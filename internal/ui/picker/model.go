package picker

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/cpa750/git-sift/internal/finder"
)

// pollInterval bounds how long the picker waits for input before redrawing.
const pollInterval = 16 * time.Millisecond

const (
	defaultWidth  = 80
	defaultHeight = 24

	// query box (3) + hint line (1) + results borders (2)
	chromeHeight = 6
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// model adapts a Session to bubbletea.
type model struct {
	ctx     context.Context
	session *Session
	keys    Keymap

	width  int
	height int
	offset int // index of the first visible result
}

// newModel creates a model sized width x height until the first
// WindowSizeMsg arrives. Non-positive sizes fall back to 80x24.
func newModel(ctx context.Context, s *Session, keys Keymap, width, height int) *model {
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	return &model{
		ctx:     ctx,
		session: s,
		keys:    keys,
		width:   width,
		height:  height,
	}
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scroll()

	case tickMsg:
		if m.session.State() == Running {
			return m, tick()
		}

	case tea.KeyPressMsg:
		if m.session.Apply(m.ctx, m.keys.Action(msg)) != Running {
			return m, tea.Quit
		}
		m.scroll()
	}
	return m, nil
}

// rows returns how many results fit in the results box.
func (m *model) rows() int {
	return max(m.height-chromeHeight, 1)
}

// scroll keeps the selected result inside the visible window.
func (m *model) scroll() {
	sel, rows := m.session.Selected(), m.rows()
	switch {
	case sel < m.offset:
		m.offset = sel
	case sel >= m.offset+rows:
		m.offset = sel - rows + 1
	}
	m.offset = max(min(m.offset, len(m.session.Results())-rows), 0)
}

func (m *model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the query box, the hint line and the results box.
// Nothing is drawn once the session has ended.
func (m *model) render() string {
	if m.session.State() != Running {
		return ""
	}
	width := max(m.width, 4)

	query := box("Search", []string{needleStyle().Render(m.session.Needle())}, width)
	hint := fit(hintStyle().Render(m.keys.Hint()), width)

	results := m.session.Results()
	rows := m.rows()
	lines := make([]string, 0, rows)
	if len(results) == 0 {
		lines = append(lines, emptyStyle().Render("No matching branches"))
	}
	end := min(m.offset+rows, len(results))
	for i := m.offset; i < end; i++ {
		lines = append(lines, renderItem(results[i], i == m.session.Selected()))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	title := fmt.Sprintf("Results %d/%d", len(results), m.session.Candidates())

	return lipgloss.JoinVertical(lipgloss.Left, query, hint, box(title, lines, width))
}

// renderItem draws one result, highlighting matched runes.
func renderItem(match finder.Match, selected bool) string {
	base, hl := itemStyle(), matchStyle()
	prefix := "  "
	if selected {
		base, hl = base.Reverse(true), hl.Reverse(true)
		prefix = "> "
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder
	b.WriteString(prefix)
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			b.WriteString(hl.Render(run.String()))
		} else {
			b.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}
	for i, r := range match.Str {
		if matched[i] != runMatched {
			flush()
			runMatched = matched[i]
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}

// box frames lines with a rounded border of the given outer width and sets
// title into the top edge.
func box(title string, lines []string, width int) string {
	border := lipgloss.RoundedBorder()
	bs := borderStyle()
	inner := width - 2

	label := truncate(" "+title+" ", max(inner-1, 0))
	fill := max(inner-1-ansi.StringWidth(label), 0)

	var b strings.Builder
	b.WriteString(bs.Render(border.TopLeft+border.Top) + titleStyle().Render(label) +
		bs.Render(strings.Repeat(border.Top, fill)+border.TopRight))
	for _, line := range lines {
		b.WriteString("\n" + bs.Render(border.Left) + fit(line, inner) + bs.Render(border.Right))
	}
	b.WriteString("\n" + bs.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return b.String()
}

// truncate cuts s to at most width cells, keeping escape sequences intact.
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "")
}

// fit truncates s to width cells and pads it with spaces.
func fit(s string, width int) string {
	s = truncate(s, width)
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
