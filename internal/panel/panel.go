// Package panel is the interactive terminal front end: a keyword field, a
// depth field and a collapsible results pane.
package panel

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentic-research/keysearch/internal/search"
	"github.com/agentic-research/keysearch/internal/tree"
)

const (
	defaultWidth   = 80
	resultsHeight  = 15
	focusKeyword   = 0
	focusDepth     = 1
	keyToggle      = "ctrl+t"
	keyQuit        = "ctrl+c"
	keyEsc         = "esc"
	panelTitle     = "Keyword Searcher"
	collapsedGlyph = "▶"
	expandedGlyph  = "▼"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#007ACC")).
			Padding(0, 1)
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#007ACC"))
	resultsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#DDDDDD"))
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// resultMsg carries a finished search back into the update loop.
type resultMsg struct {
	seq  int
	resp search.Response
}

// Model is the bubbletea model of the panel.
type Model struct {
	root *tree.Node
	opts search.Options

	keyword  textinput.Model
	depth    textinput.Model
	results  viewport.Model
	focus    int
	expanded bool
	width    int

	// seq numbers searches so a slow earlier run cannot overwrite a later one.
	seq  int
	last search.Response
}

// New builds a panel searching root. opts.MaxDepth seeds the depth field.
func New(root *tree.Node, opts search.Options) Model {
	kw := textinput.New()
	kw.Placeholder = "enter keyword..."
	kw.Prompt = "keyword: "
	kw.Focus()

	depth := opts.MaxDepth
	if depth == 0 {
		depth = search.DefaultMaxDepth
	}
	d := textinput.New()
	d.Prompt = "depth: "
	d.CharLimit = 12
	d.SetValue(strconv.Itoa(depth))

	vp := viewport.New(defaultWidth-4, resultsHeight)
	vp.SetContent("")

	return Model{
		root:     root,
		opts:     opts,
		keyword:  kw,
		depth:    d,
		results:  vp,
		expanded: true,
		width:    defaultWidth,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.results.Width = max(msg.Width-4, 10)
		return m, nil

	case resultMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.last = msg.resp
		m.results.SetContent(msg.resp.Text)
		m.results.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case keyQuit, keyEsc:
			return m, tea.Quit
		case keyToggle:
			m.expanded = !m.expanded
			return m, nil
		case "tab", "shift+tab":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "enter":
			return m.submit()
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.focus == focusKeyword {
		m.keyword, cmd = m.keyword.Update(msg)
	} else {
		m.depth, cmd = m.depth.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f int) {
	m.focus = f
	if f == focusKeyword {
		m.keyword.Focus()
		m.depth.Blur()
	} else {
		m.depth.Focus()
		m.keyword.Blur()
	}
}

// submit starts a search. An empty keyword is answered immediately.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.expanded = true
	if strings.TrimSpace(m.keyword.Value()) == "" {
		m.last = search.Response{Text: search.MsgEmptyKeyword}
		m.results.SetContent(m.last.Text)
		return m, nil
	}

	m.seq++
	seq := m.seq
	root, opts := m.root, m.opts
	req := search.Request{Keyword: m.keyword.Value(), Depth: m.depth.Value(), Options: opts}
	m.results.SetContent(search.MsgSearching)
	return m, func() tea.Msg {
		return resultMsg{seq: seq, resp: search.Run(root, req)}
	}
}

// Response returns the outcome of the most recent completed search.
func (m Model) Response() search.Response { return m.last }

// View implements tea.Model.
func (m Model) View() string {
	glyph := expandedGlyph
	if !m.expanded {
		glyph = collapsedGlyph
	}
	header := headerStyle.Width(max(m.width-2, 10)).Render(glyph + " " + panelTitle)
	if !m.expanded {
		return frameStyle.Render(header)
	}

	sections := []string{
		header,
		m.keyword.View(),
		m.depth.View(),
		resultsStyle.Render(m.results.View()),
		hintStyle.Render("enter: search • tab: switch field • ctrl+t: collapse • esc: quit"),
	}
	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// Run starts the panel on the terminal and blocks until the user quits.
func Run(root *tree.Node, opts search.Options) error {
	_, err := tea.NewProgram(New(root, opts)).Run()
	return err
}
