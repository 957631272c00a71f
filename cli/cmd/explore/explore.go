package explore

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/qjsc/compiler"
	"github.com/ardnew/qjsc/log"
)

// Session is the part of a [compiler.Session] the explorer reads.
type Session interface {
	Lookup(current, ref string) (string, error)
	Component(name string) (*compiler.Component, bool)
	Components() []string
	Packages() []string
}

// Options configures [Run].
type Options struct {
	// From is the initial package references are seen from.
	From string
	// CacheDir holds the history file. Empty keeps history in memory.
	CacheDir string
	Logger   log.Logger
}

const (
	prompt       = "➜ "
	defaultWidth = 80
	chainSep     = " → "
)

type command struct {
	name, args, help string
}

//nolint:gochecknoglobals
var commands = []command{
	{"from", "[package]", "Resolve from package (none resets)"},
	{"list", "[pattern]", "List registered components"},
	{"packages", "", "List packages"},
	{"clear", "", "Clear screen"},
	{"help", "", "Print this help"},
	{"quit", "", "Exit"},
}

// Styles.
//
//nolint:gochecknoglobals
var (
	promptStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	packageStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	inputStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = suggestionStyle.Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// model is the Bubble Tea model of the explorer.
type model struct {
	ctxFunc      func() context.Context
	session      Session
	logger       log.Logger
	history      *History
	input        textinput.Model
	names        []string      // registered components, sorted
	from         string        // package references are seen from
	matches      fuzzy.Matches // completions of the current word
	wordStart    int
	wordEnd      int
	suggIdx      int
	historyIdx   int
	preTabCursor int
	width        int
	preTabText   string
	tabActive    bool
	quitting     bool
}

// Run starts the explorer over s and blocks until the user quits.
func Run(ctx context.Context, s Session, opts Options) error {
	history := NewHistory("")
	if opts.CacheDir != "" {
		history = NewHistory(filepath.Join(opts.CacheDir, baseHistory))
	}

	if err := history.Load(); err != nil {
		opts.Logger.WarnContext(ctx, "history not loaded", slog.Any("error", err))
	}

	opts.Logger.TraceContext(ctx, "explore start",
		slog.Int("components", len(s.Components())),
		slog.Int("history", history.Len()),
	)

	_, err := tea.NewProgram(newModel(ctx, s, history, opts), tea.WithContext(ctx)).Run()

	return err
}

func newModel(ctx context.Context, s Session, history *History, opts Options) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	m := model{
		ctxFunc:    func() context.Context { return ctx },
		session:    s,
		logger:     opts.Logger,
		history:    history,
		input:      ti,
		names:      s.Components(),
		from:       opts.From,
		suggIdx:    -1,
		historyIdx: history.Len(),
		width:      defaultWidth,
	}
	m.setPrompt()

	return m
}

func (m *model) setPrompt() {
	m.input.Prompt = promptStyle.Render(prompt)
	if m.from != "" {
		m.input.Prompt = packageStyle.Render(m.from) + " " + m.input.Prompt
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		fmt.Fprintf(&b, "%s\n", hintStyle.Render(fmt.Sprintf("%d/%d", m.historyIdx+1, m.history.Len())))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type a component reference, or :help"))
		b.WriteString("\n")

	default:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.recall(m.historyIdx - 1), nil

	case tea.KeyDown:
		return m.recall(m.historyIdx + 1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()
		}

		return m, nil
	}

	if msg.Type == tea.KeyRunes && m.tabActive && msg.String() == " " {
		m.tabActive = false
	} else if msg.Type != tea.KeyRunes {
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle moves the selected completion by step, entering tab-cycling on the
// first call. A single candidate completes immediately.
func (m model) cycle(step int) model {
	switch len(m.matches) {
	case 0:
		return m

	case 1:
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// recall shows history entry i; past the newest entry the input is cleared.
func (m model) recall(i int) model {
	if i < 0 {
		return m
	}

	m.tabActive = false

	line, ok := m.history.Get(i)
	if !ok {
		i = m.history.Len()
	}

	m.historyIdx = i
	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	m.refreshMatches()

	return m
}

func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(s))
	m.wordEnd = m.wordStart + len(s)
}

func (m *model) refreshMatches() {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(line); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "history not saved", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(m.input.Prompt + inputStyle.Render(line))

	m, out, cmd := m.execute(line)
	m.setPrompt()

	var cmds []tea.Cmd

	cmds = append(cmds, echo)
	if out != "" {
		cmds = append(cmds, tea.Println(out))
	}

	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Sequence(cmds...)
}

// execute runs one line and returns the styled text to print and the
// command to run afterwards, if any.
func (m model) execute(line string) (model, string, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "explore input",
		slog.String("line", line),
		slog.String("from", m.from),
	)

	if !strings.HasPrefix(line, ":") {
		chain, err := m.resolve(line)
		if err != nil {
			return m, errorStyle.Render(err.Error()), nil
		}

		return m, resultStyle.Render(chain), nil
	}

	fields := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(fields) == 0 {
		return m, "", nil
	}

	name, args := fields[0], fields[1:]

	switch name {
	case "from":
		if len(args) == 0 {
			m.from = ""

			return m, hintStyle.Render("resolving from the top level"), nil
		}

		pkg := compiler.EscapePackage(args[0])
		if !slices.Contains(m.session.Packages(), pkg) {
			return m, errorStyle.Render("unknown package " + args[0]), nil
		}

		m.from = pkg

		return m, hintStyle.Render("resolving from " + pkg), nil

	case "list":
		names := m.names
		if len(args) > 0 {
			names = nil
			for _, match := range fuzzy.Find(args[0], m.names) {
				names = append(names, match.Str)
			}
		}

		return m, strings.Join(names, "\n"), nil

	case "packages":
		return m, strings.Join(m.session.Packages(), "\n"), nil

	case "clear":
		return m, "", tea.ClearScreen

	case "help":
		return m, help(), nil

	case "quit", "q", "exit":
		m.quitting = true

		return m, "", tea.Quit

	default:
		return m, errorStyle.Render("unknown command :" + name + " (try :help)"), nil
	}
}

// resolve resolves ref from the current package and returns the component
// followed by its base chain.
func (m model) resolve(ref string) (string, error) {
	name, err := m.session.Lookup(m.from, ref)
	if err != nil {
		return "", err
	}

	chain := []string{name}

	for {
		c, ok := m.session.Component(name)
		if !ok {
			break
		}

		base, err := m.session.Lookup(c.Package, c.Body.Base())
		if err != nil {
			chain = append(chain, "?"+c.Body.Base())

			break
		}

		if slices.Contains(chain, base) {
			chain = append(chain, base+" (cycle)")

			break
		}

		chain = append(chain, base)
		name = base
	}

	return strings.Join(chain, chainSep), nil
}

func help() string {
	var b strings.Builder

	b.WriteString("Commands:\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  :%-9s %-10s %s\n", c.name, c.args, c.help)
	}

	b.WriteString(`
Type a component reference to resolve it from the current package.
Press Tab / Shift-Tab to cycle through completions, Esc to cancel.
Use Up/Down for history. Press Ctrl+C on an empty line or Ctrl+D to exit.`)

	return hintStyle.Render(b.String())
}
