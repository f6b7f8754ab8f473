package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// answerMsg carries the result of an Ask command.
type answerMsg struct {
	question string
	answer   *domain.Answer
	err      error
}

// docMsg carries the result of a load or add command.
type docMsg struct {
	verb     string
	location string
	meta     *domain.IndexMetadata
	err      error
}

// App is the chat session model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	input      textinput.Model
	transcript viewport.Model
	spinner    spinner.Model

	// lines is the rendered transcript, appended to as the
	// conversation progresses.
	lines []string

	busy  bool
	ready bool

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat session with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Ask a question, or /load <path-or-url>"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 70

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Muted

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  s,
		input:   ti,
		spinner: sp,
		lines: []string{
			s.Muted.Render("Type a question and press enter. /help lists commands."),
		},
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("docqa chat"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if !a.ready {
			a.transcript = viewport.New(msg.Width, a.transcriptHeight())
			a.ready = true
		} else {
			a.transcript.Width = msg.Width
			a.transcript.Height = a.transcriptHeight()
		}
		a.input.Width = msg.Width - 6
		a.refreshTranscript()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			if a.busy {
				return a, nil
			}
			return a, a.submit()
		default:
		}
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		cmds = append(cmds, cmd)
		a.transcript, cmd = a.transcript.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case answerMsg:
		a.busy = false
		if msg.err != nil {
			a.appendError(msg.err)
			return a, nil
		}
		a.appendAnswer(msg.answer)
		return a, nil

	case docMsg:
		a.busy = false
		if msg.err != nil {
			a.appendError(msg.err)
			return a, nil
		}
		a.appendLine(a.styles.Muted.Render(fmt.Sprintf(
			"%s %s: %d pages, %d chunks",
			msg.verb, msg.meta.DocumentName, msg.meta.Pages, msg.meta.Chunks,
		)))
		return a, nil
	}

	var cmd tea.Cmd
	a.transcript, cmd = a.transcript.Update(msg)
	return a, cmd
}

// submit interprets the input line: slash commands manage documents,
// anything else is a question.
func (a *App) submit() tea.Cmd {
	line := strings.TrimSpace(a.input.Value())
	if line == "" {
		return nil
	}
	a.input.SetValue("")

	if strings.HasPrefix(line, "/") {
		return a.runCommand(line)
	}

	a.appendLine(a.styles.Question.Render("You: ") + line)
	a.busy = true
	return tea.Batch(a.spinner.Tick, a.ask(line))
}

//nolint:gocognit // command dispatch is a flat switch
func (a *App) runCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return tea.Quit

	case "/help":
		a.appendLine(a.styles.Muted.Render(strings.Join([]string{
			"Commands:",
			"  /load <path-or-url> [type]  load a document (replaces the session)",
			"  /add <path-or-url> [type]   add another document",
			"  /info                       show loaded document metadata",
			"  /quit                       leave the chat",
		}, "\n")))
		return nil

	case "/load", "/add":
		if len(fields) < 2 {
			a.appendError(fmt.Errorf("%w: usage: %s <path-or-url> [type]", domain.ErrInvalidInput, fields[0]))
			return nil
		}
		docType := domain.TypeAuto
		if len(fields) > 2 {
			docType = domain.DocumentType(fields[2])
		}
		a.busy = true
		if fields[0] == "/load" {
			return tea.Batch(a.spinner.Tick, a.load(fields[1], docType))
		}
		return tea.Batch(a.spinner.Tick, a.add(fields[1], docType))

	case "/info":
		meta, err := a.ports.Assistant.Info()
		if err != nil {
			a.appendError(err)
			return nil
		}
		a.appendLine(a.styles.Muted.Render(fmt.Sprintf(
			"%s: %d pages, %d chunks, %d characters",
			meta.DocumentName, meta.Pages, meta.Chunks, meta.TotalCharacters,
		)))
		return nil

	default:
		a.appendError(fmt.Errorf("%w: unknown command %s", domain.ErrInvalidInput, fields[0]))
		return nil
	}
}

func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Assistant.Ask(a.ctx, question)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

func (a *App) load(location string, docType domain.DocumentType) tea.Cmd {
	return func() tea.Msg {
		meta, err := a.ports.Assistant.Load(a.ctx, location, docType)
		return docMsg{verb: "Loaded", location: location, meta: meta, err: err}
	}
}

func (a *App) add(location string, docType domain.DocumentType) tea.Cmd {
	return func() tea.Msg {
		meta, err := a.ports.Assistant.Add(a.ctx, location, docType)
		return docMsg{verb: "Added", location: location, meta: meta, err: err}
	}
}

func (a *App) appendAnswer(answer *domain.Answer) {
	a.appendLine(a.styles.Answer.Render(answer.Text))
	for _, src := range answer.Sources {
		ref := fmt.Sprintf("  [%s, page %d]", src.DocumentName, src.Page)
		if src.Section != "" {
			ref += " " + src.Section
		}
		a.appendLine(a.styles.Source.Render(ref))
	}
	a.appendLine("")
}

func (a *App) appendError(err error) {
	a.appendLine(a.styles.Error.Render("Error: " + err.Error()))
}

func (a *App) appendLine(line string) {
	a.lines = append(a.lines, line)
	a.refreshTranscript()
}

func (a *App) refreshTranscript() {
	if !a.ready {
		return
	}
	a.transcript.SetContent(strings.Join(a.lines, "\n"))
	a.transcript.GotoBottom()
}

func (a *App) transcriptHeight() int {
	// Header, input box and status line take the rest.
	h := a.height - 7
	if h < 3 {
		h = 3
	}
	return h
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	header := a.styles.Title.Render("docqa chat")

	status := a.styles.Muted.Render("enter: ask  /help: commands  esc: quit")
	if a.busy {
		status = a.spinner.View() + a.styles.Muted.Render(" thinking...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		a.transcript.View(),
		"",
		a.styles.InputField.Render(a.input.View()),
		status,
	)
}

// Run starts the chat session.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Busy reports whether a request is in flight (for testing).
func (a *App) Busy() bool {
	return a.busy
}

// Transcript returns the rendered transcript lines (for testing).
func (a *App) Transcript() []string {
	return a.lines
}
