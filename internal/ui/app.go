// Package ui implements the terminal interface of the chat client.
//
// It is a bubbletea program composed of a category sidebar, the transcript
// view, the free-text input, and the query-builder overlay. All backend
// calls run inside commands; their results come back as messages carrying
// the request they answer, so the pure cores in the wizard and
// conversation packages can match them against their current epoch.
package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/catalog"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/conversation"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/gateway"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/store"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/wizard"
)

const sidebarWidth = 34

type focusArea int

const (
	focusSidebar focusArea = iota
	focusInput
)

// Messages delivered by commands.
type (
	wizardLoadMsg struct {
		req wizard.LoadRequest
		res wizard.LoadResult
		err error
	}
	searchDoneMsg struct {
		call *conversation.Call
		resp *models.SearchResponse
		err  error
	}
	healthCheckMsg struct{ err error }
	historyCountMsg struct {
		n   int
		err error
	}
	archiveDoneMsg struct{ err error }
)

// App is the root bubbletea model.
type App struct {
	gw   *gateway.Client
	conv *conversation.Controller
	hist store.Store

	wiz       *wizard.Builder
	wizSearch textinput.Model
	wizCursor int
	wizNotice string

	input textarea.Model
	vp    viewport.Model
	spin  spinner.Model
	md    *glamour.TermRenderer

	focus      focusArea
	category   string
	catCursor  int
	tmplCursor int

	width, height int
	ready         bool
	healthErr     error
	sessionCount  int
}

// New assembles the application model.
func New(gw *gateway.Client, conv *conversation.Controller, hist store.Store) *App {
	input := textarea.New()
	input.Placeholder = "질문을 입력하세요..."
	input.SetHeight(3)
	input.CharLimit = 2000
	input.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	search := textinput.New()
	search.Placeholder = "담보명 검색..."
	search.CharLimit = 100

	return &App{
		gw:        gw,
		conv:      conv,
		hist:      hist,
		input:     input,
		spin:      sp,
		wizSearch: search,
		focus:     focusSidebar,
	}
}

// Init starts the spinner and probes backend health.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, healthCheckCmd(a.gw), historyCountCmd(a.hist))
}

// Update routes messages to the active component.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case healthCheckMsg:
		a.healthErr = msg.err
		return a, nil

	case historyCountMsg:
		if msg.err == nil {
			a.sessionCount = msg.n
		}
		return a, nil

	case archiveDoneMsg:
		return a, historyCountCmd(a.hist)

	case wizardLoadMsg:
		if a.wiz != nil {
			a.wiz.Resolve(msg.req, msg.res, msg.err)
			a.wizCursor = 0
		}
		return a, nil

	case searchDoneMsg:
		a.conv.Resolve(msg.call, msg.resp, msg.err)
		a.refreshTranscript()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Sequence(a.archiveCmd(), tea.Quit)
	case "ctrl+n":
		return a.newChat()
	}

	if a.wiz != nil {
		return a.handleWizardKey(msg)
	}

	switch msg.String() {
	case "tab":
		a.toggleFocus()
		return a, nil
	case "ctrl+b":
		return a.openWizard(nil)
	}

	if a.focus == focusSidebar {
		return a.handleSidebarKey(msg)
	}
	return a.handleInputKey(msg)
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		call, err := a.conv.Submit(a.input.Value())
		switch {
		case errors.Is(err, models.ErrBusy):
			// in-flight or locked: deliberate no-op
			return a, nil
		case err != nil:
			return a, nil
		default:
			a.input.Reset()
			a.refreshTranscript()
			return a, searchCmd(a.gw, call)
		}
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.conv.SetInput(a.input.Value())
	return a, cmd
}

func (a *App) toggleFocus() {
	if a.focus == focusSidebar {
		a.focus = focusInput
		a.input.Focus()
	} else {
		a.focus = focusSidebar
		a.input.Blur()
	}
}

func (a *App) newChat() (tea.Model, tea.Cmd) {
	a.wiz = nil
	a.category = ""
	a.catCursor = 0
	a.tmplCursor = 0
	a.input.Reset()
	session := a.conv.Reset()
	a.refreshTranscript()
	if session == nil {
		return a, nil
	}
	return a, saveSessionCmd(a.hist, *session)
}

func (a *App) openWizard(pre *catalog.InfoType) (tea.Model, tea.Cmd) {
	a.wiz = wizard.New(pre)
	a.wizCursor = 0
	a.wizNotice = ""
	a.wizSearch.Reset()
	req := a.wiz.Start()
	return a, wizardLoadCmd(a.gw, &req)
}

func (a *App) resize(w, h int) {
	a.width = w
	a.height = h

	chatWidth := w - sidebarWidth - 4
	if chatWidth < 20 {
		chatWidth = 20
	}
	vpHeight := h - a.input.Height() - 6
	if vpHeight < 5 {
		vpHeight = 5
	}
	if !a.ready {
		a.vp = viewport.New(chatWidth, vpHeight)
		a.ready = true
	} else {
		a.vp.Width = chatWidth
		a.vp.Height = vpHeight
	}
	a.input.SetWidth(chatWidth)

	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(chatWidth-2),
	); err == nil {
		a.md = r
	}
	a.refreshTranscript()
}

// archiveCmd archives the live session on quit.
func (a *App) archiveCmd() tea.Cmd {
	session := a.conv.Reset()
	if session == nil {
		return nil
	}
	return saveSessionCmd(a.hist, *session)
}

// Commands

func wizardLoadCmd(gw *gateway.Client, req *wizard.LoadRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	return func() tea.Msg {
		ctx := context.Background()
		var res wizard.LoadResult
		var err error
		switch r.Kind {
		case wizard.LoadCompanies:
			res.Companies, err = gw.ListCompanies(ctx)
		case wizard.LoadProducts:
			res.Products, err = gw.ListProducts(ctx, r.Company)
		case wizard.LoadCoverages:
			res.Coverages, err = gw.ListProductCoverages(ctx, r.Company, r.Product)
		case wizard.LoadCoverageNames:
			res.CoverageNames, err = gw.ListCoverageNames(ctx)
		}
		return wizardLoadMsg{req: r, res: res, err: err}
	}
}

func searchCmd(gw *gateway.Client, call *conversation.Call) tea.Cmd {
	return func() tea.Msg {
		resp, err := gw.Search(context.Background(), call.Request)
		return searchDoneMsg{call: call, resp: resp, err: err}
	}
}

func healthCheckCmd(gw *gateway.Client) tea.Cmd {
	return func() tea.Msg {
		return healthCheckMsg{err: gw.Health(context.Background())}
	}
}

func historyCountCmd(hist store.Store) tea.Cmd {
	return func() tea.Msg {
		n, err := hist.CountSessions()
		return historyCountMsg{n: n, err: err}
	}
}

func saveSessionCmd(hist store.Store, session models.ChatSession) tea.Cmd {
	return func() tea.Msg {
		return archiveDoneMsg{err: hist.SaveSession(session)}
	}
}
