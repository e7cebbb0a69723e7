package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/hyquery/internal/config"
	"github.com/five82/hyquery/internal/eventlog"
	"github.com/five82/hyquery/internal/prefs"
	"github.com/five82/hyquery/internal/query"
	"github.com/five82/hyquery/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewPlayers
	ViewPlugins
	ViewRaw
	ViewLogs
	viewCount
)

func (v View) String() string {
	switch v {
	case ViewPlayers:
		return "Players"
	case ViewPlugins:
		return "Plugins"
	case ViewRaw:
		return "Raw"
	case ViewLogs:
		return "Logs"
	default:
		return "Dashboard"
	}
}

func viewFromName(name string) View {
	for v := ViewDashboard; v < viewCount; v++ {
		if v.String() == name {
			return v
		}
	}
	return ViewDashboard
}

// Controller is the set of operator actions the UI can trigger.
type Controller interface {
	FetchNow() (state.Outcome, bool)
	TogglePolling()
	StepInterval(dir int) time.Duration
	Polling() (bool, time.Duration)
	Config() config.Config
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller Controller
	Store      *state.Store
	Events     *eventlog.Buffer
	Tick       time.Duration // snapshot refresh rate; zero means one second
	ThemeName  string        // overrides the saved theme
	PrefsPath  string        // empty disables loading and saving UI prefs
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx    context.Context
	ctrl   Controller
	store  *state.Store
	events *eventlog.Buffer
	tick   time.Duration

	prefsPath string

	theme Theme
	keys  keyMap
	help  help.Model

	view     View
	width    int
	height   int
	ready    bool
	showHelp bool

	snapshot state.Snapshot
	response *query.Response // last decoded response, kept across failures
	cfg      config.Config
	polling  bool
	interval time.Duration
	fetching bool
	notice   string

	pages  [viewCount]viewport.Model
	follow bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = time.Second
	}

	saved := prefs.Default()
	if opts.PrefsPath != "" {
		saved = prefs.Load(opts.PrefsPath)
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = saved.Theme
	}
	theme := GetTheme(themeName)

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		store:     opts.Store,
		events:    opts.Events,
		tick:      tick,
		prefsPath: opts.PrefsPath,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      newHelp(theme),
		view:      viewFromName(saved.View),
		follow:    true,
	}
	for i := range m.pages {
		m.pages[i] = viewport.New(0, 0)
	}
	m.syncController()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.ctx != nil {
		cmds = append(cmds, waitDoneCmd(m.ctx))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizePages()
		m.refreshPages()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.tick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		m.syncController()
		m.refreshPages()
		return m, nil

	case fetchDoneMsg:
		m.fetching = false
		if !msg.ran {
			m.notice = "Fetch skipped: request already in flight"
		} else {
			m.notice = ""
		}
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil

	case doneMsg:
		m.savePrefs()
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBox(m.pageTitle(), m.pages[m.view].View(), m.width, m.height-2))
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.help = newHelp(m.theme)
		m.help.Width = m.width
		m.refreshPages()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.view = (m.view + 1) % viewCount
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.view = (m.view + viewCount - 1) % viewCount
		return m, nil

	case key.Matches(msg, m.keys.ViewDashboard):
		m.view = ViewDashboard
		return m, nil
	case key.Matches(msg, m.keys.ViewPlayers):
		m.view = ViewPlayers
		return m, nil
	case key.Matches(msg, m.keys.ViewPlugins):
		m.view = ViewPlugins
		return m, nil
	case key.Matches(msg, m.keys.ViewRaw):
		m.view = ViewRaw
		return m, nil
	case key.Matches(msg, m.keys.ViewLogs):
		m.view = ViewLogs
		m.refreshPages()
		return m, nil

	case key.Matches(msg, m.keys.Fetch):
		if m.ctrl == nil {
			return m, nil
		}
		m.fetching = true
		m.notice = ""
		return m, fetchNowCmd(m.ctrl)

	case key.Matches(msg, m.keys.TogglePolling):
		if m.ctrl != nil {
			m.ctrl.TogglePolling()
			m.syncController()
			m.refreshPages()
		}
		return m, nil

	case key.Matches(msg, m.keys.Slower):
		return m.stepInterval(1)

	case key.Matches(msg, m.keys.Faster):
		return m.stepInterval(-1)
	}

	if m.view == ViewLogs {
		switch {
		case key.Matches(msg, m.keys.ToggleFollow):
			m.follow = !m.follow
			if m.follow {
				m.pages[ViewLogs].GotoBottom()
			}
			return m, nil
		case key.Matches(msg, m.keys.ClearLogs):
			if m.events != nil {
				m.events.Clear()
			}
			m.refreshPages()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.pages[m.view], cmd = m.pages[m.view].Update(msg)
	if m.view == ViewLogs {
		m.follow = m.pages[ViewLogs].AtBottom()
	}
	return m, cmd
}

func (m Model) stepInterval(dir int) (tea.Model, tea.Cmd) {
	if m.ctrl == nil {
		return m, nil
	}
	next := m.ctrl.StepInterval(dir)
	m.notice = "Polling interval: " + formatInterval(next)
	m.syncController()
	m.refreshPages()
	return m, nil
}

// savePrefs stores the theme and current view. Failures are ignored; the UI
// has nowhere better to report them.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, View: m.view.String()})
}

// applySnapshot records a new snapshot, keeping the last decoded response.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if snap.HasOutcome && snap.Outcome.Response != nil {
		m.response = snap.Outcome.Response
	}
}

// syncController copies polling state and config from the controller.
func (m *Model) syncController() {
	if m.ctrl == nil {
		return
	}
	m.cfg = m.ctrl.Config()
	m.polling, m.interval = m.ctrl.Polling()
	if !m.polling {
		m.interval = m.cfg.PollingInterval
	}
}

func (m *Model) resizePages() {
	w, h := m.width-4, m.height-4
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	for i := range m.pages {
		m.pages[i].Width = w
		m.pages[i].Height = h
	}
}

// refreshPages re-renders every page from the current state.
func (m *Model) refreshPages() {
	width := m.pages[ViewDashboard].Width
	m.pages[ViewDashboard].SetContent(m.renderDashboard())
	m.pages[ViewPlayers].SetContent(m.renderPlayers(width))
	m.pages[ViewPlugins].SetContent(m.renderPlugins(width))
	m.pages[ViewRaw].SetContent(m.renderRaw())
	m.pages[ViewLogs].SetContent(m.renderLogs())
	if m.follow {
		m.pages[ViewLogs].GotoBottom()
	}
}

func (m Model) pageTitle() string {
	switch m.view {
	case ViewPlayers:
		if m.response != nil && m.response.Players != nil {
			return fmt.Sprintf("Players (%d)", m.response.Players.Count())
		}
	case ViewPlugins:
		if m.response != nil && m.response.Plugins != nil {
			return fmt.Sprintf("Plugins (%d)", m.response.Plugins.Count())
		}
	case ViewLogs:
		if !m.follow {
			return "Logs (paused)"
		}
	}
	return m.view.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type fetchDoneMsg struct {
	outcome state.Outcome
	ran     bool
}

type doneMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func fetchNowCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		out, ran := ctrl.FetchNow()
		return fetchDoneMsg{outcome: out, ran: ran}
	}
}

func waitDoneCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return doneMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
