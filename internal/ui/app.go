package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/ktnyt/labmon/internal/operator"
	"github.com/ktnyt/labmon/internal/prefs"
	"github.com/ktnyt/labmon/internal/state"
)

// Poller is the part of the background watcher the UI drives.
type Poller interface {
	MountStations(names []string)
	Period() time.Duration
	SetPeriod(d time.Duration)
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	API          operator.API
	Store        *state.Store
	Poller       Poller
	Logger       zerolog.Logger
	LogPath      string
	OperatorAddr string
	Prefs        prefs.Prefs
	PrefsPath    string
	RefreshTick  time.Duration
}

// row addresses one spot in the flattened station list.
type row struct {
	station int
	spot    int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	api          operator.API
	store        *state.Store
	poller       Poller
	log          zerolog.Logger
	logPath      string
	operatorAddr string
	prefsPath    string
	refreshTick  time.Duration
	keys         keyMap

	// UI state
	theme    Theme
	layout   prefs.Layout
	width    int
	height   int
	ready    bool
	cursor   int
	showHelp bool

	// Data state
	snapshot state.Snapshot

	// Polling state; resume is restored when a pause ends. Only the
	// period command numbered periodSeq may reach the poller.
	period    time.Duration
	resume    time.Duration
	periodSeq uint64
	pc        *periodControl

	// Log pane
	showLogs bool
	logLines []string
	logView  viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.RefreshTick
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	layout := opts.Prefs.Layout
	if layout == "" {
		layout = prefs.LayoutGrid
	}

	m := Model{
		ctx:          ctx,
		api:          opts.API,
		store:        opts.Store,
		poller:       opts.Poller,
		log:          opts.Logger,
		logPath:      opts.LogPath,
		operatorAddr: opts.OperatorAddr,
		prefsPath:    prefsPath,
		refreshTick:  refresh,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.Prefs.Theme),
		layout:       layout,
		logView:      newLogViewport(80),
		pc:           &periodControl{},
	}
	if m.poller != nil {
		m.period = m.poller.Period()
	}
	m.resume = m.period
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refreshTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if cmd := loadStationsCmd(m.ctx, m.api); cmd != nil {
		cmds = append(cmds, cmd)
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
		m.logView.Width = max(m.width-4, 0)
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case stationsMsg:
		m.handleStations(msg)
		return m, nil

	case periodMsg:
		if msg.seq == m.periodSeq {
			m.period = msg.period
		}
		return m, nil

	case logLinesMsg:
		m.applyLogLines(msg)
		return m, nil
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
	return m.renderMain()
}

// handleStations installs the one-shot station list. A failed load leaves
// the list empty for the rest of the session.
func (m *Model) handleStations(msg stationsMsg) {
	if msg.err != nil {
		m.log.Debug().Err(msg.err).Msg("station list unavailable")
		return
	}
	if m.store == nil || !m.store.SetStations(msg.names) {
		return
	}
	if m.poller != nil {
		m.poller.MountStations(msg.names)
	}
	m.snapshot = m.store.Snapshot()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Layout):
		if m.layout == prefs.LayoutStack {
			m.layout = prefs.LayoutGrid
		} else {
			m.layout = prefs.LayoutStack
		}
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, readLogsCmd(m.logPath)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Take):
		return m, m.stationCommand(stationView.take)

	case key.Matches(msg, m.keys.Put):
		return m, m.stationCommand(stationView.put)

	case key.Matches(msg, m.keys.Reboot):
		op, ok := armView{arm: m.snapshot.Arm}.reboot()
		if !ok {
			return m, nil
		}
		return m, dispatchCmd(m.ctx, m.api, m.log, op)

	case key.Matches(msg, m.keys.Pause):
		return m.togglePause()

	case key.Matches(msg, m.keys.Faster):
		return m.scalePeriod(0.5)

	case key.Matches(msg, m.keys.Slower):
		return m.scalePeriod(2)
	}

	return m, nil
}

// stationCommand builds the dispatch for the selected spot, or nil when the
// matching button is disabled.
func (m Model) stationCommand(build func(stationView, int) (operator.Operation, bool)) tea.Cmd {
	sel, ok := m.selected()
	if !ok {
		return nil
	}
	view := stationView{station: m.snapshot.Stations[sel.station], arm: m.snapshot.Arm}
	op, ok := build(view, sel.spot)
	if !ok {
		return nil
	}
	return dispatchCmd(m.ctx, m.api, m.log, op)
}

func (m Model) togglePause() (tea.Model, tea.Cmd) {
	if m.poller == nil {
		return m, nil
	}
	if m.period > 0 {
		m.resume = m.period
		m.period = 0
		return m, m.requestPeriod(0)
	}
	next := m.resume
	if next <= 0 {
		next = time.Second
	}
	m.period = next
	return m, m.requestPeriod(next)
}

func (m Model) scalePeriod(factor float64) (tea.Model, tea.Cmd) {
	if m.poller == nil || m.period <= 0 {
		return m, nil
	}
	next := time.Duration(float64(m.period) * factor)
	next = time.Duration(clampInt(int(next), int(MinPollPeriod), int(MaxPollPeriod)))
	if next == m.period {
		return m, nil
	}
	m.period = next
	m.resume = next
	return m, m.requestPeriod(next)
}

// requestPeriod numbers a period change so a slower, older command cannot
// overwrite a newer one once both are running.
func (m *Model) requestPeriod(d time.Duration) tea.Cmd {
	m.periodSeq++
	m.pc.mu.Lock()
	m.pc.latest = m.periodSeq
	m.pc.mu.Unlock()
	return setPeriodCmd(m.pc, m.poller, d, m.periodSeq)
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Layout: m.layout}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs")
	}
}

// rows flattens every spot of every station in display order.
func (m Model) rows() []row {
	var out []row
	for si, st := range m.snapshot.Stations {
		for sp := range st.Spots {
			out = append(out, row{station: si, spot: sp})
		}
	}
	return out
}

func (m Model) selected() (row, bool) {
	rows := m.rows()
	if len(rows) == 0 {
		return row{}, false
	}
	return rows[clampInt(m.cursor, 0, len(rows)-1)], true
}

func (m *Model) moveCursor(delta int) {
	n := len(m.rows())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clampInt(m.cursor+delta, 0, n-1)
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.showLogs {
		if cmd := readLogsCmd(m.logPath); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, tickCmd(m.refreshTick))
	return m, tea.Batch(cmds...)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	styles := m.theme.Styles()

	cards := []string{armView{arm: m.snapshot.Arm}.render(styles)}
	sel, hasSel := m.selected()
	for i, st := range m.snapshot.Stations {
		cursor := -1
		if hasSel && sel.station == i {
			cursor = sel.spot
		}
		cards = append(cards, stationView{station: st, arm: m.snapshot.Arm}.render(styles, cursor))
	}

	width := m.width
	if m.layout == prefs.LayoutStack {
		width = 0
	}

	sections := []string{m.renderHeader(), layoutCards(cards, width)}
	if m.showLogs {
		sections = append(sections, m.renderLogs())
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.height > 0 {
		lines := strings.Split(body, "\n")
		if limit := m.height - footerHeight; limit > 0 && len(lines) > limit {
			body = strings.Join(lines[:limit], "\n")
		}
	}
	return body + "\n" + m.renderFooter()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type stationsMsg struct {
	names []string
	err   error
}

type periodMsg struct {
	period time.Duration
	seq    uint64
}

// periodControl serialises period commands and records the newest request.
type periodControl struct {
	mu     sync.Mutex
	latest uint64
}

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

// loadStationsCmd fetches the device list once and keeps station names.
func loadStationsCmd(ctx context.Context, api operator.API) tea.Cmd {
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		defer cancel()
		names, err := api.Devices(ctx)
		if err != nil {
			return stationsMsg{err: err}
		}
		return stationsMsg{names: operator.FilterStations(names)}
	}
}

// setPeriodCmd reschedules the pollers off the update loop; SetPeriod waits
// for any in-flight poll to return. A command superseded by a later request
// does nothing.
func setPeriodCmd(pc *periodControl, p Poller, d time.Duration, seq uint64) tea.Cmd {
	return func() tea.Msg {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		if seq != pc.latest {
			return nil
		}
		p.SetPeriod(d)
		return periodMsg{period: p.Period(), seq: seq}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
