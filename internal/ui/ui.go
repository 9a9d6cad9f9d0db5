package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/slskx/internal/models"
	"github.com/desertthunder/slskx/internal/playback"
	"github.com/desertthunder/slskx/internal/poller"
	"github.com/desertthunder/slskx/internal/repositories"
	"github.com/desertthunder/slskx/internal/transfers"
)

// ViewState represents the current page in the TUI.
type ViewState int

const (
	TransfersView ViewState = iota
	SearchView
)

// Tab selects a transfer partition on the transfers page.
type Tab int

const (
	ActiveTab Tab = iota
	FinishedTab
)

const (
	refreshInterval = 500 * time.Millisecond
	noticeDuration  = 3 * time.Second
)

// Downloader defines the daemon surface the search page needs.
type Downloader interface {
	EnqueueDownload(ctx context.Context, username, filename string, size int64) error
}

type refreshMsg time.Time

type noticeExpiredMsg struct{}

type commandDoneMsg struct {
	action string
	err    error
}

type resultsLoadedMsg struct {
	results []models.SearchResult
	err     error
}

// Model represents the TUI application state.
//
// Polling is owned by the scheduler: the model starts and stops the
// transfers loop on page changes and re-reads published state on a refresh
// tick. Command keys issue one-shot requests; the lists only change when a
// later poll confirms the effect.
type Model struct {
	ctx       context.Context
	view      ViewState
	tab       Tab
	machine   *playback.Machine
	manager   *transfers.Manager
	scheduler *poller.Scheduler
	results   *repositories.SearchResultRepository
	daemon    Downloader
	token     string
	query     string

	width  int
	height int

	activeList   list.Model
	finishedList list.Model
	resultList   list.Model

	notice    string
	noticeErr bool
	err       error
	help      help.Model
	keys      keyMap
}

// ModelOpts carries the dependencies for [NewModel].
type ModelOpts struct {
	Machine   *playback.Machine
	Manager   *transfers.Manager
	Scheduler *poller.Scheduler
	Results   *repositories.SearchResultRepository
	Daemon    Downloader
	Token     string
	Query     string
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	m := &Model{
		ctx:       ctx,
		view:      TransfersView,
		machine:   opts.Machine,
		manager:   opts.Manager,
		scheduler: opts.Scheduler,
		results:   opts.Results,
		daemon:    opts.Daemon,
		token:     opts.Token,
		query:     opts.Query,
		help:      help.New(),
		keys:      newKeyMap(),
	}

	delegate := list.NewDefaultDelegate()
	m.activeList = newListModel("Active", delegate)
	m.finishedList = newListModel("Finished", delegate)
	m.resultList = newListModel("Search Results", delegate)
	return m
}

func newListModel(title string, delegate list.ItemDelegate) list.Model {
	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return l
}

// Init starts the refresh tick and both polling loops.
func (m *Model) Init() tea.Cmd {
	m.scheduler.Start(poller.KindPlayback)
	m.scheduler.Start(poller.KindTransfers)

	cmds := []tea.Cmd{m.tick()}
	if m.token != "" {
		cmds = append(cmds, m.loadResults())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.activeList.SetSize(msg.Width-4, msg.Height-10)
		m.finishedList.SetSize(msg.Width-4, msg.Height-10)
		m.resultList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case refreshMsg:
		m.refreshTransferLists()
		return m, m.tick()

	case commandDoneMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
			m.noticeErr = true
		} else {
			m.notice = msg.action
			m.noticeErr = false
		}
		return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
			return noticeExpiredMsg{}
		})

	case noticeExpiredMsg:
		m.notice = ""
		return m, nil

	case resultsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.results))
		for i, result := range msg.results {
			items[i] = searchItem{result: result}
		}
		m.resultList.SetItems(items)
		if m.query != "" {
			m.resultList.Title = fmt.Sprintf("Search: %s", m.query)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current page.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	var body string
	switch m.view {
	case TransfersView:
		body = m.renderTransfers()
	case SearchView:
		body = m.renderSearch()
	}

	if m.notice != "" {
		style := styles.ok
		if m.noticeErr {
			style = styles.err
		}
		body = fmt.Sprintf("%s\n%s", body, style.Render(m.notice))
	}
	return fmt.Sprintf("%s\n%s", body, m.help.View(m.keys))
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.scheduler.StopAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.page):
		m.switchPage()
		return m, nil

	case key.Matches(msg, m.keys.tab) && m.view == TransfersView:
		if m.tab == ActiveTab {
			m.tab = FinishedTab
		} else {
			m.tab = ActiveTab
		}
		return m, nil

	case key.Matches(msg, m.keys.toggle):
		return m, m.command("toggled playback", func(ctx context.Context) error {
			_, err := m.machine.Toggle(ctx)
			return err
		})

	case key.Matches(msg, m.keys.stop):
		return m, m.command("stopped playback", m.machine.Stop)

	case key.Matches(msg, m.keys.cancel) && m.view == TransfersView && m.tab == ActiveTab:
		selected, ok := m.activeList.SelectedItem().(transferItem)
		if !ok {
			return m, nil
		}
		transfer := selected.transfer
		return m, m.command("cancel requested", func(ctx context.Context) error {
			return m.manager.Cancel(ctx, transfer.ID, transfer.Username)
		})

	case key.Matches(msg, m.keys.clear) && m.view == TransfersView:
		return m, m.command("clear requested", m.manager.ClearFinished)

	case key.Matches(msg, m.keys.download) && m.view == SearchView:
		selected, ok := m.resultList.SelectedItem().(searchItem)
		if !ok {
			return m, nil
		}
		result := selected.result
		return m, m.command(fmt.Sprintf("queued %s", result.Filename), func(ctx context.Context) error {
			return m.daemon.EnqueueDownload(ctx, result.Username, result.Filename, result.Size)
		})
	}

	return m.updateLists(msg)
}

// switchPage flips between the transfers and search pages. The transfers
// loop only runs while its page is visible; playback keeps polling either
// way.
func (m *Model) switchPage() {
	if m.view == TransfersView {
		m.view = SearchView
		m.scheduler.Stop(poller.KindTransfers)
		return
	}
	m.view = TransfersView
	m.scheduler.Start(poller.KindTransfers)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.view == SearchView:
		m.resultList, cmd = m.resultList.Update(msg)
	case m.tab == ActiveTab:
		m.activeList, cmd = m.activeList.Update(msg)
	default:
		m.finishedList, cmd = m.finishedList.Update(msg)
	}
	return m, cmd
}

// refreshTransferLists re-reads the published collections. Selection is
// preserved by index so a wholesale replace does not bounce the cursor.
func (m *Model) refreshTransferLists() {
	collections := m.manager.Collections()

	active := collections.ActiveList()
	items := make([]list.Item, len(active))
	for i, transfer := range active {
		items[i] = transferItem{transfer: transfer}
	}
	m.activeList.SetItems(items)

	finished := collections.FinishedList()
	items = make([]list.Item, len(finished))
	for i, transfer := range finished {
		items[i] = transferItem{transfer: transfer}
	}
	m.finishedList.SetItems(items)
}

func (m *Model) renderTransfers() string {
	activeCount, finishedCount := m.manager.Counts()

	activeTab := fmt.Sprintf("Active (%d)", activeCount)
	finishedTab := fmt.Sprintf("Finished (%d)", finishedCount)
	if m.tab == ActiveTab {
		activeTab = styles.title.Render(activeTab)
		finishedTab = styles.help.Render(finishedTab)
	} else {
		activeTab = styles.help.Render(activeTab)
		finishedTab = styles.title.Render(finishedTab)
	}
	tabs := fmt.Sprintf("%s  %s", activeTab, finishedTab)

	view := m.activeList.View()
	if m.tab == FinishedTab {
		view = m.finishedList.View()
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", m.renderPlaybackBar(), tabs, view)
}

func (m *Model) renderSearch() string {
	return fmt.Sprintf("%s\n\n%s", m.renderPlaybackBar(), m.resultList.View())
}

// renderPlaybackBar projects the playback session through its effects.
// The bar never inspects raw snapshots.
func (m *Model) renderPlaybackBar() string {
	effects := m.machine.Effects()

	if effects.ShowProgress {
		return styles.warn.Render(fmt.Sprintf("Loading %d%%", effects.ProgressPercent))
	}
	if !effects.ControlsEnabled {
		return styles.help.Render("Stopped")
	}
	return fmt.Sprintf("%s %s • %s • %s",
		effects.TransportGlyph,
		styles.ok.Render(effects.Title),
		effects.Artist,
		effects.Album,
	)
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// command wraps a one-shot daemon request as a [tea.Cmd].
func (m *Model) command(action string, run func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return commandDoneMsg{action: action, err: run(m.ctx)}
	}
}

func (m *Model) loadResults() tea.Cmd {
	return func() tea.Msg {
		results, err := m.results.List(m.token)
		return resultsLoadedMsg{results: results, err: err}
	}
}
