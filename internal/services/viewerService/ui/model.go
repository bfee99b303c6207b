package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	execservice "github.com/redjax/nbview/internal/services/execService"
	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
	importservice "github.com/redjax/nbview/internal/services/importService"
	renderservice "github.com/redjax/nbview/internal/services/renderService"
	workspaceservice "github.com/redjax/nbview/internal/services/workspaceService"
	"github.com/redjax/nbview/internal/utils/terminal"
)

type viewMode int

const (
	modeBrowse viewMode = iota
	modeInput
	modeConfirmDelete
	modePreview
	modeConflict
)

type inputPurpose int

const (
	inputImport inputPurpose = iota
	inputAddPath
	inputRename
	inputConflictRename
)

const (
	listWidth  = 34
	chromeRows = 7
)

// Model is the interactive workspace viewer
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	ws       *workspaceservice.Workspace
	renderer *renderservice.Renderer
	keys     keyMap
	help     help.Model
	size     *terminal.Layout

	mode     viewMode
	input    textinput.Model
	inputFor inputPurpose

	files  []string
	cursor int
	active string
	output renderservice.Output
	cell   int

	viewport viewport.Model
	spinner  spinner.Model
	pending  int
	inflight map[execservice.Key]int
	startup  tea.Cmd

	batch *importservice.Batch

	status    string
	statusErr bool

	events      chan struct{}
	unsubscribe func()
}

// New builds the viewer over an open workspace and selects the first file
func New(ws *workspaceservice.Workspace) Model {
	ctx, cancel := context.WithCancel(context.Background())

	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	m := Model{
		ctx:      ctx,
		cancel:   cancel,
		ws:       ws,
		keys:     newKeyMap(),
		help:     help.New(),
		size:     terminal.NewLayout(listWidth, chromeRows),
		input:    ti,
		viewport: viewport.New(ws.Config().Render.Width, 20),
		spinner:  sp,
		cell:     -1,
		inflight: make(map[execservice.Key]int),
		events:   make(chan struct{}, 1),
	}

	m.unsubscribe = ws.Store().Subscribe(func(filestoreservice.Event) {
		select {
		case m.events <- struct{}{}:
		default:
		}
	})

	m.rebuildRenderer(m.viewport.Width)
	m.syncFiles()
	if len(m.files) > 0 {
		m.open(m.files[0])
		m.startup = m.autoRun()
	}
	if err := ws.PersistenceError(); err != nil {
		m.setError("storage unavailable, changes will not be saved: " + err.Error())
	} else if err := ws.LoadError(); err != nil {
		m.setError("saved files could not be read, press s to overwrite them: " + err.Error())
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForStoreChange(m.events), m.startup)
}

// Close cancels in-flight runs and imports and detaches from the store
func (m Model) Close() {
	m.cancel()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *Model) rebuildRenderer(width int) {
	r, err := m.ws.TerminalRenderer(width)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.renderer = r
}

// syncFiles reloads the listing from the store and keeps the selection valid
func (m *Model) syncFiles() {
	m.files = m.ws.Store().List()
	if m.cursor >= len(m.files) {
		m.cursor = len(m.files) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.active != "" && !m.ws.Store().Has(m.active) {
		m.active = ""
		if len(m.files) > 0 {
			m.open(m.files[m.cursor])
			return
		}
	}
	for i, name := range m.files {
		if name == m.active {
			m.cursor = i
		}
	}
	m.refresh()
}

// open makes name the displayed file and selects its first runnable cell
func (m *Model) open(name string) {
	if name != m.active {
		m.viewport.GotoTop()
	}
	m.active = name
	m.cell = -1
	m.refresh()
	if cells := m.runnableCells(); len(cells) > 0 {
		m.cell = cells[0]
	}
}

// refresh re-renders the active file
func (m *Model) refresh() {
	if m.active == "" || m.renderer == nil {
		m.output = renderservice.Output{}
		m.viewport.SetContent(mutedStyle.Render("No files. Press i to import a GitHub URL or a to add a local file."))
		return
	}
	content, ok := m.ws.Store().Get(m.active)
	if !ok {
		return
	}
	m.output = m.renderer.Render(m.active, content)
	m.viewport.SetContent(m.renderer.Compose(m.output))
}

func (m Model) runnableCells() []int {
	var idx []int
	for _, c := range m.output.Cells {
		if c.Runnable {
			idx = append(idx, c.Index)
		}
	}
	return idx
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}
