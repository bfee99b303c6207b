package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	execservice "github.com/redjax/nbview/internal/services/execService"
	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
	importservice "github.com/redjax/nbview/internal/services/importService"
	renderservice "github.com/redjax/nbview/internal/services/renderService"
	"github.com/redjax/nbview/internal/utils/path"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case storeChangedMsg:
		if m.batch != nil {
			m.files = m.ws.Store().List()
		} else {
			m.syncFiles()
		}
		run := m.autoRun()
		return m, tea.Batch(waitForStoreChange(m.events), run)

	case runDoneMsg:
		m.pending--
		if m.inflight[msg.ticket.Key]--; m.inflight[msg.ticket.Key] <= 0 {
			delete(m.inflight, msg.ticket.Key)
		}
		if msg.applied && msg.ticket.Key.File == m.active && m.batch == nil {
			m.refresh()
		}
		switch {
		case !msg.applied:
			// superseded by an edit; the new content still needs its own run
			cmd := m.autoRun()
			return m, cmd
		case msg.output.Error:
			m.setError(fmt.Sprintf("%s: %s", describeKey(msg.ticket.Key.File, msg.ticket.Key.Cell), msg.output.Text))
		default:
			m.setStatus("ran " + describeKey(msg.ticket.Key.File, msg.ticket.Key.Cell))
		}
		return m, nil

	case importResolvedMsg:
		m.pending--
		if msg.err != nil {
			m.setError(msg.err.Error())
			return m, nil
		}
		if len(msg.items) == 0 {
			m.setStatus("nothing importable at " + msg.source)
			return m, nil
		}
		m.batch = importservice.NewBatch(m.ws.Store(), msg.items)
		cmd := m.advanceBatch()
		return m, cmd

	case savedMsg:
		if msg.err != nil {
			m.setError("save failed: " + msg.err.Error())
		} else if msg.explicit {
			m.setStatus("saved")
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modePreview:
			return m.updatePreview(msg)
		case modeConflict:
			return m.updateConflict(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.size.HandleWindowSizeMsg(msg)
	m.help.Width = msg.Width
	if m.size.Compact() {
		m.help.ShowAll = false
	}

	width := m.size.ContentWidth()
	rebuild := width != m.viewport.Width
	m.viewport.Width = width
	m.viewport.Height = m.size.BodyHeight()
	if rebuild {
		m.rebuildRenderer(width - 2)
	}
	if m.batch != nil {
		m.showBatchItem()
		return
	}
	m.refresh()
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.open(m.files[m.cursor])
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.files)-1 {
			m.cursor++
			m.open(m.files[m.cursor])
		}

	case key.Matches(msg, m.keys.NextCell):
		m.stepCell(1)

	case key.Matches(msg, m.keys.PrevCell):
		m.stepCell(-1)

	case key.Matches(msg, m.keys.Run):
		cmd := m.run(m.cell)
		return m, cmd

	case key.Matches(msg, m.keys.RunAll):
		var cmds []tea.Cmd
		for _, c := range m.runnableCells() {
			cmds = append(cmds, m.run(c))
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.Import):
		cmd := m.prompt(inputImport, "GitHub URL: ", "")
		return m, cmd

	case key.Matches(msg, m.keys.Add):
		cmd := m.prompt(inputAddPath, "Path: ", "")
		return m, cmd

	case key.Matches(msg, m.keys.Rename):
		if m.active != "" {
			cmd := m.prompt(inputRename, "Rename to: ", m.active)
			return m, cmd
		}

	case key.Matches(msg, m.keys.Delete):
		if m.active != "" {
			m.mode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.Theme):
		theme, err := m.ws.ToggleTheme()
		if err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus("theme: " + string(theme))
		}
		m.rebuildRenderer(m.viewport.Width - 2)
		m.refresh()

	case key.Matches(msg, m.keys.Save):
		return m, saveCmd(m.ws, true)

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// stepCell moves the cell selection among runnable cells
func (m *Model) stepCell(delta int) {
	cells := m.runnableCells()
	if len(cells) == 0 {
		return
	}
	pos := 0
	for i, c := range cells {
		if c == m.cell {
			pos = i
		}
	}
	pos += delta
	if pos < 0 || pos >= len(cells) {
		return
	}
	m.cell = cells[pos]
	m.setStatus("selected " + describeKey(m.active, m.cell))
}

func (m *Model) run(cell int) tea.Cmd {
	if m.active == "" {
		return nil
	}
	if !m.ws.Runner().Available() {
		m.setError("execution is disabled")
		return nil
	}
	cmd, err := m.start(cell)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	m.setStatus("running " + describeKey(m.active, cell))
	return cmd
}

// autoRun executes the active Python file when its current content has no
// output yet and no run is in flight
func (m *Model) autoRun() tea.Cmd {
	if m.active == "" || m.batch != nil || m.output.Mode != renderservice.ModePythonSource || !m.output.Runnable {
		return nil
	}
	key := execservice.FileKey(m.active)
	if _, ok := m.ws.Runner().Output(key); ok || m.inflight[key] > 0 {
		return nil
	}
	cmd, err := m.start(key.Cell)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	return cmd
}

// start reserves a runner slot and executes it off the update loop
func (m *Model) start(cell int) (tea.Cmd, error) {
	key, src, err := m.ws.Source(m.active, cell)
	if err != nil {
		return nil, err
	}
	runner := m.ws.Runner()
	ticket := runner.Begin(key)
	m.pending++
	m.inflight[key]++
	return runCmd(m.ctx, runner, ticket, src), nil
}

func (m *Model) prompt(purpose inputPurpose, label, value string) tea.Cmd {
	m.mode = modeInput
	m.inputFor = purpose
	m.input.Prompt = label
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.input.Blur()
	m.input.SetValue("")
	m.mode = modeBrowse
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		purpose := m.inputFor
		m.closeInput()
		if purpose == inputConflictRename {
			m.mode = modeConflict
		}
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		purpose := m.inputFor
		m.closeInput()
		if value == "" {
			if purpose == inputConflictRename {
				m.mode = modeConflict
			}
			return m, nil
		}
		return m.submit(purpose, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(purpose inputPurpose, value string) (tea.Model, tea.Cmd) {
	switch purpose {
	case inputImport:
		m.pending++
		m.setStatus("fetching " + value)
		return m, importURLCmd(m.ctx, m.ws, value)

	case inputAddPath:
		expanded, err := path.ExpandPath(value)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.pending++
		return m, readFileCmd(expanded)

	case inputRename:
		old := m.active
		if err := m.ws.Store().Rename(old, value); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.active = value
		m.setStatus(fmt.Sprintf("renamed %s to %s", old, value))
		cmd := m.autosave()
		return m, cmd

	case inputConflictRename:
		if err := m.batch.Resolve(filestoreservice.RenameTo(value)); err != nil {
			m.setError(err.Error())
			if m.batch.Stage() == importservice.StageConflict {
				m.mode = modeConflict
				return m, nil
			}
		}
		cmd := m.advanceBatch()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		name := m.active
		m.mode = modeBrowse
		if err := m.ws.Store().Remove(name); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.setStatus("removed " + name)
		cmd := m.autosave()
		return m, cmd
	case "n", "esc":
		m.mode = modeBrowse
	}
	return m, nil
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if err := m.batch.Accept(); err != nil {
			m.setError(err.Error())
		}
		cmd := m.advanceBatch()
		return m, cmd
	case "n":
		if err := m.batch.Reject(); err != nil {
			m.setError(err.Error())
		}
		cmd := m.advanceBatch()
		return m, cmd
	case "esc", "ctrl+c":
		m.batch.Abort()
		cmd := m.advanceBatch()
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateConflict(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch msg.String() {
	case "o":
		err = m.batch.Resolve(filestoreservice.Overwrite())
	case "s":
		err = m.batch.Resolve(filestoreservice.Skip())
	case "r":
		item, _ := m.batch.Current()
		cmd := m.prompt(inputConflictRename, "New name: ", filestoreservice.SuggestName(m.ws.Store(), item.Name))
		return m, cmd
	case "esc", "ctrl+c":
		m.batch.Abort()
	default:
		return m, nil
	}
	if err != nil && !errors.Is(err, filestoreservice.ErrNameConflict) {
		m.setError(err.Error())
	}
	cmd := m.advanceBatch()
	return m, cmd
}

// advanceBatch moves the UI to whatever the import batch needs next
func (m *Model) advanceBatch() tea.Cmd {
	if m.batch == nil {
		return nil
	}
	switch m.batch.Stage() {
	case importservice.StagePreview:
		m.mode = modePreview
		m.showBatchItem()
		return nil
	case importservice.StageConflict:
		m.mode = modeConflict
		m.showBatchItem()
		return nil
	}

	report := m.batch.Report()
	m.batch = nil
	m.mode = modeBrowse
	if len(report.Failed) > 0 {
		m.setError(report.String())
	} else {
		m.setStatus(report.String())
	}
	if len(report.Added) > 0 {
		m.open(report.Added[len(report.Added)-1])
	} else if len(report.Renamed) > 0 {
		m.open(report.Renamed[len(report.Renamed)-1])
	}
	m.syncFiles()
	run := m.autoRun()
	if !report.Changed() {
		return run
	}
	return tea.Batch(run, m.autosave())
}

// showBatchItem renders the truncated preview of the pending import item
func (m *Model) showBatchItem() {
	item, ok := m.batch.Current()
	if !ok || m.renderer == nil {
		return
	}
	out := m.renderer.Preview(item.Name, item.Content, m.ws.Config().Import.PreviewCells)
	m.viewport.SetContent(m.renderer.Compose(out))
	m.viewport.GotoTop()
}

func (m *Model) autosave() tea.Cmd {
	if !m.ws.Config().Autosave {
		return nil
	}
	return saveCmd(m.ws, false)
}

func describeKey(name string, cell int) string {
	if cell < 0 || renderservice.ModeFor(name) != renderservice.ModeNotebook {
		return name
	}
	return fmt.Sprintf("%s cell %d", name, cell+1)
}
