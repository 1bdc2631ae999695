package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/editor"
	"github.com/iota-uz/employee-directory/modules/directory/domain/entities/roster"
	"github.com/iota-uz/employee-directory/modules/directory/services"
	"github.com/iota-uz/employee-directory/pkg/intl"
	"github.com/iota-uz/employee-directory/pkg/serrors"
)

// FocusRegion identifies which widget receives keystrokes.
type FocusRegion int

const (
	FocusTable FocusRegion = iota
	FocusFirstName
	FocusLastName
	FocusCity
)

const focusRegions = 4

// loadedMsg carries the result of a list read.
type loadedMsg struct {
	snap roster.Snapshot
}

// savedMsg carries the result of a create or update. On success snap is the re-read list.
type savedMsg struct {
	snap    roster.Snapshot
	editing bool
	err     error
}

type removedMsg struct {
	snap roster.Snapshot
	err  error
}

type exportedMsg struct {
	path string
	err  error
}

type Options struct {
	Directory *services.DirectoryService
	Exports   *services.ExportService
	Localizer *i18n.Localizer
	// ExportDir receives exported workbooks. Defaults to the working directory.
	ExportDir string
	// ExportFileName is passed to the export service; empty uses its default.
	ExportFileName string
	ShowLoadErrors bool
}

// Model is the bubbletea model of the directory. All session mutations
// happen in Update; commands only talk to the API and report back.
type Model struct {
	ctx     context.Context
	opts    Options
	keys    KeyMap
	help    help.Model
	session *services.Session

	table  table.Model
	inputs [3]textinput.Model
	focus  FocusRegion

	// modal is a failure notice that blocks input until dismissed.
	modal  string
	status string
	busy   bool
	width  int
	height int
}

func New(ctx context.Context, opts Options) Model {
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	m := Model{
		ctx:     ctx,
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		session: services.NewSession(),
	}

	m.table = table.New(
		table.WithColumns(m.columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	placeholders := []string{"Employees.Fields.FirstName", "Employees.Fields.LastName", "Employees.Fields.City"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = m.t(placeholders[i])
		ti.CharLimit = 128
		m.inputs[i] = ti
	}
	return m
}

// Session exposes the state driven by the model.
func (m Model) Session() *services.Session {
	return m.session
}

func (m Model) Focus() FocusRegion {
	return m.focus
}

// Modal returns the pending failure notice, if any.
func (m Model) Modal() string {
	return m.modal
}

func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(m.columns(msg.Width))
		m.table.SetHeight(max(3, msg.Height-14))
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.busy = false
		m.session.ApplyLoad(msg.snap)
		m.syncRows()
		if m.opts.ShowLoadErrors && msg.snap.Status() == roster.StatusLoadFailed {
			m.modal = m.t("Employees.Notices.LoadFailed")
		}
		return m, nil

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.modal = m.errorText(msg.err)
			return m, nil
		}
		m.session.ApplySaved(msg.snap)
		m.syncRows()
		m.syncInputs()
		m.setFocus(FocusTable)
		if msg.editing {
			m.status = m.t("Employees.Notices.Updated")
		} else {
			m.status = m.t("Employees.Notices.Created")
		}
		return m, nil

	case removedMsg:
		m.busy = false
		if msg.err != nil {
			m.modal = m.errorText(msg.err)
			return m, nil
		}
		m.session.ApplyRemoved(msg.snap)
		m.syncRows()
		m.status = m.t("Employees.Notices.Deleted")
		return m, nil

	case exportedMsg:
		m.busy = false
		if msg.err != nil {
			m.modal = m.errorText(msg.err)
			return m, nil
		}
		m.status = intl.T(m.opts.Localizer, "Employees.Notices.Exported", map[string]string{"Path": msg.path})
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.modal != "" {
		m.modal = ""
		return m, nil
	}
	// Only quitting is allowed while a request is in flight.
	if m.busy {
		if m.focus == FocusTable && key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.FocusNext):
		m.setFocus((m.focus + 1) % focusRegions)
		return m, nil
	case key.Matches(msg, m.keys.FocusPrev):
		m.setFocus((m.focus + focusRegions - 1) % focusRegions)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Cancel):
		if m.session.Form.Cancel() {
			m.syncInputs()
			m.setFocus(FocusTable)
		}
		return m, nil
	}

	if m.focus != FocusTable {
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Edit):
		if id, ok := m.selectedID(); ok && m.session.BeginEdit(id) {
			m.syncInputs()
			m.setFocus(FocusFirstName)
		}
		return m, nil
	case key.Matches(msg, m.keys.Remove):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		m.busy = true
		return m, m.removeCmd(id)
	case key.Matches(msg, m.keys.Export):
		m.busy = true
		return m, m.exportCmd()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.session.Form.CanSubmit() {
		return m, nil
	}
	m.busy = true
	return m, m.saveCmd(*m.session.Form)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	i := int(m.focus) - 1
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)

	value := m.inputs[i].Value()
	switch m.focus {
	case FocusFirstName:
		m.session.Form.SetFirstName(value)
	case FocusLastName:
		m.session.Form.SetLastName(value)
	case FocusCity:
		m.session.Form.SetCity(value)
	}
	return m, cmd
}

func (m *Model) setFocus(f FocusRegion) {
	m.focus = f
	if f == FocusTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
	for i := range m.inputs {
		if int(f)-1 == i {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) syncRows() {
	items := m.session.Roster.Current()
	rows := make([]table.Row, len(items))
	for i, e := range items {
		rows[i] = table.Row{e.ID(), e.FirstName(), e.LastName(), e.City()}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *Model) syncInputs() {
	fields := m.session.Form.Fields()
	m.inputs[0].SetValue(fields.FirstName)
	m.inputs[1].SetValue(fields.LastName)
	m.inputs[2].SetValue(fields.City)
}

func (m Model) selectedID() (string, bool) {
	items := m.session.Roster.Current()
	c := m.table.Cursor()
	if c < 0 || c >= len(items) {
		return "", false
	}
	return items[c].ID(), true
}

func (m Model) loadCmd() tea.Cmd {
	ctx, directory := m.ctx, m.opts.Directory
	return func() tea.Msg {
		return loadedMsg{snap: directory.Load(ctx)}
	}
}

func (m Model) saveCmd(form editor.Form) tea.Cmd {
	ctx, directory := m.ctx, m.opts.Directory
	return func() tea.Msg {
		snap, err := directory.Save(ctx, form)
		return savedMsg{snap: snap, editing: form.IsEditing(), err: err}
	}
}

func (m Model) removeCmd(id string) tea.Cmd {
	ctx, directory := m.ctx, m.opts.Directory
	return func() tea.Msg {
		snap, err := directory.Remove(ctx, id)
		return removedMsg{snap: snap, err: err}
	}
}

// exportCmd re-reads the list and writes it to ExportDir.
func (m Model) exportCmd() tea.Cmd {
	ctx, opts := m.ctx, m.opts
	return func() tea.Msg {
		items := opts.Directory.Load(ctx).Items()
		download, err := opts.Exports.Export(ctx, items, opts.ExportFileName)
		if err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(opts.ExportDir, download.FileName)
		if err := os.WriteFile(path, download.Data, 0o644); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

func (m Model) t(id string) string {
	return intl.T(m.opts.Localizer, id)
}

func (m Model) errorText(err error) string {
	text := m.t("Employees.Notices.Error")
	if base, ok := serrors.AsBase(err); ok {
		return text + ": " + base.Localize(m.opts.Localizer)
	}
	return text + ": " + err.Error()
}

func (m Model) columns(width int) []table.Column {
	idWidth := 10
	rest := max(12, (width-idWidth-8)/3)
	return []table.Column{
		{Title: m.t("Employees.Table.Identifier"), Width: idWidth},
		{Title: m.t("Employees.Table.FirstName"), Width: rest},
		{Title: m.t("Employees.Table.LastName"), Width: rest},
		{Title: m.t("Employees.Table.City"), Width: rest},
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.t("Employees.Title")))
	b.WriteString("\n")

	if len(m.session.Roster.Current()) == 0 {
		b.WriteString(tableStyle.Render(m.t("Employees.Table.Empty")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}
	b.WriteString("\n\n")

	labels := []string{"Employees.Fields.FirstName", "Employees.Fields.LastName", "Employees.Fields.City"}
	for i, input := range m.inputs {
		style := labelStyle
		if int(m.focus)-1 == i {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(m.t(labels[i])))
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.buttonView())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	view := b.String()
	if m.modal == "" {
		return view
	}
	box := modalStyle.Render(warningStyle.Render(m.modal) + "\n\n" + m.t("Employees.Notices.Dismiss"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) buttonView() string {
	label := m.t("Employees.Form.Create")
	if m.session.Form.IsEditing() {
		label = m.t("Employees.Form.Update")
	}
	style := buttonStyle
	if !m.session.Form.CanSubmit() || m.busy {
		style = disabledButtonStyle
	}
	out := style.Render(label)
	if m.session.Form.IsEditing() {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, " ", disabledButtonStyle.Render(m.t("Employees.Form.Cancel")))
	}
	return out
}
