// Package tui renders the password manager as an interactive terminal
// application: a navigable record list on top of the shared client cache,
// with the single-draft form, confirm-gated deletion and the password
// visibility toggle.
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mitrajit-55/password-manager/internal/client"
	"github.com/mitrajit-55/password-manager/internal/vault"
)

// noticeFadeDelay is how long a toast stays in the status line.
const noticeFadeDelay = 3 * time.Second

// mutationTimeout bounds a single store call issued from the update loop.
const mutationTimeout = 15 * time.Second

const (
	fieldSite = iota
	fieldUsername
	fieldPassword
	fieldCount
)

// refreshedMsg is sent when the initial or requested cache refresh
// completes.
type refreshedMsg struct {
	err error
}

// mutationDoneMsg is sent when an asynchronous save or delete completes.
// The coordinator has already applied the cache effect by the time this
// message arrives; the update loop only drains notices and re-clamps the
// cursor.
type mutationDoneMsg struct {
	err error
}

// noticeFadeMsg clears the status-line toast. seq guards against a stale
// fade wiping a newer notice.
type noticeFadeMsg struct {
	seq int
}

// noticeBuffer collects coordinator toasts posted from inside a tea.Cmd
// goroutine so the update loop can drain them on the main loop.
type noticeBuffer struct {
	mu       sync.Mutex
	messages []string
}

func (b *noticeBuffer) Notify(message string) {
	b.mu.Lock()
	b.messages = append(b.messages, message)
	b.mu.Unlock()
}

func (b *noticeBuffer) drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.messages
	b.messages = nil
	return out
}

// Model is the bubbletea model for the password manager.
type Model struct {
	coord   *client.Coordinator
	form    *client.FormController
	cache   *client.Cache
	notices *noticeBuffer
	keys    keyMap

	inputs [fieldCount]textinput.Model
	// editing reports whether keystrokes route to the form inputs
	// instead of the list.
	editing    bool
	focusField int

	cursor int

	// pendingDeleteID, when non-empty, means the confirm overlay is up
	// and all input routes to it until the user answers.
	pendingDeleteID string

	// inFlight serializes mutations: while a save or delete is running
	// no further mutation can start.
	inFlight bool

	notice    string
	noticeSeq int

	width  int
	height int
}

// New builds a model over the given store. removeOnEdit selects the
// local-variant edit behavior (the record is dropped when editing starts
// and re-created on commit).
func New(store vault.Store, removeOnEdit bool) Model {
	cache := client.NewCache()
	notices := &noticeBuffer{}
	// Deletion is confirmed by the overlay before the coordinator is
	// called, so the coordinator itself runs unprompted.
	coord := client.NewCoordinator(store, cache, nil, notices)
	form := client.NewFormController(coord, cache, removeOnEdit)

	m := Model{
		coord:   coord,
		form:    form,
		cache:   cache,
		notices: notices,
		keys:    defaultKeyMap(),
	}

	labels := [fieldCount]string{"site", "username", "password"}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = labels[i]
		in.CharLimit = 256
		m.inputs[i] = in
	}
	m.applyEcho()
	return m
}

// Init kicks off the initial cache fill.
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		return refreshedMsg{err: m.coord.Refresh(ctx)}
	}
}

func (m Model) commitCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		return mutationDoneMsg{err: m.form.Commit(ctx)}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		_, err := m.coord.Delete(ctx, id)
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) scheduleFade() tea.Cmd {
	seq := m.noticeSeq
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{seq: seq}
	})
}

// showNotices surfaces drained coordinator toasts (or a fallback) in the
// status line and schedules the fade.
func (m *Model) showNotices(fallback string) tea.Cmd {
	drained := m.notices.drain()
	switch {
	case len(drained) > 0:
		m.notice = drained[len(drained)-1]
	case fallback != "":
		m.notice = fallback
	default:
		return nil
	}
	m.noticeSeq++
	return m.scheduleFade()
}

func (m *Model) applyEcho() {
	if m.form.Masked() {
		m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
		m.inputs[fieldPassword].EchoCharacter = '•'
	} else {
		m.inputs[fieldPassword].EchoMode = textinput.EchoNormal
	}
}

func (m *Model) focusInput(i int) {
	m.focusField = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) loadDraftIntoInputs() {
	d := m.form.Draft()
	m.inputs[fieldSite].SetValue(d.Site)
	m.inputs[fieldUsername].SetValue(d.Username)
	m.inputs[fieldPassword].SetValue(d.Password)
}

func (m *Model) clearInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
}

func (m *Model) syncDraftFromInputs() {
	m.form.SetFields(vault.Fields{
		Site:     m.inputs[fieldSite].Value(),
		Username: m.inputs[fieldUsername].Value(),
		Password: m.inputs[fieldPassword].Value(),
	})
}

func (m *Model) clampCursor() {
	if n := m.cache.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (vault.Record, bool) {
	records := m.cache.Records()
	if m.cursor < 0 || m.cursor >= len(records) {
		return vault.Record{}, false
	}
	return records[m.cursor], true
}

// Update is the bubbletea message dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshedMsg:
		m.clampCursor()
		if msg.err != nil {
			return m, m.showNotices("Failed to fetch passwords from server")
		}
		return m, m.showNotices("")

	case mutationDoneMsg:
		m.inFlight = false
		m.clampCursor()
		if msg.err == nil && m.editing {
			// Commit succeeded: the controller already reset the
			// draft, so close the form.
			m.editing = false
			m.clearInputs()
		}
		return m, m.showNotices("")

	case noticeFadeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The confirm overlay captures everything until answered.
	if m.pendingDeleteID != "" {
		switch msg.String() {
		case "y", "Y":
			id := m.pendingDeleteID
			m.pendingDeleteID = ""
			m.inFlight = true
			return m, m.deleteCmd(id)
		case "n", "N", "esc":
			m.pendingDeleteID = ""
		}
		return m, nil
	}

	if m.editing {
		return m.handleFormKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form.Reset()
		m.clearInputs()
		m.editing = false
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.focusInput((m.focusField + 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.inFlight {
			return m, nil
		}
		m.syncDraftFromInputs()
		m.inFlight = true
		return m, m.commitCmd()

	case msg.String() == "ctrl+t":
		m.form.ToggleMask()
		m.applyEcho()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusField], cmd = m.inputs[m.focusField].Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.cache.Len()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.New):
		m.form.Reset()
		m.clearInputs()
		m.editing = true
		m.focusInput(fieldSite)

	case key.Matches(msg, m.keys.Edit):
		rec, ok := m.selected()
		if !ok || m.inFlight {
			break
		}
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		started := m.form.BeginEdit(ctx, rec.ID)
		cancel()
		if started {
			m.loadDraftIntoInputs()
			m.editing = true
			m.focusInput(fieldSite)
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Delete):
		if rec, ok := m.selected(); ok && !m.inFlight {
			m.pendingDeleteID = rec.ID
		}

	case key.Matches(msg, m.keys.Copy):
		rec, ok := m.selected()
		if !ok {
			break
		}
		if err := clipboard.WriteAll(rec.Password); err != nil {
			return m, m.showNotices("Failed to copy to clipboard")
		}
		return m, m.showNotices("Copied to clipboard!")

	case key.Matches(msg, m.keys.Mask):
		m.form.ToggleMask()
		m.applyEcho()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	}

	return m, nil
}
