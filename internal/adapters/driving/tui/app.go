package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui/components/tabs"
	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui/views/pane"
	"github.com/custodia-labs/docdeck/internal/content"
	"github.com/custodia-labs/docdeck/internal/content/note"
	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// chromeLines is the number of rows used by the tab row, footer and status bar.
const chromeLines = 5

// appender is implemented by content that accepts appended lines.
type appender interface {
	Append(line string) error
}

// saver is implemented by content that can be written out.
type saver interface {
	Save(ctx context.Context) error
}

// Option configures an App.
type Option func(*App)

// WithVersion sets the version shown in the window title.
func WithVersion(version string) Option {
	return func(a *App) {
		a.version = version
	}
}

// WithShutdownTimeout bounds how long quitting waits for documents to
// drain. Zero waits forever.
func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) {
		a.shutdownTimeout = d
	}
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model
	tabRow *tabs.Row
	status *status.Bar
	prompt *input.Prompt
	pane   *pane.View

	// mode tracks what the keyboard is driving.
	mode messages.Mode

	version         string
	shutdownTimeout time.Duration

	// changes wakes the listen command when the manager reports a change.
	changes chan struct{}
	release []func()

	// windowTitle is the last title sent to the terminal.
	windowTitle string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts ...Option) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingManager)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	h := help.New()
	h.ShowAll = true

	a := &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		help:    h,
		tabRow:  tabs.NewRow(s),
		status:  status.NewBar(s, km),
		prompt:  input.NewPrompt(s),
		pane:    pane.NewView(s),
		mode:    messages.ModeNormal,
		version: "dev",
		changes: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.release = append(a.release,
		ports.Manager.OnCountChanged(func(int) { a.signal() }),
		ports.Manager.OnActiveDocumentChanged(func(_, _ driving.Document) { a.signal() }),
		ports.Manager.OnDocumentEvent(func(domain.DocumentEvent) { a.signal() }),
	)
	a.refresh()

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(a.windowTitle),
		a.listen(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.DeckChanged:
		return a, tea.Batch(a.refresh(), a.listen())

	case messages.DocumentOpened:
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.setMessage("Opened " + msg.Title)
		}
		return a, a.refresh()

	case messages.DocumentClosed:
		switch {
		case msg.Err != nil:
			a.setError(msg.Err)
		case !msg.Closed:
			a.setMessage("Kept open: unsaved changes (W to force)")
		default:
			a.setMessage("Closed")
		}
		return a, a.refresh()

	case messages.DocumentSaved:
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.setMessage("Saved")
		}
		a.pane.Refresh()
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.ShutdownCompleted:
		a.err = msg.Err
		a.Close()
		return a, tea.Quit

	case messages.Quit:
		return a, a.quit()
	}

	return a, nil
}

// handleKey routes a key press according to the current mode.
//
//nolint:gocyclo // one branch per binding
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case a.mode == messages.ModeQuitting:
		return nil
	case msg.Type == tea.KeyCtrlC:
		return a.quit()
	case a.mode.Prompting():
		return a.handlePromptKey(msg)
	case a.mode == messages.ModeHelp:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a.quit()
		case key.Matches(msg, a.keymap.Help, a.keymap.Cancel):
			a.mode = messages.ModeNormal
			a.status.Clear()
		}
		return nil
	}

	km := a.keymap
	switch {
	case key.Matches(msg, km.Quit):
		return a.quit()

	case key.Matches(msg, km.Help):
		a.mode = messages.ModeHelp
		a.status.SetState(status.StateHelp)

	case key.Matches(msg, km.NewNote):
		return a.openCmd("")

	case key.Matches(msg, km.Open):
		return a.ask(messages.ModeOpen, "Open file", "path/to/note.txt", "")

	case key.Matches(msg, km.NextTab):
		a.ports.Tabs.UserSelectNext(1)
		return a.refresh()

	case key.Matches(msg, km.PrevTab):
		a.ports.Tabs.UserSelectNext(-1)
		return a.refresh()

	case key.Matches(msg, km.GoToTab):
		n, err := strconv.Atoi(msg.String())
		if err != nil {
			return nil
		}
		return a.goToTab(n - 1)

	case key.Matches(msg, km.Show):
		return a.showHidden()

	case key.Matches(msg, km.Hide):
		doc := a.active()
		if doc == nil {
			return nil
		}
		doc.Hide()
		return a.refresh()

	case key.Matches(msg, km.Close):
		return a.closeCmd(false)

	case key.Matches(msg, km.ForceClose):
		return a.closeCmd(true)

	case key.Matches(msg, km.CloseTab):
		return a.closeTab()

	case key.Matches(msg, km.Rename):
		doc := a.active()
		if doc == nil {
			return nil
		}
		return a.ask(messages.ModeRename, "Rename tab", "title", doc.Title())

	case key.Matches(msg, km.Append):
		doc := a.active()
		if doc == nil {
			return nil
		}
		if _, ok := doc.Content().(appender); !ok {
			a.setError(ErrUnsupported)
			return nil
		}
		return a.ask(messages.ModeAppend, "Append line", "", "")

	case key.Matches(msg, km.Save):
		return a.saveCmd()

	case key.Matches(msg, km.Up):
		a.pane.ScrollUp()

	case key.Matches(msg, km.Down):
		a.pane.ScrollDown()
	}
	return nil
}

// handlePromptKey feeds the prompt and runs the prompt's action on confirm.
func (a *App) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keymap.Cancel):
		a.endPrompt()
		return nil
	case key.Matches(msg, a.keymap.Confirm):
		mode, value := a.mode, strings.TrimSpace(a.prompt.Value())
		a.endPrompt()
		if value == "" {
			return nil
		}
		return a.submit(mode, value)
	}

	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return cmd
}

// submit runs the action of a confirmed prompt.
func (a *App) submit(mode messages.Mode, value string) tea.Cmd {
	switch mode {
	case messages.ModeOpen:
		return a.openCmd("file:" + value)

	case messages.ModeRename:
		doc := a.active()
		if doc == nil {
			a.setError(ErrNoActiveDocument)
			return nil
		}
		a.ports.Tabs.UserRename(doc.Slot(), value)
		return a.refresh()

	case messages.ModeAppend:
		doc := a.active()
		if doc == nil {
			a.setError(ErrNoActiveDocument)
			return nil
		}
		ap, ok := doc.Content().(appender)
		if !ok {
			a.setError(ErrUnsupported)
			return nil
		}
		if err := ap.Append(value); err != nil {
			a.setError(err)
			return nil
		}
		a.pane.Refresh()
	}
	return nil
}

func (a *App) ask(mode messages.Mode, label, placeholder, value string) tea.Cmd {
	a.mode = mode
	a.status.SetState(status.StatePrompt)
	a.status.SetMessage(label)
	cmd := a.prompt.Ask(label, placeholder, value)
	a.prompt.SetWidth(a.width)
	return cmd
}

func (a *App) endPrompt() {
	a.mode = messages.ModeNormal
	a.prompt.Reset()
	a.status.Clear()
}

// openCmd opens a note built from parameter. An empty parameter opens a
// new empty note.
func (a *App) openCmd(parameter string) tea.Cmd {
	ctx := a.ctx
	ports := a.ports
	a.status.SetState(status.StateBusy)
	a.status.SetMessage("Opening")

	return func() tea.Msg {
		model, err := ports.Content.New(note.ContentType, parameter)
		if err != nil {
			return messages.DocumentOpened{Err: err}
		}
		doc, err := ports.Opener.Open(ctx, driving.OpenRequest{
			ID:          content.IDOf(model),
			ContentType: note.ContentType,
			Title:       content.TitleOf(model),
			Model:       model,
			Parameter:   parameter,
		})
		if err != nil {
			return messages.DocumentOpened{Err: err}
		}
		return messages.DocumentOpened{DocumentID: doc.ID(), Title: doc.Title()}
	}
}

// closeCmd closes the active document.
func (a *App) closeCmd(force bool) tea.Cmd {
	doc := a.active()
	if doc == nil {
		a.setError(ErrNoActiveDocument)
		return nil
	}
	ctx := a.ctx
	id := doc.ID()

	return func() tea.Msg {
		err := doc.Close(ctx, force)
		return messages.DocumentClosed{
			DocumentID: id,
			Closed:     doc.State() != domain.DocumentVisible,
			Err:        err,
		}
	}
}

// closeTab presses the close button of the selected tab. The container
// asks the content first and the manager destroys the document once its
// slot is gone.
func (a *App) closeTab() tea.Cmd {
	doc := a.active()
	if doc == nil {
		a.setError(ErrNoActiveDocument)
		return nil
	}
	slot := doc.Slot()

	closable := false
	for _, t := range a.ports.Tabs.VisibleTabs() {
		if t.ID == slot {
			closable = t.Closable
			break
		}
	}
	if !closable {
		a.setMessage("This tab has no close button")
		return nil
	}

	if !a.ports.Tabs.UserClose(slot) {
		a.setMessage("Kept open: unsaved changes (W to force)")
		return nil
	}
	a.setMessage("Closed")
	return a.refresh()
}

// goToTab selects the visible tab at index.
func (a *App) goToTab(index int) tea.Cmd {
	visible := a.ports.Tabs.VisibleTabs()
	if index < 0 || index >= len(visible) {
		return nil
	}
	a.ports.Tabs.UserSelect(visible[index].ID)
	return a.refresh()
}

// saveCmd saves the active document's content.
func (a *App) saveCmd() tea.Cmd {
	doc := a.active()
	if doc == nil {
		a.setError(ErrNoActiveDocument)
		return nil
	}
	sv, ok := doc.Content().(saver)
	if !ok {
		a.setError(ErrUnsupported)
		return nil
	}
	ctx := a.ctx
	id := doc.ID()

	return func() tea.Msg {
		return messages.DocumentSaved{DocumentID: id, Err: sv.Save(ctx)}
	}
}

// showHidden brings back the first hidden document.
func (a *App) showHidden() tea.Cmd {
	for _, doc := range a.ports.Manager.Documents() {
		if doc.State() != domain.DocumentHidden {
			continue
		}
		if err := a.ports.Manager.SetActiveDocument(doc); err != nil {
			a.setError(err)
			return nil
		}
		return a.refresh()
	}
	a.setMessage("No hidden documents")
	return nil
}

// quit saves the session and drains the deck, then exits.
func (a *App) quit() tea.Cmd {
	if a.mode == messages.ModeQuitting {
		return nil
	}
	a.mode = messages.ModeQuitting
	a.prompt.Reset()
	a.status.SetState(status.StateBusy)
	a.status.SetMessage("Saving session")

	ctx := a.ctx
	ports := a.ports
	timeout := a.shutdownTimeout

	return func() tea.Msg {
		var errs []error
		if ports.Session != nil {
			if err := ports.Session.Snapshot(ctx, ports.Manager); err != nil {
				errs = append(errs, fmt.Errorf("save session: %w", err))
			}
		}

		// Kept documents would hold the drain open until the timeout.
		for _, doc := range ports.Manager.Documents() {
			doc.SetDestroyOnClose(true)
		}

		shutdownCtx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			shutdownCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()

		if err := ports.Manager.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return messages.ShutdownCompleted{Err: errors.Join(errs...)}
	}
}

// signal wakes the listen command without blocking the notifier.
func (a *App) signal() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// listen waits for the next manager change.
func (a *App) listen() tea.Cmd {
	changes := a.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return messages.DeckChanged{}
	}
}

// refresh pulls the deck state into the view and returns a window title
// command when the title changed.
func (a *App) refresh() tea.Cmd {
	a.pane.SetDocument(a.active())

	docs := a.ports.Manager.Documents()
	hidden := 0
	for _, doc := range docs {
		if doc.State() == domain.DocumentHidden {
			hidden++
		}
	}
	a.status.SetCounts(len(docs), hidden)

	title := a.computeWindowTitle()
	if title == a.windowTitle {
		return nil
	}
	a.windowTitle = title
	return tea.SetWindowTitle(title)
}

func (a *App) computeWindowTitle() string {
	name := "docdeck v" + strings.TrimPrefix(a.version, "v")
	if doc := a.active(); doc != nil {
		return doc.Title() + " - " + name
	}
	return name
}

func (a *App) active() driving.Document {
	return a.ports.Manager.ActiveDocument()
}

func (a *App) setError(err error) {
	a.err = err
	a.status.SetState(status.StateError)
	a.status.SetMessage(err.Error())
	logger.Debug("tui: %v", err)
}

func (a *App) setMessage(msg string) {
	a.status.SetState(status.StateReady)
	a.status.SetMessage(msg)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	visible := a.ports.Tabs.VisibleTabs()
	row := make([]tabs.Tab, len(visible))
	for i, t := range visible {
		row[i] = tabs.Tab{Title: t.Header, Selected: t.Selected, Closable: t.Closable}
	}

	var body, footer string
	switch {
	case a.mode == messages.ModeHelp:
		body = a.help.View(a.keymap)
	default:
		body = a.pane.View()
	}
	if a.mode.Prompting() {
		footer = a.prompt.View()
	}

	body = lipgloss.NewStyle().Height(max(a.height-chromeLines, 1)).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		a.tabRow.Render(row),
		body,
		footer,
		a.status.View(),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Close releases the manager subscriptions. It is safe to call twice.
func (a *App) Close() {
	for _, release := range a.release {
		release()
	}
	a.release = nil
}

// Mode returns the current keyboard mode.
func (a *App) Mode() messages.Mode {
	return a.mode
}

// WindowTitle returns the current terminal title.
func (a *App) WindowTitle() string {
	return a.windowTitle
}

// StatusMessage returns the status bar message.
func (a *App) StatusMessage() string {
	return a.status.Message()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.tabRow.SetWidth(width)
	a.status.SetWidth(width)
	a.prompt.SetWidth(width)
	a.help.Width = width
	a.pane.SetDimensions(width, max(height-chromeLines, 1))
}
