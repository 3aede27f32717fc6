// Package tui implements the posting theme previewer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/posting/internal/scripts"
	"github.com/opencode-ai/posting/internal/theme"
	"github.com/opencode-ai/posting/internal/tui/components"
	"github.com/opencode-ai/posting/internal/tui/styles"
)

// Config configures the previewer.
type Config struct {
	Store    *theme.Store
	Loader   *theme.Loader
	Theme    string
	ThemeDir string
	Watch    bool
	Logger   zerolog.Logger

	// Variables seeds the session variables shown as resolved in the preview.
	Variables map[string]string
	// Hooks run against the preview session; Setup runs once at startup.
	Hooks scripts.Hooks
}

// Run launches the theme previewer and blocks until it exits.
func Run(cfg Config) error {
	if cfg.Store == nil {
		return fmt.Errorf("theme store is required")
	}

	program := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Watch && cfg.Loader != nil && cfg.ThemeDir != "" {
		watch := WatchThemes(ctx, program, cfg.Loader, cfg.Store, cfg.ThemeDir, cfg.Logger)
		go func() {
			if msg := watch(); msg != nil {
				program.Send(msg)
			}
		}()
	}

	_, err := program.Run()
	return err
}

type model struct {
	width     int
	height    int
	store     *theme.Store
	themeDir  string
	current   *theme.Resolved
	styles    styles.Styles
	picker    *components.ThemePicker
	filtering bool
	status    string
	reloaded  time.Time

	variables scripts.VariableStore
	session   *scripts.Posting
	inbox     *notificationInbox
}

// notificationInbox collects script notifications until the next update.
type notificationInbox struct {
	items []scripts.Notification
}

func (n *notificationInbox) push(note scripts.Notification) {
	n.items = append(n.items, note)
}

func (n *notificationInbox) drain() []scripts.Notification {
	items := n.items
	n.items = nil
	return items
}

// DefaultPreviewHooks seeds the variables referenced by the preview sample.
func DefaultPreviewHooks() scripts.Hooks {
	return scripts.Hooks{
		Setup: func(p *scripts.Posting) error {
			return p.SetVariable("host", p.GetVariable("host", "api.example.com"))
		},
	}
}

const toggledVariable = "user_id"

const (
	minWidth    = 80
	minHeight   = 24
	pickerWidth = 28
)

func initialModel(cfg Config) model {
	registry := cfg.Store.Load()
	current, ok := registry.Fallback(cfg.Theme)

	m := model{
		store:     cfg.Store,
		themeDir:  cfg.ThemeDir,
		current:   current,
		styles:    styles.BuildStyles(current),
		variables: scripts.NewMemoryStore(cfg.Variables),
		inbox:     &notificationInbox{},
	}
	m.session = scripts.NewPosting(m.variables, m.inbox.push, cfg.Logger)
	name := theme.DefaultThemeName
	if current != nil {
		name = current.Name
	}
	m.picker = components.NewThemePicker(registry, name)
	if err := cfg.Hooks.RunSetup(m.session); err != nil {
		m.status = err.Error()
	}
	if !ok && cfg.Theme != "" {
		m.status = fmt.Sprintf("Theme %q not found, using %s.", cfg.Theme, name)
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg), nil
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.picker.Move(-1)
			m.previewSelected()
		case "down", "j":
			m.picker.Move(1)
			m.previewSelected()
		case "enter":
			if item := m.picker.SelectedItem(); item != nil {
				m.picker.Current = item.Name
				m.status = fmt.Sprintf("Selected %s.", item.Name)
			}
		case "/":
			m.filtering = true
		case "v":
			m.toggleVariable(toggledVariable)
		}
		m.applyNotifications()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case RegistryReloadedMsg:
		m.applyRegistry(msg.Registry)
		m.reloaded = msg.Timestamp
		m.status = fmt.Sprintf("Reloaded %d themes.", msg.Registry.Len())
		if msg.Err != nil {
			m.status = fmt.Sprintf("Reloaded with errors: %v", msg.Err)
		}
	case WatchErrorMsg:
		m.status = fmt.Sprintf("Theme watcher stopped: %v", msg.Err)
	}
	return m, nil
}

func (m model) updateFilter(msg tea.KeyMsg) model {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.picker.SetQuery("")
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyBackspace:
		query := []rune(m.picker.Query)
		if len(query) > 0 {
			m.picker.SetQuery(string(query[:len(query)-1]))
		}
	case tea.KeyRunes, tea.KeySpace:
		m.picker.SetQuery(m.picker.Query + string(msg.Runes))
	}
	m.previewSelected()
	return m
}

func (m *model) previewSelected() {
	item := m.picker.SelectedItem()
	if item == nil {
		return
	}
	if r, ok := m.store.Load().Get(item.Name); ok {
		m.current = r
		m.styles = styles.BuildStyles(r)
	}
}

func (m *model) toggleVariable(name string) {
	if _, ok := m.variables.Get(name); ok {
		m.variables.Delete(name)
		m.session.Notify(scripts.Notification{Title: "Variables", Message: fmt.Sprintf("$%s unset.", name)})
		return
	}
	if err := m.session.SetVariable(name, "42"); err != nil {
		m.session.Notify(scripts.Notification{Title: "Variables", Message: err.Error(), Severity: scripts.SeverityError})
		return
	}
	m.session.Notify(scripts.Notification{Title: "Variables", Message: fmt.Sprintf("$%s set.", name)})
}

func (m *model) applyNotifications() {
	for _, note := range m.inbox.drain() {
		m.status = note.Message
		if note.Severity == scripts.SeverityError {
			m.status = "Error: " + note.Message
		}
	}
}

func (m *model) applyRegistry(registry *theme.Registry) {
	m.picker.SetRegistry(registry)
	name := ""
	if m.current != nil {
		name = m.current.Name
	}
	current, _ := registry.Fallback(name)
	m.current = current
	m.styles = styles.BuildStyles(current)
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", strings.Join(m.smallViewLines(), "\n"))
		}
	}

	pickerLines := m.picker.Render(m.styles)
	if !m.hasUserThemes() && m.picker.Query == "" {
		pickerLines = append(pickerLines, "", components.EmptyUserThemes(m.themeDir).Render(m.styles, pickerWidth))
	}
	if m.filtering {
		pickerLines = append(pickerLines, "", m.styles.Muted.Render("Filtering: enter to keep, esc to clear."))
	}
	picker := lipgloss.NewStyle().Width(pickerWidth).Render(strings.Join(pickerLines, "\n"))
	preview := components.RenderThemePreview(m.styles, m.current, m.session.Variables())

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, picker, "  ", preview),
		"",
	}
	if m.status != "" {
		lines = append(lines, m.styles.Muted.Render(m.status))
	}
	if !m.reloaded.IsZero() {
		lines = append(lines, m.styles.Muted.Render("Last reload: "+m.reloaded.Format("15:04:05")))
	}
	lines = append(lines, m.styles.Muted.Render("Shortcuts: q quit | j/k move | enter select | / filter | v toggle $user_id"))

	return fmt.Sprintf("%s\n", strings.Join(lines, "\n"))
}

func (m model) hasUserThemes() bool {
	registry := m.store.Load()
	for _, t := range registry.Themes() {
		if t.Source != theme.SourceBuiltin {
			return true
		}
	}
	return false
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press q to quit."),
	}
}
