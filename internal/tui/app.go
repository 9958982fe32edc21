package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/openview/internal/domain"
	"github.com/mmcdole/openview/internal/gallery"
	"github.com/mmcdole/openview/internal/tui/components"
	"github.com/mmcdole/openview/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSlideshow
	StateFinding
	StateHelp
)

// Layout proportions
const (
	GridColumnPercent = 60
	MinColumnWidth    = 30

	// Inspector is only shown when the terminal is at least this wide
	MinInspectorWidth = 90

	// Vertical layout: single footer line
	ChromeHeight = 1

	statusDuration = 4 * time.Second
	tickInterval   = 100 * time.Millisecond
)

// Options configures the gallery sessions the TUI starts.
type Options struct {
	PageSize      int // items per page, 0 = server default
	PreviewSize   int // inspector preview width in pixels
	FetchTimeout  time.Duration
	ShowInspector bool
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Collaborators
	Repo   domain.ListingRepository
	Opener ImageOpener
	opts   Options
	logger *slog.Logger

	// Directory session
	Location  gallery.StaticLocation
	session   *gallery.Model
	sessionID int
	events    *EventQueue
	PageState domain.PageState

	// UI Components
	Grid      components.Grid
	Inspector components.Inspector
	Slideshow components.Slideshow
	Finder    components.Finder

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusKind    domain.NotificationKind
	statusSeq     int
	SpinnerFrame  int
	ShowInspector bool
}

// NewModel creates the application model browsing loc. Nothing is fetched
// until the first window size arrives and the session is marked ready.
func NewModel(loc gallery.StaticLocation, repo domain.ListingRepository, opener ImageOpener, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		State:         StateBrowsing,
		Repo:          repo,
		Opener:        opener,
		opts:          opts,
		logger:        logger,
		Grid:          components.NewGrid(),
		Inspector:     components.NewInspector(),
		Slideshow:     components.NewSlideshow(),
		Finder:        components.NewFinder(),
		ShowInspector: opts.ShowInspector,
	}
	m.startSession(loc)
	return m
}

// Session returns the current directory session
func (m Model) Session() *gallery.Model {
	return m.session
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return TickCmd(tickInterval)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.updateLayout()
		if !m.Ready {
			m.Ready = true
			m.session.MarkReady()
			cmd := m.processEvents()
			return m, cmd
		}
		load := m.maybeLoadMore()
		cmd := tea.Batch(load, m.processEvents())
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case PageLoadedMsg:
		if msg.Session != m.sessionID {
			m.logger.Debug("dropping page for a closed session", "session", msg.Session)
			return m, nil
		}
		m.session.Items.Complete(msg.Result)
		cmd := m.processEvents()
		return m, cmd

	case ImageOpenedMsg:
		cmd := m.setStatus("Opened "+msg.Image.Name, domain.NotificationInfo)
		return m, cmd

	case ErrMsg:
		m.logger.Error("command failed", "error", msg.Err)
		cmd := m.setStatus(msg.Error(), domain.NotificationError)
		return m, cmd

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

// setStatus shows a transient footer message
func (m *Model) setStatus(text string, kind domain.NotificationKind) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusKind = kind
	return ClearStatusCmd(m.statusSeq, statusDuration)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateSlideshow:
		return lipgloss.JoinVertical(lipgloss.Left, m.Slideshow.View(), m.renderFooter())
	}

	grid := m.Grid
	grid.SetBreadcrumb(m.breadcrumb())
	grid.SetHint(m.loadHint())

	content := grid.View()
	if m.inspectorVisible() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.Inspector.View())
	}

	view := lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())

	if m.State == StateFinding {
		view = m.Finder.View()
	}
	return view
}

// breadcrumb renders "Home / a / b" for the current session
func (m Model) breadcrumb() string {
	parts := []string{m.session.Fragments.Home().Name}
	for _, f := range m.session.Fragments.Fragments() {
		parts = append(parts, f.Name)
	}
	return strings.Join(parts, " / ")
}

// loadHint describes the pagination state on the last line of the grid
func (m Model) loadHint() string {
	switch m.PageState {
	case domain.StateLoading:
		return styles.RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	case domain.StateFailed:
		return styles.ErrorStyle.Render("Loading failed") + styles.DimStyle.Render(" · press ") +
			styles.AccentStyle.Render("m") + styles.DimStyle.Render(" to retry")
	case domain.StateEnd:
		return ""
	default:
		return styles.AccentStyle.Render("m") + styles.DimStyle.Render(" load more")
	}
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: notification, or what is loaded so far
	var left string
	if m.StatusMsg != "" {
		left = styles.NotificationStyle(m.StatusKind).Render(m.StatusMsg)
	} else {
		left = styles.DimStyle.Render(fmt.Sprintf("%d directories · %d images",
			m.Grid.DirectoryCount(), m.Grid.ImageCount()))
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSING                        SLIDESHOW
  j/k        Up/down              h/l    Previous/next
  g/G        First/last           o      Open in viewer
  Ctrl+u/d   Half page            m      Load more
  Enter      Open                 Esc    Back to list
  h/Bksp     Parent directory
  ~          Home

LOADING & SEARCH                OTHER
  m          Load more / retry    o      Open in viewer
  /          Filter               i      Toggle inspector
  f          Find image           q      Quit
                                  ?      This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
