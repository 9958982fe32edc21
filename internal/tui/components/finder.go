package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/openview/internal/domain"
	"github.com/mmcdole/openview/internal/search"
	"github.com/mmcdole/openview/internal/tui/styles"
)

// Finder is the ranked image search modal. It searches the images loaded
// when it was opened.
type Finder struct {
	input     textinput.Model
	images    []domain.ImageEntry
	results   []domain.ImageEntry
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
}

// NewFinder creates a new finder component
func NewFinder() Finder {
	ti := textinput.New()
	ti.Placeholder = "Find image..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "f "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Finder{
		input: ti,
	}
}

// Show makes the finder visible over images
func (f *Finder) Show(images []domain.ImageEntry) {
	f.visible = true
	f.images = images
	f.results = nil
	f.cursor = 0
	f.prevQuery = ""
	f.input.SetValue("")
	f.input.Focus()
}

// Hide hides the finder
func (f *Finder) Hide() {
	f.visible = false
	f.input.Blur()
}

// IsVisible returns true if the finder is visible
func (f Finder) IsVisible() bool {
	return f.visible
}

// SetSize updates the component dimensions
func (f *Finder) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.input.Width = max(width-10, 10)
}

// Results returns the current ranked matches
func (f Finder) Results() []domain.ImageEntry {
	return f.results
}

// SelectedImage returns the highlighted result
func (f Finder) SelectedImage() *domain.ImageEntry {
	if len(f.results) == 0 || f.cursor >= len(f.results) {
		return nil
	}
	return &f.results[f.cursor]
}

// Update handles messages. The bool is true when a result was chosen.
func (f Finder) Update(msg tea.Msg) (Finder, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, FinderKeys.Escape):
			f.Hide()
			return f, nil, false
		case key.Matches(msg, FinderKeys.Enter):
			return f, nil, len(f.results) > 0
		case key.Matches(msg, FinderKeys.Down):
			if f.cursor < len(f.results)-1 {
				f.cursor++
			}
			return f, nil, false
		case key.Matches(msg, FinderKeys.Up):
			if f.cursor > 0 {
				f.cursor--
			}
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if q := f.input.Value(); q != f.prevQuery {
		f.prevQuery = q
		f.results = search.FilterImages(q, f.images)
		f.cursor = 0
	}
	return f, cmd, false
}

// View renders the component
func (f Finder) View() string {
	if !f.visible {
		return ""
	}

	modalWidth := min(max(f.width*2/3, 40), 80)
	maxResults := 10

	var b strings.Builder
	b.WriteString("Find Image")
	b.WriteString("\n\n")
	b.WriteString(f.input.View())
	b.WriteString("\n\n")

	switch {
	case len(f.results) == 0 && f.input.Value() != "":
		b.WriteString(styles.DimStyle.Render("No matches found"))
	case len(f.results) > 0:
		shown := min(len(f.results), maxResults)
		for i := 0; i < shown; i++ {
			img := f.results[i]
			style := styles.NormalItemStyle
			if i == f.cursor {
				style = styles.SelectedItemStyle
			}
			b.WriteString(styles.DimBadgeStyle.Render(fmt.Sprintf("#%d", img.Index+1)))
			b.WriteString(" ")
			b.WriteString(style.Render(styles.Truncate(img.Name, modalWidth-15)))
			b.WriteString("\n")
		}
		if len(f.results) > maxResults {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(f.results)-maxResults)))
		}
	}

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center, modal)
}
