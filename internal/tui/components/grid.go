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

// Layout constants for grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Breadcrumb line at top, load hint line at bottom
	BreadcrumbLines = 1
	HintLines       = 1

	// Extra safety margin for item width calculations
	ItemWidthMargin = 2
)

// Grid lists the directories and images of a directory session.
// Directories always come first, images follow in arrival order.
type Grid struct {
	directories []domain.DirectoryEntry
	images      []domain.ImageEntry

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width  int
	height int

	breadcrumb string
	hint       string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	matches      []search.Match // nil when no query is applied
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Grid{
		filterInput: ti,
	}
}

// Reset drops every entry, used when a new directory session starts.
func (g *Grid) Reset() {
	g.directories = nil
	g.images = nil
	g.cursor = 0
	g.offset = 0
	g.clearFilter()
}

// AppendDirectories adds a batch of directories after the ones already listed.
func (g *Grid) AppendDirectories(batch []domain.DirectoryEntry) {
	if g.matches == nil && g.cursor >= len(g.directories) && g.rawItemCount() > 0 {
		// Keep the same image selected as the directory block grows.
		g.cursor += len(batch)
		g.ensureVisible()
	}
	g.directories = append(g.directories, batch...)
	g.refilter()
}

// AppendImages adds a batch of images.
func (g *Grid) AppendImages(batch []domain.ImageEntry) {
	g.images = append(g.images, batch...)
	g.refilter()
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcMaxVisible()
	g.ensureVisible()
}

// SetBreadcrumb sets the breadcrumb text displayed on the first line
func (g *Grid) SetBreadcrumb(crumb string) {
	g.breadcrumb = crumb
}

// SetHint sets the pagination hint displayed on the last line
func (g *Grid) SetHint(hint string) {
	g.hint = hint
}

// recalcMaxVisible calculates maxVisible accounting for chrome and filter bar
func (g *Grid) recalcMaxVisible() {
	interiorHeight := g.height - BorderHeight
	g.maxVisible = interiorHeight - ScrollIndicatorLines - BreadcrumbLines - HintLines
	if g.filterActive {
		g.maxVisible--
	}
	if g.maxVisible < 1 {
		g.maxVisible = 1
	}
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor sets the cursor position
func (g *Grid) SetCursor(pos int) {
	last := g.itemCount() - 1
	if last < 0 {
		g.cursor = 0
		return
	}
	g.cursor = max(0, min(pos, last))
	g.ensureVisible()
}

// Len returns the number of visible entries (accounting for filter)
func (g Grid) Len() int {
	return g.itemCount()
}

// DirectoryCount returns the number of directories listed
func (g Grid) DirectoryCount() int {
	return len(g.directories)
}

// ImageCount returns the number of images listed
func (g Grid) ImageCount() int {
	return len(g.images)
}

// Selected returns the entry under the cursor. At most one result is non-nil.
func (g Grid) Selected() (*domain.DirectoryEntry, *domain.ImageEntry) {
	count := g.itemCount()
	if count == 0 || g.cursor >= count {
		return nil, nil
	}
	return g.entryAt(g.mapIndex(g.cursor))
}

// SelectImage moves the cursor onto the image with the given session index.
// An active filter is cleared if it hides that image.
func (g *Grid) SelectImage(index int) {
	if index < 0 || index >= len(g.images) {
		return
	}
	raw := len(g.directories) + index
	if g.matches != nil {
		for i, m := range g.matches {
			if m.Index == raw {
				g.SetCursor(i)
				return
			}
		}
		g.clearFilter()
	}
	g.SetCursor(raw)
}

// AtBottom reports whether the user has reached the end of the listing:
// the cursor sits on the last row or every entry fits on screen.
// A filtered view never counts as the bottom.
func (g Grid) AtBottom() bool {
	if g.matches != nil {
		return false
	}
	count := g.itemCount()
	return count <= g.maxVisible || g.cursor >= count-1
}

func (g Grid) entryAt(raw int) (*domain.DirectoryEntry, *domain.ImageEntry) {
	if raw < len(g.directories) {
		return &g.directories[raw], nil
	}
	raw -= len(g.directories)
	if raw < len(g.images) {
		return nil, &g.images[raw]
	}
	return nil, nil
}

// ensureVisible ensures the cursor is visible
func (g *Grid) ensureVisible() {
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	if g.maxVisible > 0 && g.cursor >= g.offset+g.maxVisible {
		g.offset = g.cursor - g.maxVisible + 1
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active (showing filtered results)
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused (typing mode)
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	selected := -1
	if g.matches != nil && g.cursor < len(g.matches) {
		selected = g.matches[g.cursor].Index
	}
	g.filterActive = false
	g.filterQuery = ""
	g.matches = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcMaxVisible()
	if selected >= 0 {
		g.SetCursor(selected)
	}
}

// applyFilter filters entries based on the current query
func (g *Grid) applyFilter() {
	query := g.filterInput.Value()
	if query == g.filterQuery {
		return
	}
	g.filterQuery = query
	g.refilter()
	g.cursor = 0
	g.offset = 0
}

// refilter recomputes matches after the query or the entries change.
func (g *Grid) refilter() {
	if g.filterQuery == "" {
		g.matches = nil
		return
	}
	g.matches = search.MatchNames(g.filterQuery, g.names())
	if g.matches == nil {
		g.matches = []search.Match{}
	}
	if g.cursor >= len(g.matches) {
		g.cursor = max(0, len(g.matches)-1)
	}
	g.ensureVisible()
}

func (g Grid) names() []string {
	names := make([]string, 0, g.rawItemCount())
	for _, d := range g.directories {
		names = append(names, d.Name)
	}
	for _, img := range g.images {
		names = append(names, img.Name)
	}
	return names
}

func (g Grid) itemCount() int {
	if g.matches != nil {
		return len(g.matches)
	}
	return g.rawItemCount()
}

func (g Grid) rawItemCount() int {
	return len(g.directories) + len(g.images)
}

// mapIndex maps a cursor position to the index across directories+images
func (g Grid) mapIndex(i int) int {
	if g.matches != nil && i < len(g.matches) {
		return g.matches[i].Index
	}
	return i
}

// Init initializes the component
func (g Grid) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	// Typing into the filter
	if g.filterActive && g.filterInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, GridKeys.Escape):
				g.clearFilter()
				return g, nil
			case key.Matches(msg, GridKeys.Enter):
				g.filterInput.Blur()
				return g, nil
			case msg.String() == "backspace" && g.filterInput.Value() == "":
				g.clearFilter()
				return g, nil
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	// Filter applied but blurred: navigating the results
	if g.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, GridKeys.Escape):
				g.clearFilter()
				return g, nil
			case key.Matches(msg, GridKeys.Filter):
				g.filterInput.Focus()
				return g, nil
			}
		}
	}

	count := g.itemCount()
	if count == 0 {
		return g, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, GridKeys.Down):
			if g.cursor < count-1 {
				g.cursor++
			}
		case key.Matches(msg, GridKeys.Up):
			if g.cursor > 0 {
				g.cursor--
			}
		case key.Matches(msg, GridKeys.Home):
			g.cursor = 0
		case key.Matches(msg, GridKeys.End):
			g.cursor = count - 1
		case key.Matches(msg, GridKeys.HalfDown):
			g.cursor = min(g.cursor+g.maxVisible/2, count-1)
		case key.Matches(msg, GridKeys.HalfUp):
			g.cursor = max(g.cursor-g.maxVisible/2, 0)
		case key.Matches(msg, GridKeys.PageDown):
			g.cursor = min(g.cursor+g.maxVisible, count-1)
		case key.Matches(msg, GridKeys.PageUp):
			g.cursor = max(g.cursor-g.maxVisible, 0)
		}
		g.ensureVisible()
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	style := styles.ActiveBorder

	content := g.renderList()

	// Subtract frame (border) size so total rendered size equals g.width x g.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(g.width - frameW).
		Height(g.height - frameH).
		Render(content)
}

func (g Grid) renderList() string {
	itemWidth := g.width - BorderWidth - HorizontalPadding - ItemWidthMargin

	// Breadcrumb is always first line (even if empty, for consistent layout)
	breadcrumbLine := " "
	if g.breadcrumb != "" {
		breadcrumbLine = styles.AccentStyle.Render(styles.TruncateLeft(g.breadcrumb, itemWidth))
	}

	hintLine := " "
	if g.hint != "" {
		hintLine = g.hint
	}

	count := g.itemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No items")
		if g.filterActive && g.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := breadcrumbLine + "\n" + " " + "\n" + emptyMsg + "\n" + " " + "\n" + hintLine
		if g.filterActive {
			content += "\n" + g.renderFilterBar()
		}
		return content
	}

	end := min(g.offset+g.maxVisible, count)

	var lines []string
	for i := g.offset; i < end; i++ {
		var highlight []int
		if g.matches != nil {
			highlight = g.matches[i].MatchedIndexes
		}
		dir, img := g.entryAt(g.mapIndex(i))
		switch {
		case dir != nil:
			lines = append(lines, renderDirectoryRow(*dir, highlight, i == g.cursor, itemWidth))
		case img != nil:
			lines = append(lines, renderImageRow(*img, highlight, i == g.cursor, itemWidth))
		}
	}

	// ALWAYS reserve space for scroll indicators to prevent layout shifts
	header := " "
	if g.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := breadcrumbLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer + "\n" + hintLine

	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}

	return content
}

func renderDirectoryRow(dir domain.DirectoryEntry, highlight []int, selected bool, width int) string {
	accent := styles.Accent
	parts := []styles.RowPart{
		{Text: styles.DirectoryChar, Foreground: &accent},
		{Text: " "},
	}
	parts = append(parts, highlightParts(styles.Truncate(dir.Name, width-6), highlight)...)
	parts = append(parts, styles.RowPart{Text: "/"})
	return styles.RenderListRow(parts, selected, width)
}

func renderImageRow(img domain.ImageEntry, highlight []int, selected bool, width int) string {
	dimGray := styles.DimGray
	dims := ""
	if img.Width > 0 && img.Height > 0 {
		dims = fmt.Sprintf(" %d×%d", img.Width, img.Height)
	}
	parts := []styles.RowPart{
		{Text: styles.ImageChar, Foreground: &dimGray},
		{Text: " "},
	}
	parts = append(parts, highlightParts(styles.Truncate(img.Name, width-len(dims)-6), highlight)...)
	parts = append(parts, styles.RowPart{Text: dims, Foreground: &dimGray})
	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits name into runs so matched characters render in the accent color.
func highlightParts(name string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: name}}
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	accent := styles.Accent
	var parts []styles.RowPart
	var run strings.Builder
	runHit := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		part := styles.RowPart{Text: run.String()}
		if runHit {
			part.Foreground = &accent
			part.Bold = true
		}
		parts = append(parts, part)
		run.Reset()
	}

	for i, r := range name {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}

// renderFilterBar renders the filter input bar
func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()
	countStr := ""
	if g.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.itemCount(), g.rawItemCount()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, input, countStr)
}
