package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input. Any session call a key makes queues
// events, so every path drains the queue before returning.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	case StateFinding:
		cmd = m.handleFinderKey(msg)
	case StateSlideshow:
		cmd = m.handleSlideshowKey(msg)
	default:
		cmd = m.handleBrowsingKey(msg)
	}
	cmd = tea.Batch(cmd, m.processEvents())
	return m, cmd
}

func (m *Model) handleBrowsingKey(msg tea.KeyMsg) tea.Cmd {
	// Typing into the filter takes every key except ctrl+c
	if m.Grid.IsFilterTyping() {
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		return m.updateGrid(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return nil

	case key.Matches(msg, Keys.Escape):
		if m.Grid.IsFiltering() {
			m.Grid.ClearFilter()
			m.updateInspector()
		}
		return nil

	case key.Matches(msg, Keys.Filter):
		m.Grid.ToggleFilter()
		return nil

	case key.Matches(msg, Keys.Find):
		m.Finder.Show(m.session.Items.Images())
		m.Finder.SetSize(m.Width, m.Height)
		m.State = StateFinding
		return nil

	case key.Matches(msg, Keys.LoadMore):
		return m.loadMore(true)

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return nil

	case key.Matches(msg, Keys.Home):
		if m.Location.Directory() == "" {
			return nil
		}
		return m.navigateTo("")

	case key.Matches(msg, Keys.Back):
		return m.navigateParent()

	case key.Matches(msg, Keys.Open):
		if _, img := m.Grid.Selected(); img != nil {
			return m.openImage(*img)
		}
		return nil

	case key.Matches(msg, Keys.Enter):
		dir, img := m.Grid.Selected()
		switch {
		case dir != nil:
			return m.navigateTo(dir.RelativePath)
		case img != nil:
			return m.showSlide(img.Index)
		}
		return nil
	}

	return m.updateGrid(msg)
}

// updateGrid routes a key to the grid, then loads more if the cursor
// reached the bottom
func (m *Model) updateGrid(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	m.updateInspector()
	return tea.Batch(cmd, m.maybeLoadMore())
}

func (m *Model) handleSlideshowKey(msg tea.KeyMsg) tea.Cmd {
	current := m.Slideshow.Current()

	switch {
	case msg.String() == "ctrl+c":
		return tea.Quit

	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Quit):
		m.Slideshow.Hide()
		m.State = StateBrowsing
		return nil

	case key.Matches(msg, Keys.Prev):
		if current.Index > 0 {
			return m.showSlide(current.Index - 1)
		}
		return nil

	case key.Matches(msg, Keys.Next):
		if current.Index+1 < m.session.Items.ImageCount() {
			return m.showSlide(current.Index + 1)
		}
		// Past the last loaded image: ask for more and stay put
		return m.loadMore(false)

	case key.Matches(msg, Keys.LoadMore):
		return m.loadMore(true)

	case key.Matches(msg, Keys.Open):
		return m.openImage(current)
	}
	return nil
}

func (m *Model) handleFinderKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	var cmd tea.Cmd
	var selected bool
	m.Finder, cmd, selected = m.Finder.Update(msg)

	if selected {
		img := m.Finder.SelectedImage()
		m.Finder.Hide()
		m.State = StateBrowsing
		if img != nil {
			return m.showSlide(img.Index)
		}
		return nil
	}
	if !m.Finder.IsVisible() {
		m.State = StateBrowsing
	}
	return cmd
}
