package tui

// inspectorVisible reports whether the inspector fits next to the grid
func (m Model) inspectorVisible() bool {
	return m.ShowInspector && m.Width >= MinInspectorWidth
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := m.Height - ChromeHeight

	gridWidth := m.Width
	if m.inspectorVisible() {
		gridWidth = max(m.Width*GridColumnPercent/100, MinColumnWidth)
		m.Inspector.SetSize(m.Width-gridWidth, contentHeight)
	}
	m.Grid.SetSize(gridWidth, contentHeight)

	m.Slideshow.SetSize(m.Width, contentHeight)
	m.Finder.SetSize(m.Width, m.Height)
}
