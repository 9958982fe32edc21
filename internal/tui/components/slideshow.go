package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/openview/internal/domain"
	"github.com/mmcdole/openview/internal/tui/styles"
)

// Slide is one image as presented by the slideshow.
type Slide struct {
	Image domain.ImageEntry
	URL   string // full-size request URL

	// Size the image is displayed at, fitted into the slideshow bounds
	FitWidth  int
	FitHeight int
}

// Slideshow is a full-screen view of one image at a time.
type Slideshow struct {
	visible bool
	slide   Slide
	loaded  int  // images loaded so far
	more    bool // more images may still arrive
	loading bool
	width   int
	height  int
}

// NewSlideshow creates a hidden slideshow
func NewSlideshow() Slideshow {
	return Slideshow{}
}

// Show opens the slideshow on slide
func (s *Slideshow) Show(slide Slide) {
	s.visible = true
	s.slide = slide
}

// Hide closes the slideshow
func (s *Slideshow) Hide() {
	s.visible = false
}

// IsVisible returns whether the slideshow is open
func (s Slideshow) IsVisible() bool {
	return s.visible
}

// Current returns the image being shown
func (s Slideshow) Current() domain.ImageEntry {
	return s.slide.Image
}

// SetProgress updates the position indicator
func (s *Slideshow) SetProgress(loaded int, more, loading bool) {
	s.loaded = loaded
	s.more = more
	s.loading = loading
}

// SetSize updates the component dimensions
func (s *Slideshow) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the component
func (s Slideshow) View() string {
	if !s.visible {
		return ""
	}
	img := s.slide.Image

	position := fmt.Sprintf("%d / %d", img.Index+1, s.loaded)
	if s.more {
		position += "+"
	}
	if s.loading {
		position += " " + styles.DimStyle.Render("loading...")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		styles.TitleStyle.Render(styles.Truncate(img.Name, max(s.width-20, 10))),
		"  ",
		styles.DimStyle.Render(position),
	)

	var meta []string
	if img.Width > 0 && img.Height > 0 {
		meta = append(meta, fmt.Sprintf("%d×%d", img.Width, img.Height))
	}
	if s.slide.FitWidth > 0 {
		meta = append(meta, fmt.Sprintf("shown at %d×%d", s.slide.FitWidth, s.slide.FitHeight))
	}
	metaLine := styles.DimStyle.Render(strings.Join(meta, " · "))
	urlLine := styles.SubtitleStyle.Render(styles.TruncateLeft(s.slide.URL, max(s.width-4, 10)))
	help := styles.HelpKeyStyle.Render("←/→") + styles.HelpDescStyle.Render(" browse  ") +
		styles.HelpKeyStyle.Render("o") + styles.HelpDescStyle.Render(" open  ") +
		styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" close")

	// header, meta, url, help and spacing take 6 lines
	frame := s.renderFrame(s.width-4, s.height-6-2)

	body := lipgloss.JoinVertical(lipgloss.Center, header, metaLine, "", frame, urlLine, help)
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, body)
}

// renderFrame draws a box with the image's aspect ratio inside the bounds.
// Terminal cells are about twice as tall as they are wide.
func (s Slideshow) renderFrame(maxW, maxH int) string {
	if maxW < 4 || maxH < 3 {
		return ""
	}
	ratio := s.slide.Image.AspectRatio()

	w := maxW
	h := int(float64(w) / ratio / 2)
	if h > maxH {
		h = maxH
		w = int(float64(h) * ratio * 2)
	}
	w = max(w, 4)
	h = max(h, 3)

	frameW, frameH := styles.FrameStyle.GetFrameSize()
	return styles.FrameStyle.
		Width(w - frameW).
		Height(h - frameH).
		Render(styles.DimStyle.Render(styles.ImageChar))
}
