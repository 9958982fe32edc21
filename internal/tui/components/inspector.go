package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/openview/internal/domain"
	"github.com/mmcdole/openview/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight = 2
	InspectorTitleLines   = 2
)

// ImageDetails is what the inspector shows for a selected image.
type ImageDetails struct {
	Image         domain.ImageEntry
	ThumbnailURL  string
	ThumbnailSize int
}

// Inspector displays the addresses and dimensions of the selected entry
type Inspector struct {
	image     *ImageDetails
	directory *domain.DirectoryEntry
	width     int
	height    int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetImage shows an image
func (i *Inspector) SetImage(details ImageDetails) {
	i.image = &details
	i.directory = nil
}

// SetDirectory shows a directory
func (i *Inspector) SetDirectory(dir domain.DirectoryEntry) {
	i.directory = &dir
	i.image = nil
}

// Clear empties the inspector
func (i *Inspector) Clear() {
	i.image = nil
	i.directory = nil
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// HasItem returns true if there is an item to display
func (i Inspector) HasItem() bool {
	return i.image != nil || i.directory != nil
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := max(i.width-3, 10)

	var body string
	switch {
	case i.image != nil:
		body = renderImageDetails(*i.image, contentWidth)
	case i.directory != nil:
		body = renderDirectoryDetails(*i.directory, contentWidth)
	default:
		body = styles.DimStyle.Render("Nothing selected")
	}

	lines := splitLines(body)
	maxLines := i.height - InspectorBorderHeight - InspectorTitleLines
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate("Info", contentWidth))
	rendered := titleLine + "\n\n" + strings.Join(lines, "\n")

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(i.width - frameW).
		Height(i.height - frameH).
		Render(rendered)
}

func renderImageDetails(d ImageDetails, width int) string {
	img := d.Image
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(img.Name, width)))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(styles.TruncateLeft(img.RelativePath, width)))
	b.WriteString("\n\n")

	meta := []string{fmt.Sprintf("#%d", img.Index+1)}
	if img.Width > 0 && img.Height > 0 {
		meta = append(meta,
			fmt.Sprintf("%d×%d", img.Width, img.Height),
			fmt.Sprintf("%.2f:1", img.AspectRatio()))
	}
	b.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	writeField(&b, "Image", img.URL, width)
	writeField(&b, fmt.Sprintf("Thumbnail %dpx", d.ThumbnailSize), d.ThumbnailURL, width)
	return strings.TrimRight(b.String(), "\n")
}

func renderDirectoryDetails(dir domain.DirectoryEntry, width int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(dir.Name+"/", width)))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(styles.TruncateLeft(dir.RelativePath, width)))
	b.WriteString("\n\n")
	writeField(&b, "Directory", dir.URL, width)
	return strings.TrimRight(b.String(), "\n")
}

func writeField(b *strings.Builder, label, value string, width int) {
	b.WriteString(styles.AccentStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(hardWrap(value, width))
	b.WriteString("\n\n")
}

// hardWrap breaks s every width runes. URLs have no spaces to wrap on.
func hardWrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	var lines []string
	for len(runes) > width {
		lines = append(lines, string(runes[:width]))
		runes = runes[width:]
	}
	lines = append(lines, string(runes))
	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
