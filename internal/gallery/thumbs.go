package gallery

// ThumbnailSizes are the thumbnail edge lengths the server can render, ascending.
var ThumbnailSizes = []int{100, 240, 360, 500, 800, 1024, 1600, 2048}

// SlideshowMaxSize is the longest edge requested for full-screen display.
const SlideshowMaxSize = 2048

// ThumbnailSize picks the breakpoint for an image displayed at displayPx.
// Thumbnails are oversampled 2x for high-density displays; when no
// breakpoint is large enough the largest one is used.
func ThumbnailSize(displayPx int) int {
	needed := displayPx * 2
	for _, size := range ThumbnailSizes {
		if size >= needed {
			return size
		}
	}
	return ThumbnailSizes[len(ThumbnailSizes)-1]
}

// SlideshowSize scales width x height down to fit in SlideshowMaxSize,
// keeping the aspect ratio. Smaller images are returned unchanged.
func SlideshowSize(width, height int) (int, int) {
	if width <= SlideshowMaxSize && height <= SlideshowMaxSize {
		return width, height
	}
	if width > height {
		return SlideshowMaxSize, height * SlideshowMaxSize / width
	}
	return width * SlideshowMaxSize / height, SlideshowMaxSize
}
