package window

// WindowBuilderOption is a functional option for configuring a Window.
type WindowBuilderOption func(*engineWindow)

// Unbounded disables a size limit passed to WithMinSize or WithMaxSize.
const Unbounded = -1

// WithTitle sets the window title bar text.
//
// Parameters:
//   - title: the title to display
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		if title != "" {
			w.title = title
		}
	}
}

// WithSize sets the requested initial window size. On high-DPI displays the reported
// client size is the framebuffer size, which may be larger.
// Non-positive values keep the default.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithMinSize limits how small the user can resize the window.
//
// Parameters:
//   - width: minimum width in pixels, or Unbounded
//   - height: minimum height in pixels, or Unbounded
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = sizeLimit(width)
		w.minHeight = sizeLimit(height)
	}
}

// WithMaxSize limits how large the user can resize the window.
//
// Parameters:
//   - width: maximum width in pixels, or Unbounded
//   - height: maximum height in pixels, or Unbounded
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth = sizeLimit(width)
		w.maxHeight = sizeLimit(height)
	}
}

func sizeLimit(v int) int {
	if v <= 0 {
		return Unbounded
	}
	return v
}
