package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyO     = 79 // O key (ASCII)
	KeyR     = 82 // R key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)
	KeyEsc   = 256
)

// Arrow keys (GLFW).
const (
	KeyArrowRight = 262
	KeyArrowLeft  = 263
	KeyArrowDown  = 264
	KeyArrowUp    = 265
)

// Additional non-printable keys
const (
	KeyLeftShift    = 340 // Left Shift (GLFW)
	KeyLeftControl  = 341 // Left Control (GLFW)
	KeyLeftSuper    = 343 // Left Super/Meta (GLFW)
	KeyRightShift   = 344 // Right Shift (GLFW)
	KeyRightControl = 345 // Right Control (GLFW)
	KeyRightSuper   = 347 // Right Super/Meta (GLFW)
)
