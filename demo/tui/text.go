package tui

// UI Text Constants
const (
	// Footer
	TextFooter = "←/→ categoría | ↑/↓ mover | 's' guardar | 'r' actualizar | 'q' salir"
)
