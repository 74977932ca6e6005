// Package viz provides the terminal UI for the Galton board.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: the bubbletea model wrapping a [sim.Session]
//   - [Board]: layered Braille canvases drawing a [scene.Scene]
//   - [Canvas]: Braille-based pixel canvas
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	←/→ h/l  - Probability -/+ 0.01 (automatic), left/right choice (manual)
//	H/L      - Probability -/+ 0.10
//	U, Enter - Edit the total number of balls
//	M, Tab   - Switch between automatic and manual mode
//	R        - Start a new path (manual)
//	D, Space - Drop a random path (manual), shift+D drops ten
//	E        - Save the board as SVG
//	T        - Cycle color themes
//	?        - Show help overlay
//
// Entering manual mode clears every completed path.
package viz
