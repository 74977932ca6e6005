// Package export writes board snapshots to files.
//
// SVG output reproduces the board drawing with 40 unit cells; JSON and CSV
// carry the numbers behind it for use in other tools.
package export
