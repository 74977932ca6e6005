// Package automation runs scripted and randomised sessions without the TUI:
// YAML replay scenarios, Monte Carlo drops and probability sweeps.
package automation
