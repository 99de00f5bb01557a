// Package output renders run reports and plans for the terminal.
//
// Rendering is two-phase: Go templates lay out the data and call the
// "style" function, which applies a named lipgloss style from the styles
// package. With color disabled, style returns its text unchanged.
package output
