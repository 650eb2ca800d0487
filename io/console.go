// Package io provides the output devices of the LS-8 machine.
// The PRN instruction writes register values to a Console.
package io

// Console is the output stream of the machine.
type Console interface {
	// Print emits the decimal representation of value.
	Print(value byte) error
}
