// Package picker runs the interactive branch picker.
//
// A [Session] holds the query state and walks the Running → Submitted or
// Running → Cancelled state machine one [Action] at a time. The bubbletea
// model translates key presses into actions through a [Keymap], polls every
// 16ms so the frame is redrawn without input, and quits as soon as the
// session leaves Running.
//
// Checkout happens synchronously inside the update that handles submit;
// it is the only backend call the picker makes.
package picker
