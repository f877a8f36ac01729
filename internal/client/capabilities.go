package client

// The client core talks to its surroundings through narrow, single-method
// capabilities so it never depends on a particular UI, clipboard or prompt
// implementation.

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Confirmer asks the user a yes/no question and reports the answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Notifier surfaces a transient, non-blocking message to the user.
type Notifier interface {
	Notify(message string)
}

// ClipboardFunc adapts a function to the Clipboard interface.
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteText(text string) error { return f(text) }

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }
