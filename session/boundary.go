package session

// Kind classifies a user-visible notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier delivers a user-visible notification. Fire-and-forget; the
// coordinator never consumes a result.
type Notifier interface {
	Notify(kind Kind, message string)
}

// Navigator performs a navigation side effect. Not awaited.
type Navigator interface {
	NavigateTo(path string)
}

// Canceller aborts every in-flight request. Satisfied by
// *inflight.Registry.
type Canceller interface {
	CancelAll() int
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(kind Kind, message string)

func (f NotifierFunc) Notify(kind Kind, message string) { f(kind, message) }

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) NavigateTo(path string) { f(path) }
