package session

// Event is broadcast to subscribers on session transitions.
type Event int

const (
	// SignedIn fires after a session is established and persisted.
	SignedIn Event = iota
	// SignedOut fires after the session and persisted credentials are cleared.
	SignedOut
)
