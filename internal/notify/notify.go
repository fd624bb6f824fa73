// Package notify provides the in-app notification center: a toast queue with
// per-kind display durations, and a printer that renders toasts for the CLI.
package notify

//go:generate mockgen -destination=mock/mock_center.go -package=notifymock github.com/KirkDiggler/pokequest/internal/notify Center

import "time"

// Kind is the visual category of a toast
type Kind string

// Toast kinds
const (
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
	// KindNeutral is the informational style used when the player runs away
	KindNeutral Kind = "flee"
)

// Default display durations per kind
const (
	SuccessDuration = 4 * time.Second
	WarningDuration = 5 * time.Second
	ErrorDuration   = 6 * time.Second
	NeutralDuration = 3 * time.Second
)

// Center receives fire-and-forget notifications
type Center interface {
	Success(title, message, imageURL string)
	Warning(title, message, imageURL string)
	Error(title, message, imageURL string)
	// Neutral carries no image
	Neutral(title, message string)
}

// Toast is one queued notification
type Toast struct {
	ID       string
	Kind     Kind
	Title    string
	Message  string
	ImageURL string
	Duration time.Duration
	ShownAt  time.Time
}

// ExpiresAt is when the toast leaves the screen
func (t *Toast) ExpiresAt() time.Time {
	return t.ShownAt.Add(t.Duration)
}
