package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/pokequest/internal/errors"
	"github.com/KirkDiggler/pokequest/internal/pkg/clock"
	"github.com/KirkDiggler/pokequest/internal/pkg/idgen"
)

// QueueConfig holds the dependencies for the toast queue
type QueueConfig struct {
	Clock       clock.Clock
	IDGenerator idgen.Generator
	// Durations overrides the per-kind defaults (optional)
	Durations map[Kind]time.Duration
	// Listener is called synchronously for every new toast (optional)
	Listener func(*Toast)
}

// Validate ensures all required dependencies are provided
func (c *QueueConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	for kind, d := range c.Durations {
		if d <= 0 {
			vb.Fieldf("Durations", "%s duration must be positive", kind)
		}
	}

	return vb.Build()
}

// Queue is a Center that keeps toasts until they expire or are dismissed.
// It is safe for concurrent use.
type Queue struct {
	clock     clock.Clock
	idGen     idgen.Generator
	durations map[Kind]time.Duration
	listener  func(*Toast)

	mu     sync.Mutex
	toasts []*Toast
}

var _ Center = (*Queue)(nil)

// NewQueue creates a toast queue
func NewQueue(cfg *QueueConfig) (*Queue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	durations := map[Kind]time.Duration{
		KindSuccess: SuccessDuration,
		KindWarning: WarningDuration,
		KindError:   ErrorDuration,
		KindNeutral: NeutralDuration,
	}
	for kind, d := range cfg.Durations {
		durations[kind] = d
	}

	return &Queue{
		clock:     cfg.Clock,
		idGen:     cfg.IDGenerator,
		durations: durations,
		listener:  cfg.Listener,
	}, nil
}

// Success queues a success toast
func (q *Queue) Success(title, message, imageURL string) {
	q.push(KindSuccess, title, message, imageURL)
}

// Warning queues a warning toast
func (q *Queue) Warning(title, message, imageURL string) {
	q.push(KindWarning, title, message, imageURL)
}

// Error queues an error toast
func (q *Queue) Error(title, message, imageURL string) {
	q.push(KindError, title, message, imageURL)
}

// Neutral queues a flee toast
func (q *Queue) Neutral(title, message string) {
	q.push(KindNeutral, title, message, "")
}

func (q *Queue) push(kind Kind, title, message, imageURL string) {
	toast := &Toast{
		ID:       q.idGen.Generate(),
		Kind:     kind,
		Title:    title,
		Message:  message,
		ImageURL: imageURL,
		Duration: q.durations[kind],
		ShownAt:  q.clock.Now(),
	}

	q.mu.Lock()
	q.toasts = append(q.toasts, toast)
	q.mu.Unlock()

	slog.Debug("Toast queued",
		"toast_id", toast.ID,
		"kind", kind,
		"title", title,
	)

	if q.listener != nil {
		q.listener(toast)
	}
}

// Active prunes expired toasts and returns the remaining ones, oldest first
func (q *Queue) Active() []*Toast {
	now := q.clock.Now()

	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if now.Before(t.ExpiresAt()) {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(q.toasts); i++ {
		q.toasts[i] = nil
	}
	q.toasts = kept

	out := make([]*Toast, len(kept))
	copy(out, kept)
	return out
}

// Dismiss removes a toast before it expires. It reports whether the toast was queued.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return true
		}
	}
	return false
}
