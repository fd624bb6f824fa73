package notify

import (
	"fmt"
	"io"
	"sync"
)

var kindLabels = map[Kind]string{
	KindSuccess: "[ok]",
	KindWarning: "[!]",
	KindError:   "[error]",
	KindNeutral: "[~]",
}

// Printer renders toasts as single lines
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes one toast. It matches the QueueConfig.Listener signature.
func (p *Printer) Print(t *Toast) {
	label, ok := kindLabels[t.Kind]
	if !ok {
		label = "[" + string(t.Kind) + "]"
	}

	line := label + " " + t.Title
	if t.Message != "" {
		line += ": " + t.Message
	}
	if t.ImageURL != "" {
		line += " (" + t.ImageURL + ")"
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.w, line)
}
