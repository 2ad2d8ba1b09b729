package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/goliatone/go-profileform/pkg/notify"
)

// Notifier prints notifications as one line toasts.
type Notifier struct {
	mu    sync.Mutex
	out   io.Writer
	theme Theme
}

// NewNotifier returns a Notifier writing to out (stdout when nil).
func NewNotifier(out io.Writer, theme Theme) *Notifier {
	if out == nil {
		out = os.Stdout
	}
	return &Notifier{out: out, theme: theme}
}

// Notify writes n.
func (n *Notifier) Notify(_ context.Context, note notify.Notification) {
	prefix := n.theme.InfoPrefix
	if note.Level == notify.LevelError {
		prefix = n.theme.ErrorPrefix
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, "%s[%s] %s\n", prefix, note.Title, note.Message)
}
