package termui

import (
	"fmt"
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Notifier prints action outcomes, it is safe for concurrent use.
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

func (n *Notifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, text.FgGreen.Sprint(message))
}

func (n *Notifier) Fail(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, text.FgRed.Sprint(message))
}

func (n *Notifier) RedirectToLogin(entry string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, text.FgYellow.Sprintf("Please login first: %s", entry))
}
