package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/fundry/console/internal/console/models"
)

// termViewport renders a chat conversation as a sliding window over the
// message list. "Scrolling" is the offset of that window from the newest
// message; being within tolerance rows of the end counts as at-bottom.
type termViewport struct {
	mu        sync.Mutex
	out       io.Writer
	selfID    string
	height    int
	tolerance int

	msgs   []models.Message
	offset int
}

func newTermViewport(out io.Writer, selfID string, height, tolerance int) *termViewport {
	return &termViewport{out: out, selfID: selfID, height: height, tolerance: tolerance}
}

func (t *termViewport) AtBottom() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset <= t.tolerance
}

func (t *termViewport) Render(msgs []models.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = msgs
	if t.offset > len(msgs) {
		t.offset = len(msgs)
	}
	t.draw()
}

func (t *termViewport) ScrollToBottom(animated bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset = 0
	t.draw()
}

func (t *termViewport) ShowNewMessages() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, "-- new messages below (use /read) --")
}

// ScrollUp moves the window one page towards older messages.
func (t *termViewport) ScrollUp() {
	t.mu.Lock()
	defer t.mu.Unlock()
	max := len(t.msgs) - t.height
	if max < 0 {
		max = 0
	}
	t.offset += t.height
	if t.offset > max {
		t.offset = max
	}
	t.draw()
}

// ScrollDown moves the window one page towards newer messages.
func (t *termViewport) ScrollDown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset -= t.height
	if t.offset < 0 {
		t.offset = 0
	}
	t.draw()
}

func (t *termViewport) draw() {
	end := len(t.msgs) - t.offset
	if end < 0 {
		end = 0
	}
	start := end - t.height
	if start < 0 {
		start = 0
	}

	fmt.Fprintln(t.out, "----------------------------------------")
	for _, m := range t.msgs[start:end] {
		prefix := "them"
		if m.SenderID == t.selfID {
			prefix = "  me"
		}
		when := ""
		if !m.CreatedAt.IsZero() {
			when = m.CreatedAt.Local().Format("15:04")
		}
		fmt.Fprintf(t.out, "%s %5s | %s\n", when, prefix, m.Body)
	}
	if t.offset > 0 {
		fmt.Fprintf(t.out, "(%d newer messages below)\n", t.offset)
	}
}
