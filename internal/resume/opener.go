// Package resume opens and loads the resume PDF.
package resume

import (
	"fmt"
	"io"
	"sync"

	"github.com/pkg/browser"
)

// Opener hands the resume URL to the visitor.
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens URLs in the local system browser.
type BrowserOpener struct{}

// Open launches the browser. The launcher's own output is discarded since
// the terminal belongs to the TUI.
func (BrowserOpener) Open(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// LinkQueue records opened URLs for the UI to present as hyperlinks. Used
// for remote sessions, where there is no browser on this side of the
// connection.
type LinkQueue struct {
	mu   sync.Mutex
	urls []string
}

// Open queues url.
func (q *LinkQueue) Open(url string) error {
	q.mu.Lock()
	q.urls = append(q.urls, url)
	q.mu.Unlock()
	return nil
}

// Drain returns and clears the queued URLs.
func (q *LinkQueue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.urls
	q.urls = nil
	return out
}

// Hyperlink wraps text in an OSC 8 escape so terminals that support it make
// the text clickable.
func Hyperlink(url, text string) string {
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
