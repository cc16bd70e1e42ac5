package ui

import (
	"fmt"
	"strings"
	"time"

	"devfolio/internal/github"
	"devfolio/internal/ui/textutil"
)

// FeedView renders the latest GitHub activity snapshot.
type FeedView struct {
	username string
	styles   *Styles
	now      func() time.Time

	snapshot github.Snapshot
	received bool
}

// NewFeedView creates the feed for username. now may be nil.
func NewFeedView(username string, styles *Styles, now func() time.Time) *FeedView {
	if now == nil {
		now = time.Now
	}
	return &FeedView{username: username, styles: styles, now: now}
}

// Set replaces the snapshot.
func (f *FeedView) Set(s github.Snapshot) {
	f.snapshot = s
	f.received = true
}

// Snapshot is the last snapshot received.
func (f *FeedView) Snapshot() github.Snapshot { return f.snapshot }

// Render draws the feed at width columns.
func (f *FeedView) Render(width int) string {
	var b strings.Builder
	title := "GitHub Activity"
	if f.username != "" {
		title += " · @" + f.username
	}
	b.WriteString(f.styles.Title.Render(title))
	if f.snapshot.Loading || !f.received {
		b.WriteString("  " + f.styles.Muted.Render("refreshing…"))
	}
	b.WriteString("\n\n")

	if f.snapshot.Err != "" {
		b.WriteString(f.styles.Error.Render(f.snapshot.Err) + "\n\n")
	}
	if len(f.snapshot.Activities) == 0 {
		if f.received && !f.snapshot.Loading && f.snapshot.Err == "" {
			b.WriteString(f.styles.Empty.Render("No recent activity"))
		} else if !f.received || f.snapshot.Loading {
			b.WriteString(f.styles.Empty.Render("Loading activity…"))
		}
		return strings.TrimRight(b.String(), "\n")
	}

	now := f.now()
	for i, a := range f.snapshot.Activities {
		marker := "●"
		if a.Kind == github.KindRepo {
			marker = "◆"
		}
		ago := a.Ago(now)
		desc := textutil.Truncate(a.Describe(), max(width-textutil.Width(ago)-5, 10))
		fmt.Fprintf(&b, "%s %s  %s", f.styles.Section.Render(marker), f.styles.Normal.Render(desc), f.styles.Muted.Render(ago))
		if u := a.URL(); u != "" {
			b.WriteString("\n   " + f.styles.Hint.Render(textutil.Truncate(u, max(width-3, 10))))
		}
		if i < len(f.snapshot.Activities)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
