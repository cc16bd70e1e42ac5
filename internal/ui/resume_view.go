package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"devfolio/internal/resume"
	"devfolio/internal/ui/textutil"
)

// ResumeLoader fetches and parses the resume PDF.
type ResumeLoader interface {
	Load(ctx context.Context, location string) (*resume.Document, error)
}

type resumeState int

const (
	resumeIdle resumeState = iota
	resumeLoading
	resumeLoaded
	resumeFailed
)

// ResumeView pages through the extracted text of the resume. The PDF is
// loaded the first time the tab is shown.
type ResumeView struct {
	ctx    context.Context
	loader ResumeLoader
	url    string
	styles *Styles

	state resumeState
	doc   *resume.Document
	err   error
	page  int
}

// NewResumeView creates a pager for the PDF at url.
func NewResumeView(ctx context.Context, loader ResumeLoader, url string, styles *Styles) *ResumeView {
	return &ResumeView{ctx: ctx, loader: loader, url: url, styles: styles}
}

// Ensure starts loading the document unless it is loading or loaded.
func (r *ResumeView) Ensure() tea.Cmd {
	if r.state != resumeIdle || r.loader == nil {
		return nil
	}
	r.state = resumeLoading
	ctx, loader, url := r.ctx, r.loader, r.url
	return func() tea.Msg {
		doc, err := loader.Load(ctx, url)
		return ResumeLoadedMsg{Document: doc, Err: err}
	}
}

// Loaded records the load result.
func (r *ResumeView) Loaded(msg ResumeLoadedMsg) {
	r.doc, r.err, r.page = msg.Document, msg.Err, 0
	if msg.Err != nil || msg.Document == nil {
		r.state = resumeFailed
		return
	}
	r.state = resumeLoaded
}

// Page is the zero-based current page.
func (r *ResumeView) Page() int { return r.page }

// HandleKey pages the document. It reports whether the key was used.
func (r *ResumeView) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "right", "l", "n", "pgdown":
		if r.page < r.doc.NumPages()-1 {
			r.page++
		}
		return true, nil
	case "left", "h", "p", "pgup":
		if r.page > 0 {
			r.page--
		}
		return true, nil
	case "d", "o":
		return true, func() tea.Msg { return OpenResumeMsg{} }
	case "r":
		if r.state == resumeFailed {
			r.state = resumeIdle
			return true, r.Ensure()
		}
	}
	return false, nil
}

// Render draws the pager at width columns.
func (r *ResumeView) Render(width int) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Resume") + "  " + r.styles.Muted.Render(r.url) + "\n")
	b.WriteString(r.styles.Hint.Render("d: open/download  ←/→: page") + "\n\n")

	switch r.state {
	case resumeIdle, resumeLoading:
		b.WriteString(r.styles.Empty.Render("Loading resume…"))
	case resumeFailed:
		b.WriteString(r.styles.Error.Render("⚠ "+resume.LoadError) + "\n")
		b.WriteString(r.styles.Hint.Render(resume.LoadHint) + "\n")
		b.WriteString(r.styles.Hint.Render("r: retry"))
	case resumeLoaded:
		n := r.doc.NumPages()
		b.WriteString(r.styles.Section.Render(fmt.Sprintf("Page %d of %d", r.page+1, n)) + "\n")
		b.WriteString(r.styles.Muted.Render(strings.Repeat("─", max(width, 1))) + "\n")
		text := strings.TrimSpace(r.doc.Pages[r.page])
		if text == "" {
			b.WriteString(r.styles.Empty.Render("(no extractable text on this page)"))
			break
		}
		b.WriteString(strings.Join(textutil.Wrap(text, width), "\n"))
	}
	return b.String()
}
