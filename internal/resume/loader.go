package resume

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"devfolio/internal/telemetry"
)

// LoadError is shown in place of the document when loading fails.
const LoadError = "Could not load the resume PDF. Please try again later."

// LoadHint follows LoadError.
const LoadHint = "Please ensure resume.url points at a reachable PDF file."

// MaxSize caps the downloaded document.
const MaxSize = 20 << 20

// ErrTooLarge is returned for documents over MaxSize.
var ErrTooLarge = errors.New("resume: document exceeds size limit")

// Document is the extracted text of a PDF, one entry per page.
type Document struct {
	URL   string
	Pages []string
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// Loader fetches PDFs over HTTP(S) or from the local filesystem.
type Loader struct {
	HTTPClient *http.Client
}

// Load fetches the PDF at location and extracts plain text per page.
// location is an http(s) URL, a file:// URL or a filesystem path.
func (l *Loader) Load(ctx context.Context, location string) (*Document, error) {
	ctx, span := telemetry.Start(ctx, "resume.load", map[string]string{"url": location})
	doc, err := l.load(ctx, location)
	telemetry.End(span, err)
	return doc, err
}

func (l *Loader) load(ctx context.Context, location string) (*Document, error) {
	raw, err := l.fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("resume: parse pdf: %w", err)
	}
	n := r.NumPage()
	doc := &Document{URL: location, Pages: make([]string, 0, n)}
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			doc.Pages = append(doc.Pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("resume: page %d: %w", i, err)
		}
		doc.Pages = append(doc.Pages, text)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("resume: document has no pages")
	}
	return doc, nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("resume: parse location: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return l.download(ctx, location)
	case "file":
		return readFile(u.Path)
	case "":
		return readFile(location)
	default:
		return nil, fmt.Errorf("resume: unsupported scheme %q", u.Scheme)
	}
}

func (l *Loader) download(ctx context.Context, location string) ([]byte, error) {
	client := l.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("resume: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resume: download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("resume: download: status %s", resp.Status)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("resume: read body: %w", err)
	}
	if len(b) > MaxSize {
		return nil, ErrTooLarge
	}
	return b, nil
}

func readFile(path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	if info.Size() > MaxSize {
		return nil, ErrTooLarge
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	return b, nil
}
