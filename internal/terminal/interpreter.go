// Package terminal implements the simulated shell behind the terminal panel.
// It understands a small fixed grammar and keeps an ordered output log.
package terminal

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"devfolio/internal/theme"
)

// Kind classifies an output line for colouring.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Line is one row of terminal output.
type Line struct {
	Content string
	Kind    Kind
}

// ThemeReader exposes the current palette for the theme command.
type ThemeReader interface {
	Current() (theme.Mode, theme.Theme)
}

// Opener opens the resume URL for the visitor.
type Opener interface {
	Open(url string) error
}

// Config bounds the log and names the resume URL.
type Config struct {
	// MaxLines caps the output log and the history. Zero means unbounded.
	MaxLines  int
	ResumeURL string
}

// DefaultMaxLines is used when the configured bound is negative.
const DefaultMaxLines = 500

var welcome = []Line{
	{Content: "Welcome to the Portfolio Terminal!", Kind: KindInfo},
	{Content: `Type "help" to see available commands.`, Kind: KindInfo},
}

var helpBlock = []Line{
	{Content: "Available commands:", Kind: KindInfo},
	{Content: "  help              - Show this help message", Kind: KindInfo},
	{Content: "  clear             - Clear the terminal", Kind: KindInfo},
	{Content: "  git clone resume  - Download resume", Kind: KindInfo},
	{Content: "  npm run projects  - List all projects", Kind: KindInfo},
	{Content: "  npm run skills    - Show skills", Kind: KindInfo},
	{Content: "  npm run contact   - Show contact information", Kind: KindInfo},
	{Content: "  theme             - Show current theme", Kind: KindInfo},
}

var npmBlocks = map[string][]Line{
	"projects": {
		{Content: "🚀 Projects:", Kind: KindSuccess},
		{Content: "  1. AI-Powered Analytics Platform", Kind: KindInfo},
		{Content: "     - Enterprise-level analytics with ML", Kind: KindInfo},
		{Content: "     - 1M+ daily data points", Kind: KindInfo},
		{Content: "  2. E-commerce Microservices", Kind: KindInfo},
		{Content: "     - Scalable platform with 10k+ users", Kind: KindInfo},
		{Content: "     - 99.99% uptime", Kind: KindInfo},
		{Content: "  3. Real-time Collaboration Tool", Kind: KindInfo},
		{Content: "     - WebSocket-based platform", Kind: KindInfo},
		{Content: "     - 10k+ daily active users", Kind: KindInfo},
	},
	"skills": {
		{Content: "💻 Technical Skills:", Kind: KindSuccess},
		{Content: "  • Languages: JavaScript, TypeScript, Python, Java", Kind: KindInfo},
		{Content: "  • Frontend: React, Next.js, Vue.js, Tailwind CSS", Kind: KindInfo},
		{Content: "  • Backend: Node.js, Express, Django, Spring Boot", Kind: KindInfo},
		{Content: "  • Databases: PostgreSQL, MongoDB, Redis", Kind: KindInfo},
		{Content: "  • Cloud: AWS, Google Cloud, Azure", Kind: KindInfo},
	},
	"contact": {
		{Content: "📫 Contact Information:", Kind: KindSuccess},
		{Content: "  • Email: john.doe@example.com", Kind: KindInfo},
		{Content: "  • LinkedIn: linkedin.com/in/johndoe", Kind: KindInfo},
		{Content: "  • GitHub: github.com/johndoe", Kind: KindInfo},
		{Content: "  • Twitter: @johndoe", Kind: KindInfo},
	},
}

// Interpreter executes commands and owns the output log. Safe for
// concurrent use.
type Interpreter struct {
	cfg    Config
	themes ThemeReader
	opener Opener
	logger *zap.Logger

	mu      sync.RWMutex
	lines   []Line
	history []string
}

// New returns an interpreter whose log holds the welcome banner.
func New(cfg Config, themes ThemeReader, opener Opener, logger *zap.Logger) *Interpreter {
	if cfg.MaxLines < 0 {
		cfg.MaxLines = DefaultMaxLines
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{
		cfg:    cfg,
		themes: themes,
		opener: opener,
		logger: logger,
		lines:  append([]Line(nil), welcome...),
	}
}

// Lines returns a copy of the output log.
func (in *Interpreter) Lines() []Line {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return append([]Line(nil), in.lines...)
}

// History returns previously executed inputs, oldest first.
func (in *Interpreter) History() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return append([]string(nil), in.history...)
}

// Execute runs one input line. Every branch except clear echoes "> raw"
// before its output.
func (in *Interpreter) Execute(raw string) {
	tokens := strings.Split(raw, " ")
	cmd, args := strings.ToLower(tokens[0]), tokens[1:]

	in.mu.Lock()
	in.history = bounded(append(in.history, raw), in.cfg.MaxLines)
	in.mu.Unlock()

	in.logger.Debug("terminal command", zap.String("input", raw))

	if cmd == "clear" {
		in.mu.Lock()
		in.lines = nil
		in.mu.Unlock()
		return
	}

	out := []Line{{Content: "> " + raw, Kind: KindInfo}}
	switch cmd {
	case "help":
		out = append(out, helpBlock...)
	case "git":
		out = append(out, in.git(args)...)
	case "npm":
		out = append(out, npm(args)...)
	case "theme":
		out = append(out, in.themeInfo()...)
	default:
		out = append(out, Line{Content: "Command not found: " + raw, Kind: KindError})
	}
	in.appendLines(out)
}

func (in *Interpreter) git(args []string) []Line {
	if !argIs(args, 0, "clone") || !argIs(args, 1, "resume") {
		return []Line{{Content: `Invalid git command. Try "git clone resume"`, Kind: KindError}}
	}
	out := []Line{
		{Content: "Downloading resume...", Kind: KindSuccess},
		{Content: "Resume downloaded successfully!", Kind: KindSuccess},
	}
	if in.opener == nil {
		return out
	}
	if err := in.opener.Open(in.cfg.ResumeURL); err != nil {
		in.logger.Warn("open resume failed", zap.String("url", in.cfg.ResumeURL), zap.Error(err))
		out[1] = Line{Content: fmt.Sprintf("Could not open resume: %v", err), Kind: KindError}
	}
	return out
}

func npm(args []string) []Line {
	if !argIs(args, 0, "run") {
		return []Line{{Content: `Invalid npm command. Try "npm run projects"`, Kind: KindError}}
	}
	target := ""
	if len(args) > 1 {
		target = args[1]
	}
	if block, ok := npmBlocks[strings.ToLower(target)]; ok {
		return append([]Line(nil), block...)
	}
	return []Line{{Content: "Unknown command: npm run " + target, Kind: KindError}}
}

func (in *Interpreter) themeInfo() []Line {
	if in.themes == nil {
		return []Line{{Content: "Theme information unavailable", Kind: KindError}}
	}
	mode, th := in.themes.Current()
	return []Line{
		{Content: "Current theme: " + th.Name, Kind: KindSuccess},
		{Content: "  Mode: " + string(mode), Kind: KindInfo},
		{Content: "  Accent color: " + th.Accent, Kind: KindInfo},
	}
}

func (in *Interpreter) appendLines(out []Line) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.lines = bounded(append(in.lines, out...), in.cfg.MaxLines)
}

func argIs(args []string, i int, want string) bool {
	return i < len(args) && strings.EqualFold(args[i], want)
}

// bounded drops the oldest entries beyond limit. Zero means unbounded.
func bounded[T any](s []T, limit int) []T {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return append([]T(nil), s[len(s)-limit:]...)
}
