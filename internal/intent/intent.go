// Package intent maps spoken-style phrases ("show me your projects",
// "switch to gaming") to UI actions. The command palette feeds it.
package intent

import (
	"strings"

	"devfolio/internal/catalog"
	"devfolio/internal/theme"
)

// NoMatch is reported for phrases no rule recognises.
const NoMatch = "No matching command"

// Kind is the action to take.
type Kind int

const (
	OpenFile Kind = iota
	SetTheme
	OpenResume
)

// Action is the result of matching a phrase.
type Action struct {
	Kind Kind
	File string     // OpenFile
	Mode theme.Mode // SetTheme
}

type rule struct {
	phrases []string
	action  Action
}

// Rules are checked in order; the first rule with a phrase contained in the
// input wins.
var rules = []rule{
	{[]string{"show me your projects"}, Action{Kind: OpenFile, File: catalog.ProjectsFile}},
	{[]string{"show experience", "work history"}, Action{Kind: OpenFile, File: catalog.ExperienceFile}},
	{[]string{"education", "qualifications"}, Action{Kind: OpenFile, File: catalog.EducationFile}},
	{[]string{"contact", "get in touch"}, Action{Kind: OpenFile, File: catalog.ContactFile}},
	{[]string{"switch to dark mode"}, Action{Kind: SetTheme, Mode: theme.ModeDark}},
	{[]string{"switch to minimal"}, Action{Kind: SetTheme, Mode: theme.ModeMinimal}},
	{[]string{"switch to cyberpunk"}, Action{Kind: SetTheme, Mode: theme.ModeCyberpunk}},
	{[]string{"switch to gaming"}, Action{Kind: SetTheme, Mode: theme.ModeGaming}},
	{[]string{"download resume"}, Action{Kind: OpenResume}},
	{[]string{"show resume"}, Action{Kind: OpenFile, File: catalog.ResumeFile}},
	{[]string{"github activity", "show activity"}, Action{Kind: OpenFile, File: catalog.ActivityFile}},
}

// Match returns the action for phrase. Matching is case-insensitive.
func Match(phrase string) (Action, bool) {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return Action{}, false
	}
	for _, r := range rules {
		for _, s := range r.phrases {
			if strings.Contains(p, s) {
				return r.action, true
			}
		}
	}
	return Action{}, false
}

// Examples lists one phrase per rule, for the palette's help text.
func Examples() []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.phrases[0])
	}
	return out
}
