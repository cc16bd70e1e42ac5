package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"devfolio/internal/catalog"
	"devfolio/internal/theme"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		phrase string
		want   Action
	}{
		{"Show me your projects please", Action{Kind: OpenFile, File: catalog.ProjectsFile}},
		{"show experience", Action{Kind: OpenFile, File: catalog.ExperienceFile}},
		{"what is your WORK HISTORY", Action{Kind: OpenFile, File: catalog.ExperienceFile}},
		{"education", Action{Kind: OpenFile, File: catalog.EducationFile}},
		{"list qualifications", Action{Kind: OpenFile, File: catalog.EducationFile}},
		{"how do I get in touch", Action{Kind: OpenFile, File: catalog.ContactFile}},
		{"switch to dark mode", Action{Kind: SetTheme, Mode: theme.ModeDark}},
		{"switch to minimal", Action{Kind: SetTheme, Mode: theme.ModeMinimal}},
		{"Switch To Cyberpunk", Action{Kind: SetTheme, Mode: theme.ModeCyberpunk}},
		{"switch to gaming", Action{Kind: SetTheme, Mode: theme.ModeGaming}},
		{"download resume", Action{Kind: OpenResume}},
		{"show github activity", Action{Kind: OpenFile, File: catalog.ActivityFile}},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			got, ok := Match(tt.phrase)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_FirstRuleWins(t *testing.T) {
	got, ok := Match("contact me about your education")
	assert.True(t, ok)
	assert.Equal(t, catalog.EducationFile, got.File)
}

func TestMatch_NoMatch(t *testing.T) {
	for _, p := range []string{"", "   ", "make me a sandwich"} {
		_, ok := Match(p)
		assert.False(t, ok, "phrase %q", p)
	}
}

func TestExamples_AllMatch(t *testing.T) {
	for _, p := range Examples() {
		_, ok := Match(p)
		assert.True(t, ok, "example %q should match", p)
	}
}
