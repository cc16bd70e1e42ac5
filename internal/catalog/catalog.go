// Package catalog holds the fixed set of virtual files shown in the explorer.
// Files are immutable; callers receive copies of the ordered catalog.
package catalog

import (
	"embed"
	"path"
	"strings"
)

// Language tags the kind of content a file holds and selects its renderer.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangJSON       Language = "json"
	LangMarkdown   Language = "markdown"
	LangPDF        Language = "pdf"
	LangActivity   Language = "activity" // GitHub activity feed pseudo-file
)

// Icon is the explorer glyph tag for a file.
type Icon string

const (
	IconJS       Icon = "FileJs"
	IconJSON     Icon = "FileJson"
	IconText     Icon = "FileText"
	IconActivity Icon = "FileActivity"
)

// Glyph returns the single-cell symbol drawn next to the file name.
func (i Icon) Glyph() string {
	switch i {
	case IconJS:
		return "JS"
	case IconJSON:
		return "{}"
	case IconActivity:
		return "≈ "
	default:
		return "¶ "
	}
}

// File is a named, static text blob with a declared language.
type File struct {
	Name     string
	Content  string
	Language Language
	Icon     Icon
}

// Well-known file names referenced by commands and phrases.
const (
	HomeFile       = "Home.js"
	AboutFile      = "About.js"
	ExperienceFile = "Experience.js"
	EducationFile  = "Education.js"
	ProjectsFile   = "Projects.json"
	ContactFile    = "Contact.md"
	ResumeFile     = "Resume.pdf"
	ActivityFile   = "GitHub.activity"
)

//go:embed content
var content embed.FS

// Default returns the ordered portfolio catalog.
func Default() []File {
	return []File{
		{Name: HomeFile, Content: load(HomeFile), Language: LangJavaScript, Icon: IconJS},
		{Name: AboutFile, Content: load(AboutFile), Language: LangJavaScript, Icon: IconJS},
		{Name: ExperienceFile, Content: load(ExperienceFile), Language: LangJavaScript, Icon: IconJS},
		{Name: EducationFile, Content: load(EducationFile), Language: LangJavaScript, Icon: IconJS},
		{Name: ProjectsFile, Content: load(ProjectsFile), Language: LangJSON, Icon: IconJSON},
		{Name: ContactFile, Content: load(ContactFile), Language: LangMarkdown, Icon: IconText},
		{Name: ResumeFile, Language: LangPDF, Icon: IconText},
		{Name: ActivityFile, Language: LangActivity, Icon: IconActivity},
	}
}

// load reads an embedded asset. The asset set is fixed at build time, so a
// missing file is a programming error and yields empty content.
func load(name string) string {
	b, err := content.ReadFile(path.Join("content", name))
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(b), "\n")
}

// Find returns the file with the given name.
func Find(files []File, name string) (File, bool) {
	for _, f := range files {
		if f.Name == name {
			return f, true
		}
	}
	return File{}, false
}

// PromptContext concatenates every file as "name:\ncontent", separated by
// blank lines. Used as grounding context for the assistant.
func PromptContext(files []File) string {
	parts := make([]string, 0, len(files))
	for _, f := range files {
		parts = append(parts, f.Name+":\n"+f.Content)
	}
	return strings.Join(parts, "\n\n")
}
