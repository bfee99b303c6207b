package renderservice

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode is the display strategy for a file, picked from its extension.
type Mode int

const (
	ModePlainText Mode = iota
	ModeMarkdown
	ModePythonSource
	ModeNotebook
)

var modeNames = map[Mode]string{
	ModePlainText:    "text",
	ModeMarkdown:     "markdown",
	ModePythonSource: "python",
	ModeNotebook:     "notebook",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Label is the title-cased name used in listings
func (m Mode) Label() string {
	return cases.Title(language.English).String(m.String())
}

// Extension returns the lowercased suffix after the last dot, or "" when the
// name has none.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// ModeFor dispatches on the file extension
func ModeFor(name string) Mode {
	switch Extension(name) {
	case "md":
		return ModeMarkdown
	case "py":
		return ModePythonSource
	case "ipynb":
		return ModeNotebook
	default:
		return ModePlainText
	}
}
