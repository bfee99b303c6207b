package renderservice

import (
	"fmt"
	"html"
	"strings"

	execservice "github.com/redjax/nbview/internal/services/execService"
)

// layout decides how rendered pieces are stitched together for a flavor
type layout interface {
	plain(text string) string
	output(text string, isErr bool) string
	cell(c CellView, live execservice.Output, hasLive bool) string
	note(text string) string
	join(parts []string) string
}

type textLayout struct{}

func (textLayout) plain(text string) string { return text }

func (textLayout) output(text string, isErr bool) string {
	return "Out: " + strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\n     ")
}

func (l textLayout) cell(c CellView, live execservice.Output, hasLive bool) string {
	var b strings.Builder
	if c.Kind == CellCode {
		fmt.Fprintf(&b, "In [%d]:\n", c.Index+1)
	}
	b.WriteString(strings.TrimRight(c.Body, "\n"))
	switch {
	case hasLive:
		b.WriteString("\n" + l.output(live.Text, live.Error))
	case c.Outputs != "":
		b.WriteString("\n" + l.output(c.Outputs, false))
	}
	return b.String()
}

func (textLayout) note(text string) string { return text }

func (textLayout) join(parts []string) string { return strings.Join(parts, "\n\n") }

type htmlLayout struct{}

func (htmlLayout) plain(text string) string {
	return "<pre>" + html.EscapeString(text) + "</pre>"
}

func (htmlLayout) output(text string, isErr bool) string {
	class := "notebook-output"
	if isErr {
		class += " error"
	}
	return fmt.Sprintf(`<div class="%s"><pre>%s</pre></div>`, class, html.EscapeString(text))
}

func (l htmlLayout) cell(c CellView, live execservice.Output, hasLive bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="notebook-cell %s-cell" data-cell="%d">`, c.Kind, c.Index)
	b.WriteString(c.Body)
	switch {
	case hasLive:
		b.WriteString(l.output(live.Text, live.Error))
	case c.Outputs != "":
		b.WriteString(l.output(c.Outputs, false))
	}
	b.WriteString("</div>")
	return b.String()
}

func (htmlLayout) note(text string) string {
	return "<p>" + html.EscapeString(text) + "</p>"
}

func (htmlLayout) join(parts []string) string { return strings.Join(parts, "\n") }

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; background: %s; color: %s; }
pre { overflow-x: auto; padding: .75rem; border-radius: 4px; }
.notebook-cell { margin: 1rem 0; }
.notebook-output pre { border-left: 3px solid #888; }
.notebook-output.error pre { border-left-color: #d33; }
</style>
</head>
<body class="%s">
%s
</body>
</html>
`

// Document wraps an HTML-flavored composition into a standalone page
func Document(title, body string, dark bool) string {
	bg, fg, class := "#ffffff", "#1f2328", "light-theme"
	if dark {
		bg, fg, class = "#1e1e1e", "#d4d4d4", "dark-theme"
	}
	return fmt.Sprintf(documentTemplate, html.EscapeString(title), bg, fg, class, body)
}
