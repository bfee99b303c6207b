package renderservice

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer turns Markdown into displayable markup. Fenced code blocks
// come back highlighted.
type MarkdownRenderer interface {
	RenderMarkdown(src string) (string, error)
}

// Highlighter colours source code for the given language name
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

// chroma style names for each theme
const (
	lightStyle = "github"
	darkStyle  = "monokai"
)

func styleFor(dark bool) string {
	if dark {
		return darkStyle
	}
	return lightStyle
}

// goldmarkRenderer produces HTML. Raw HTML in the source is passed through.
type goldmarkRenderer struct {
	md goldmark.Markdown
}

func newGoldmarkRenderer(dark bool) *goldmarkRenderer {
	return &goldmarkRenderer{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(styleFor(dark)),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)}
}

func (g *goldmarkRenderer) RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return buf.String(), nil
}

// glamourRenderer produces ANSI output for the terminal
type glamourRenderer struct {
	mu sync.Mutex
	tr *glamour.TermRenderer
}

func newGlamourRenderer(dark bool, width int) (*glamourRenderer, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	if width < 20 {
		width = 20
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		// glamour v0.8.0 (last release buildable with Go 1.21) hardcodes the
		// "terminal256" chroma formatter; WithChromaFormatter was added later.
	)
	if err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}
	return &glamourRenderer{tr: tr}, nil
}

func (g *glamourRenderer) RenderMarkdown(src string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out, err := g.tr.Render(src)
	if err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return out, nil
}

// chromaHighlighter wraps a chroma formatter
type chromaHighlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

func newHTMLHighlighter(dark bool) *chromaHighlighter {
	return &chromaHighlighter{
		style:     lookupStyle(dark),
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}
}

func newTerminalHighlighter(dark bool) *chromaHighlighter {
	f := formatters.Get("terminal256")
	if f == nil {
		f = formatters.Fallback
	}
	return &chromaHighlighter{style: lookupStyle(dark), formatter: f}
}

func lookupStyle(dark bool) *chroma.Style {
	style := styles.Get(styleFor(dark))
	if style == nil {
		style = styles.Fallback
	}
	return style
}

func (c *chromaHighlighter) Highlight(code, lang string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("highlight %s: %w", lang, err)
	}
	var buf bytes.Buffer
	if err := c.formatter.Format(&buf, c.style, iterator); err != nil {
		return "", fmt.Errorf("highlight %s: %w", lang, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
