package renderservice

import (
	"errors"
	"fmt"
	"strings"

	execservice "github.com/redjax/nbview/internal/services/execService"
	"go.uber.org/zap"
)

const (
	// NotebookParseError is shown in place of a notebook that failed to parse
	NotebookParseError = "Notebook parse error"
	// MoreCellsNote trails a truncated notebook preview
	MoreCellsNote = "... (more cells not shown)"
	// DefaultPreviewCells is how many notebook cells a preview shows
	DefaultPreviewCells = 3
)

// CellView is a rendered notebook cell
type CellView struct {
	Index    int
	Kind     CellKind
	Source   string
	Body     string
	Outputs  string
	Runnable bool
}

// Output is the display representation of one file.
//
// Body holds rendered Markdown, highlighted Python source, the raw text of a
// plain file, or the placeholder of a notebook that failed to parse. Err is
// set for recoverable failures; rendering never returns an error.
type Output struct {
	Name     string
	Mode     Mode
	Body     string
	Cells    []CellView
	Omitted  int
	Runnable bool
	Preview  bool // incoming content; Compose never adds live run output
	Err      error
}

func (o Output) Failed() bool { return o.Err != nil }

// Renderer dispatches files to the markdown and highlight collaborators.
type Renderer struct {
	md     MarkdownRenderer
	hl     Highlighter
	runner *execservice.Runner
	layout layout
	log    *zap.Logger
}

type Option func(*Renderer)

// WithRunner attaches the execution runner. Without one, nothing is runnable.
func WithRunner(r *execservice.Runner) Option {
	return func(rd *Renderer) { rd.runner = r }
}

func WithLogger(log *zap.Logger) Option {
	return func(rd *Renderer) {
		if log != nil {
			rd.log = log
		}
	}
}

// New builds a renderer from explicit collaborators. Output is composed as
// plain text; use NewHTML or NewTerminal for the stock flavors.
func New(md MarkdownRenderer, hl Highlighter, opts ...Option) *Renderer {
	r := &Renderer{md: md, hl: hl, layout: textLayout{}, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewHTML renders Markdown with goldmark and code with chroma's HTML formatter
func NewHTML(dark bool, opts ...Option) *Renderer {
	r := New(newGoldmarkRenderer(dark), newHTMLHighlighter(dark), opts...)
	r.layout = htmlLayout{}
	return r
}

// NewTerminal renders Markdown with glamour and code with chroma's terminal256 formatter
func NewTerminal(dark bool, width int, opts ...Option) (*Renderer, error) {
	md, err := newGlamourRenderer(dark, width)
	if err != nil {
		return nil, err
	}
	return New(md, newTerminalHighlighter(dark), opts...), nil
}

func (r *Renderer) Runner() *execservice.Runner { return r.runner }

func (r *Renderer) canRun() bool { return r.runner.Available() }

// Render produces the display representation of a file
func (r *Renderer) Render(name, content string) Output {
	return r.render(name, content, -1)
}

// Preview renders like Render, but a notebook is cut to its first maxCells
// cells without recorded outputs, and nothing is runnable.
func (r *Renderer) Preview(name, content string, maxCells int) Output {
	if maxCells <= 0 {
		maxCells = DefaultPreviewCells
	}
	out := r.render(name, content, maxCells)
	out.Preview = true
	out.Runnable = false
	for i := range out.Cells {
		out.Cells[i].Runnable = false
		out.Cells[i].Outputs = ""
	}
	return out
}

func (r *Renderer) render(name, content string, maxCells int) Output {
	out := Output{Name: name, Mode: ModeFor(name)}

	switch out.Mode {
	case ModeMarkdown:
		body, err := r.markdown(content)
		if err != nil {
			r.log.Warn("markdown render failed", zap.String("file", name), zap.Error(err))
			out.Body, out.Err = content, err
			return out
		}
		out.Body = body

	case ModePythonSource:
		out.Body = r.code(name, content)
		out.Runnable = r.canRun()

	case ModeNotebook:
		nb, err := ParseNotebook(content)
		if err != nil {
			r.log.Warn("notebook parse failed", zap.String("file", name), zap.Error(err))
			out.Body, out.Err = NotebookParseError, err
			return out
		}
		cells := nb.Cells
		if maxCells > 0 && len(cells) > maxCells {
			out.Omitted = len(cells) - maxCells
			cells = cells[:maxCells]
		}
		out.Cells = make([]CellView, 0, len(cells))
		for i, c := range cells {
			out.Cells = append(out.Cells, r.cell(name, i, c))
		}

	default:
		out.Body = content
	}

	return out
}

func (r *Renderer) markdown(src string) (string, error) {
	if r.md == nil {
		return "", errors.New("markdown: no renderer configured")
	}
	return r.md.RenderMarkdown(src)
}

// code highlights Python source and falls back to the raw text
func (r *Renderer) code(name, src string) string {
	if r.hl == nil {
		return r.layout.plain(src)
	}
	body, err := r.hl.Highlight(src, "python")
	if err != nil {
		r.log.Warn("highlight failed", zap.String("file", name), zap.Error(err))
		return r.layout.plain(src)
	}
	return body
}

func (r *Renderer) cell(name string, index int, c Cell) CellView {
	view := CellView{Index: index, Kind: c.Kind, Source: c.Source}
	if c.Kind == CellMarkdown {
		body, err := r.markdown(c.Source)
		if err != nil {
			r.log.Warn("markdown cell render failed", zap.String("file", name), zap.Int("cell", index), zap.Error(err))
			body = r.layout.plain(c.Source)
		}
		view.Body = body
		return view
	}

	view.Body = r.code(name, c.Source)
	view.Runnable = r.canRun()
	for _, o := range c.Outputs {
		if view.Outputs != "" && !strings.HasSuffix(view.Outputs, "\n") {
			view.Outputs += "\n"
		}
		view.Outputs += o
	}
	return view
}

// Compose flattens an Output into a single string in the renderer's flavor,
// including any live execution output held by the runner.
func (r *Renderer) Compose(out Output) string {
	switch {
	case out.Mode == ModeNotebook && out.Err == nil:
		parts := make([]string, 0, len(out.Cells)+1)
		for _, c := range out.Cells {
			live, ok := r.liveOutput(out, execservice.CellKey(out.Name, c.Index))
			parts = append(parts, r.layout.cell(c, live, ok))
		}
		if out.Omitted > 0 {
			parts = append(parts, r.layout.note(MoreCellsNote))
		}
		return r.layout.join(parts)

	case out.Mode == ModePlainText || out.Err != nil:
		return r.layout.plain(out.Body)

	case out.Mode == ModePythonSource:
		live, ok := r.liveOutput(out, execservice.FileKey(out.Name))
		if !ok {
			return out.Body
		}
		return r.layout.join([]string{out.Body, r.layout.output(live.Text, live.Error)})
	}
	return out.Body
}

func (r *Renderer) liveOutput(out Output, key execservice.Key) (execservice.Output, bool) {
	if r.runner == nil || out.Preview {
		return execservice.Output{}, false
	}
	return r.runner.Output(key)
}

// Describe is a one-line status for an Output, used by the CLI and the TUI.
func Describe(out Output) string {
	switch {
	case out.Err != nil:
		return fmt.Sprintf("%s (%s): %v", out.Name, out.Mode, out.Err)
	case out.Mode == ModeNotebook:
		return fmt.Sprintf("%s (%s, %d cells)", out.Name, out.Mode, len(out.Cells)+out.Omitted)
	default:
		return fmt.Sprintf("%s (%s)", out.Name, out.Mode)
	}
}
