package terminal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minContentWidth = 20
	minBodyHeight   = 3
)

// Layout tracks the terminal size and splits it into a fixed-width sidebar
// and a content pane. chrome is the number of rows reserved for header,
// dialog, status and help lines.
type Layout struct {
	width   int
	height  int
	sidebar int
	chrome  int
}

// NewLayout starts from an 80x24 terminal until the first resize
func NewLayout(sidebar, chrome int) *Layout {
	return &Layout{width: 80, height: 24, sidebar: sidebar, chrome: chrome}
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

func (l *Layout) Size() (int, int) { return l.width, l.height }

func (l *Layout) HandleWindowSizeMsg(msg tea.WindowSizeMsg) {
	l.SetSize(msg.Width, msg.Height)
}

// ContentWidth is the width left for the content pane after the sidebar and
// both panel borders
func (l *Layout) ContentWidth() int {
	w := l.width - l.sidebar - 4
	if w < minContentWidth {
		return minContentWidth
	}
	return w
}

func (l *Layout) BodyHeight() int {
	h := l.height - l.chrome
	if h < minBodyHeight {
		return minBodyHeight
	}
	return h
}

// Compact reports a terminal too small for the full help listing
func (l *Layout) Compact() bool {
	return l.width < 80 || l.height < 20
}

// Line renders text on a single row clipped to the terminal width
func (l *Layout) Line(text string, style lipgloss.Style) string {
	return style.MaxWidth(l.width).MaxHeight(1).Render(text)
}
