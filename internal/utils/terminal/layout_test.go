package terminal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestLayoutSplit(t *testing.T) {
	l := NewLayout(30, 7)
	l.HandleWindowSizeMsg(tea.WindowSizeMsg{Width: 120, Height: 40})

	if w, h := l.Size(); w != 120 || h != 40 {
		t.Fatalf("Size = %dx%d", w, h)
	}
	if got := l.ContentWidth(); got != 86 {
		t.Errorf("ContentWidth = %d, want 86", got)
	}
	if got := l.BodyHeight(); got != 33 {
		t.Errorf("BodyHeight = %d, want 33", got)
	}
	if l.Compact() {
		t.Error("120x40 should not be compact")
	}
}

func TestLayoutMinimums(t *testing.T) {
	l := NewLayout(30, 7)
	l.SetSize(40, 8)

	if got := l.ContentWidth(); got != minContentWidth {
		t.Errorf("ContentWidth = %d, want %d", got, minContentWidth)
	}
	if got := l.BodyHeight(); got != minBodyHeight {
		t.Errorf("BodyHeight = %d, want %d", got, minBodyHeight)
	}
	if !l.Compact() {
		t.Error("40x8 should be compact")
	}
}

func TestLayoutLineClips(t *testing.T) {
	l := NewLayout(0, 0)
	l.SetSize(10, 5)

	got := l.Line(strings.Repeat("x", 30), lipgloss.NewStyle())
	if lipgloss.Width(got) > 10 {
		t.Errorf("line width = %d, want <= 10", lipgloss.Width(got))
	}
}
