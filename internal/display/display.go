// Package display renders the live transcript feed in the terminal.
package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// View receives transcript lines and lifecycle messages as they happen.
type View interface {
	Append(speaker, text string)
	Banner(msg string)
}

// palette holds the speaker colors, handed out in first-appearance order and
// reused from the start once exhausted.
var palette = []lipgloss.Color{
	lipgloss.Color("#00ff9f"),
	lipgloss.Color("#ff79c6"),
	lipgloss.Color("#8be9fd"),
	lipgloss.Color("#f1fa8c"),
	lipgloss.Color("#bd93f9"),
	lipgloss.Color("#ffb86c"),
}

var bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))

// Feed writes one colored "[speaker] text" line per transcript segment. A
// speaker keeps its color for the whole session.
type Feed struct {
	mu     sync.Mutex
	out    io.Writer
	colors map[string]lipgloss.Color
	styles map[string]lipgloss.Style
	next   int
}

func New(out io.Writer) *Feed {
	return &Feed{
		out:    out,
		colors: make(map[string]lipgloss.Color),
		styles: make(map[string]lipgloss.Style),
	}
}

func (f *Feed) Append(speaker, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	style := f.styleLocked(speaker)
	fmt.Fprintln(f.out, style.Render(fmt.Sprintf("[%s] %s", speaker, text)))
}

func (f *Feed) Banner(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fmt.Fprintln(f.out, bannerStyle.Render(msg))
}

// ColorFor returns the palette color assigned to speaker, assigning the next
// one on first appearance.
func (f *Feed) ColorFor(speaker string) lipgloss.Color {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.colorLocked(speaker)
}

func (f *Feed) colorLocked(speaker string) lipgloss.Color {
	if c, ok := f.colors[speaker]; ok {
		return c
	}
	c := palette[f.next%len(palette)]
	f.next++
	f.colors[speaker] = c
	return c
}

func (f *Feed) styleLocked(speaker string) lipgloss.Style {
	if s, ok := f.styles[speaker]; ok {
		return s
	}
	s := lipgloss.NewStyle().Bold(true).Foreground(f.colorLocked(speaker))
	f.styles[speaker] = s
	return s
}
