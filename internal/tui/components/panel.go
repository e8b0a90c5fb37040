package components

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"hwtree/internal/render"
	"hwtree/internal/tui/design"
	pager "hwtree/internal/viewport"
)

// Panel draws the window of rows around the highlighted one below a column
// header.
type Panel struct {
	Header string
	Lines  []render.Line
	Row    int
	Width  int
	// Height counts the header line.
	Height int
}

// NewPanel creates a panel of the given size.
func NewPanel(width, height int) *Panel {
	return &Panel{Width: width, Height: height}
}

// WithHeader sets the column header.
func (p *Panel) WithHeader(header string) *Panel {
	p.Header = header
	return p
}

// WithLines sets the rows and the highlighted index.
func (p *Panel) WithLines(lines []render.Line, row int) *Panel {
	p.Lines = lines
	p.Row = row
	return p
}

func (p *Panel) rows() int {
	return max(p.Height-1, 0)
}

// Range returns the half-open interval of rows that fit on screen.
func (p *Panel) Range() (start, end int) {
	row := pager.Clamp(p.Row, len(p.Lines))
	return pager.Window(len(p.Lines), p.rows(), row)
}

// ScrollIndicator describes the visible window, "" when everything fits.
func (p *Panel) ScrollIndicator() string {
	start, end := p.Range()
	if start == 0 && end == len(p.Lines) {
		return ""
	}
	return fmt.Sprintf("%d-%d/%d", start+1, end, len(p.Lines))
}

// Render returns the header followed by the visible rows.
func (p *Panel) Render() string {
	out := make([]string, 0, p.Height)
	out = append(out, design.ColumnHeaderStyle.Render(p.fit(p.Header)))

	start, end := p.Range()
	for i := start; i < end; i++ {
		l := p.Lines[i]
		text := p.fit(l.Text)
		switch {
		case i == p.Row:
			out = append(out, design.RowHighlightStyle.Bold(l.Bold).Render(runewidth.FillRight(text, p.Width)))
		case l.Bold:
			out = append(out, design.RowBoldStyle.Render(text))
		default:
			out = append(out, design.RowStyle.Render(text))
		}
	}
	return strings.Join(out, "\n")
}

func (p *Panel) fit(s string) string {
	if p.Width <= 0 {
		return s
	}
	return runewidth.Truncate(s, p.Width, "")
}
