package printer

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/IvanShishkin/printhound/internal/config"
	"github.com/IvanShishkin/printhound/internal/filesystem"
)

// formFeed separates pages in the rendered stream
const formFeed = "\f"

// TextRenderer lays plain text out on fixed-pitch pages
type TextRenderer struct {
	layout config.TextConfig
}

// NewTextRenderer creates a renderer for the given page layout
func NewTextRenderer(layout config.TextConfig) *TextRenderer {
	return &TextRenderer{layout: layout}
}

// Name returns the renderer name
func (r *TextRenderer) Name() string {
	return "text"
}

// LinesPerPage returns how many baselines fit on a page
func (r *TextRenderer) LinesPerPage() int {
	if r.layout.LinePitch <= 0 || r.layout.PageHeight <= 0 {
		return 1
	}
	n := int(math.Floor(r.layout.PageHeight/r.layout.LinePitch + 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// Paginate splits lines into pages. An empty document yields one empty page.
func (r *TextRenderer) Paginate(lines []string) [][]string {
	per := r.LinesPerPage()
	if len(lines) == 0 {
		return [][]string{{}}
	}

	pages := make([][]string, 0, (len(lines)+per-1)/per)
	for start := 0; start < len(lines); start += per {
		end := start + per
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}
	return pages
}

// Render reads the text file at path and writes the paginated stream to w
func (r *TextRenderer) Render(path string, w io.Writer) error {
	lines, err := filesystem.ReadLines(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for i, page := range r.Paginate(lines) {
		if i > 0 {
			bw.WriteString(formFeed)
		}
		for _, line := range page {
			bw.WriteString(r.expandTabs(line))
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}

// expandTabs replaces tabs with spaces up to the next tab stop
func (r *TextRenderer) expandTabs(line string) string {
	width := r.layout.TabWidth
	if width <= 0 || !strings.Contains(line, "\t") {
		return line
	}

	var sb strings.Builder
	col := 0
	for _, c := range line {
		if c == '\t' {
			pad := width - col%width
			sb.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		sb.WriteRune(c)
		col++
	}
	return sb.String()
}
