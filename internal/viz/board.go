package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/galton/internal/export"
	"github.com/san-kum/galton/internal/scene"
)

const (
	boardWidth  = 48
	boardHeight = 24
	boardMargin = 2
)

type layer int

const (
	layerDot layer = iota
	layerFaded
	layerPath
	layerBall
	layerCount
)

// Board draws a scene onto stacked Braille canvases, one per layer, so each
// character cell can take the color of its topmost layer.
type Board struct {
	Width, Height int
	layers        [layerCount]*Canvas
	labels        []rune
}

func NewBoard(w, h int) *Board {
	b := &Board{}
	b.Resize(w, h)
	return b
}

func (b *Board) Resize(w, h int) {
	if w < 8 {
		w = 8
	}
	if h < 4 {
		h = 4
	}
	b.Width, b.Height = w, h
	for i := range b.layers {
		b.layers[i] = NewCanvas(w, h)
	}
	b.labels = make([]rune, w)
}

type projection struct {
	minCol, colSpan float64
	rowSpan         float64
	pw, ph          int
	cellH           float64
}

func (p projection) x(col float64) int {
	return boardMargin + int(math.Round((col-p.minCol)/p.colSpan*float64(p.pw-1-2*boardMargin)))
}

func (p projection) y(row float64) int {
	return boardMargin + int(math.Round(row/p.rowSpan*float64(p.ph-1-2*boardMargin)))
}

// Draw rasterises sc. Stacks taller than the board are compressed so the
// tallest one still fits above the bottom row.
func (b *Board) Draw(sc scene.Scene) {
	for _, c := range b.layers {
		c.Clear()
	}
	for i := range b.labels {
		b.labels[i] = ' '
	}

	minCol, maxCol := sc.Bounds()
	pw, ph := b.layers[0].PixelSize()
	p := projection{minCol: minCol, colSpan: maxCol - minCol, rowSpan: float64(sc.Rows - 1), pw: pw, ph: ph}
	if p.colSpan <= 0 {
		p.colSpan = 1
	}
	if p.rowSpan <= 0 {
		p.rowSpan = 1
	}
	p.cellH = float64(ph-1-2*boardMargin) / p.rowSpan

	step := p.cellH * export.BallSpacing / export.CellSize
	radius := int(p.cellH * export.BallRadius / export.CellSize)
	if tallest := sc.MaxStack(); tallest > 1 {
		room := float64(p.y(p.rowSpan) - boardMargin)
		if float64(tallest-1)*step > room {
			step = room / float64(tallest-1)
		}
		if step < float64(2*radius+1) {
			radius = 0
		}
	}

	for _, d := range sc.Dots {
		b.layers[layerDot].Set(p.x(d.Col), p.y(d.Row))
	}
	for _, s := range sc.Segments {
		l := layerPath
		if s.Faded {
			l = layerFaded
		}
		b.layers[l].DrawLine(p.x(s.From.Col), p.y(s.From.Row), p.x(s.To.Col), p.y(s.To.Row))
	}
	for _, ball := range sc.Balls {
		y := p.y(ball.Row) - int(math.Round(float64(ball.Stack)*step))
		r := radius
		if ball.Kind == scene.BallCurrent {
			r = max(radius, 1)
		}
		b.layers[layerBall].DrawDisc(p.x(ball.Col), y, r)
	}
	for _, l := range sc.Labels {
		b.placeLabel(p.x(l.Col)/2, l.Text)
	}
}

func (b *Board) placeLabel(center int, text string) {
	runes := []rune(text)
	start := center - len(runes)/2
	for i, r := range runes {
		if c := start + i; c >= 0 && c < len(b.labels) {
			b.labels[c] = r
		}
	}
}

// Render returns the colored board followed by the label row.
func (b *Board) Render(st styles) string {
	layerStyles := [layerCount]lipgloss.Style{
		layerDot:   st.dot,
		layerFaded: st.faded,
		layerPath:  st.path,
		layerBall:  st.ball,
	}

	var out strings.Builder
	for row := 0; row < b.Height; row++ {
		var run strings.Builder
		runLayer := layer(-1)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runLayer < 0 {
				out.WriteString(run.String())
			} else {
				out.WriteString(layerStyles[runLayer].Render(run.String()))
			}
			run.Reset()
		}

		for col := 0; col < b.Width; col++ {
			top := layer(-1)
			cell := rune(brailleBlank)
			for l := layerDot; l < layerCount; l++ {
				c := b.layers[l]
				if c.Empty(col, row) {
					continue
				}
				cell |= c.Grid[row][col]
				top = l
			}
			if top != runLayer {
				flush()
				runLayer = top
			}
			run.WriteRune(cell)
		}
		flush()
		out.WriteByte('\n')
	}
	out.WriteString(st.value.Render(string(b.labels)))
	return out.String()
}

// Lit reports whether any layer has the sub-pixel at (x, y) set.
func (b *Board) Lit(x, y int) bool {
	for _, c := range b.layers {
		if c.IsSet(x, y) {
			return true
		}
	}
	return false
}

// Labels returns the label row as plain text.
func (b *Board) Labels() string {
	return string(b.labels)
}
